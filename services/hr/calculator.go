package hr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"cazinoureview/dto"
	"cazinoureview/models"
	"cazinoureview/services/logger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Calculator computes the monthly profit distribution from persisted work
// and test records. Calculation is a pure function of the month's rows and
// configuration; re-running it is safe.
type Calculator struct {
	db  *gorm.DB
	log logger.Logger
	cfg ProfitConfig
}

type CalculatorOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
	Config ProfitConfig
}

func NewCalculator(opts CalculatorOptions) *Calculator {
	log := opts.Logger
	if log == nil {
		log = logger.NewDefaultLogger(logger.InfoLevel)
	}

	cfg := opts.Config
	if cfg.TeamShares == nil {
		cfg = DefaultProfitConfig()
	}

	return &Calculator{
		db:  opts.DB,
		log: log,
		cfg: cfg,
	}
}

// Calculate runs the distribution for one month. A month with no rows
// yields zero totals and management-only entries, not an error.
func (s *Calculator) Calculate(ctx context.Context, month Month) (*dto.CalculationResult, error) {
	key := month.Key()
	s.log.Info("calculating profits for %s", key)

	// A never-imported month gets its accounting row here, at the default
	// rate, so the month key exists for later rate/expense edits.
	acc := models.MonthlyAccounting{Month: key, GbpUsdRate: s.cfg.DefaultRate}
	if err := s.db.WithContext(ctx).Where("month = ?", key).FirstOrCreate(&acc).Error; err != nil {
		return nil, err
	}

	rate := s.cfg.DefaultRate
	if acc.GbpUsdRate > 0 {
		rate = acc.GbpUsdRate
	}
	expenses := 0.0
	if acc.TotalExpenses != nil {
		expenses = *acc.TotalExpenses
	}

	var work []models.WorkRecord
	if err := s.db.WithContext(ctx).Preload("Employee").Where("month = ?", key).Find(&work).Error; err != nil {
		return nil, err
	}

	var tests []models.TestRecord
	if err := s.db.WithContext(ctx).Where("month = ?", key).Find(&tests).Error; err != nil {
		return nil, err
	}

	result := ComputeProfits(work, tests, rate, expenses, s.cfg)
	result.Month = key
	result.Message = calculationMessage(result)

	// Snapshot persistence is best-effort: an explicit error that we log
	// and surface in the message without failing the calculation.
	if err := s.saveSnapshot(result); err != nil {
		s.log.Error("snapshot for %s not saved: %v", key, err)
		result.Message += "\n• Note: result snapshot could not be saved"
	}

	return result, nil
}

// ComputeProfits is the pure calculation over one month's rows.
//
// Per row: base = (withdrawal - deposit) * rate * retention, and the
// worker's share is base * workerShare. The tester additionally earns an
// overlap bonus on every work row whose casino the tester has tested, a
// flat bonus tops up every total past the threshold, and management shares
// of the (possibly clawed-back) team base are merged in last.
func ComputeProfits(work []models.WorkRecord, tests []models.TestRecord, rate float64, expenses float64, cfg ProfitConfig) *dto.CalculationResult {
	r := decimal.NewFromFloat(rate)

	// Tested-casino set over the full row set, before any accumulation.
	testedSites := make(map[string]bool)
	for _, w := range work {
		if w.Employee.Handle == cfg.TesterHandle {
			testedSites[NormalizeCasino(w.Casino)] = true
		}
	}
	for _, t := range tests {
		testedSites[NormalizeCasino(t.Casino)] = true
	}

	totals := make(map[string]decimal.Decimal)
	totalBase := decimal.Zero
	totalProfit := decimal.Zero

	add := func(handle string, amount decimal.Decimal) {
		totals[handle] = totals[handle].Add(amount)
	}

	for _, w := range work {
		base := rowBase(w.Deposit, w.Withdrawal, r, cfg.RetentionFactor)
		share := base.Mul(cfg.WorkerShare)

		add(w.Employee.Handle, share)
		totalBase = totalBase.Add(base)
		totalProfit = totalProfit.Add(share)

		if testedSites[NormalizeCasino(w.Casino)] {
			add(cfg.TesterHandle, base.Mul(cfg.TesterOverlapShare))
		}
	}

	for _, t := range tests {
		base := rowBase(t.Deposit, t.Withdrawal, r, cfg.RetentionFactor)
		share := base.Mul(cfg.WorkerShare)

		add(cfg.TesterHandle, share)
		totalBase = totalBase.Add(base)
		totalProfit = totalProfit.Add(share)
	}

	employeeCount := len(totals)

	// Flat performance bonus: a cliff, not marginal. Strictly above the
	// threshold earns the full amount once.
	for handle, total := range totals {
		if total.GreaterThan(cfg.BonusThreshold) {
			totals[handle] = total.Add(cfg.BonusAmount)
		}
	}

	// Management distribution with expense clawback: expenses at or below
	// 25% of total base leave the team base untouched.
	exp := decimal.NewFromFloat(expenses)
	teamBase := totalBase
	if exp.GreaterThan(totalBase.Mul(cfg.ExpenseCeiling)) {
		teamBase = totalBase.Sub(exp)
	}

	teamHandles := make([]string, 0, len(cfg.TeamShares))
	for handle := range cfg.TeamShares {
		teamHandles = append(teamHandles, handle)
	}
	sort.Strings(teamHandles)

	team := make([]dto.HandleProfit, 0, len(teamHandles))
	for _, handle := range teamHandles {
		share := cfg.TeamShares[handle].Mul(teamBase)
		team = append(team, dto.HandleProfit{
			Handle: handle,
			Profit: round2(share),
		})
		// Merge into an existing employee total (the tester) or append.
		add(handle, share)
	}

	results := make([]dto.HandleProfit, 0, len(totals))
	for handle, total := range totals {
		results = append(results, dto.HandleProfit{
			Handle: handle,
			Profit: round2(total),
		})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Profit != results[j].Profit {
			return results[i].Profit > results[j].Profit
		}
		return results[i].Handle < results[j].Handle
	})

	return &dto.CalculationResult{
		Rate:        rate,
		TotalBase:   round2(totalBase),
		TotalProfit: round2(totalProfit),
		Results:     results,
		Team:        team,
		Summary: dto.CalculationSummary{
			WorkRecords:    len(work),
			TestRecords:    len(tests),
			TotalEmployees: employeeCount,
			TeamMembers:    len(cfg.TeamShares),
		},
	}
}

func rowBase(deposit, withdrawal float64, rate, retention decimal.Decimal) decimal.Decimal {
	return decimal.NewFromFloat(withdrawal).
		Sub(decimal.NewFromFloat(deposit)).
		Mul(rate).
		Mul(retention)
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

func (s *Calculator) saveSnapshot(result *dto.CalculationResult) error {
	resultsJSON, err := json.Marshal(result.Results)
	if err != nil {
		return err
	}

	snapshot := models.ProfitSnapshot{
		Month:       result.Month,
		Rate:        result.Rate,
		TotalBase:   result.TotalBase,
		TotalProfit: result.TotalProfit,
		ResultsJSON: string(resultsJSON),
	}

	var existing models.ProfitSnapshot
	err = s.db.Where("month = ?", result.Month).First(&existing).Error
	if err == nil {
		snapshot.ID = existing.ID
		return s.db.Save(&snapshot).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&snapshot).Error
	}
	return err
}

func calculationMessage(r *dto.CalculationResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Calculation finished for %s:\n", r.Month)
	fmt.Fprintf(&b, "• GBP/USD rate: %g\n", r.Rate)
	fmt.Fprintf(&b, "• Total base: $%.2f\n", r.TotalBase)
	fmt.Fprintf(&b, "• Total profit: $%.2f\n", r.TotalProfit)
	fmt.Fprintf(&b, "• Records processed: %d\n", r.Summary.WorkRecords+r.Summary.TestRecords)
	fmt.Fprintf(&b, "• Employees: %d\n", r.Summary.TotalEmployees)
	fmt.Fprintf(&b, "• Team members: %d", r.Summary.TeamMembers)
	return b.String()
}
