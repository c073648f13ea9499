package hr

import (
	"sort"

	"cazinoureview/dto"
	"cazinoureview/models"

	"github.com/shopspring/decimal"
)

// BuildMonthlyData assembles the admin read view for one month: every row
// with its computed share, per-site profit, and per-employee profit with
// the flat bonus applied. Management shares are not part of this view.
func BuildMonthlyData(work []models.WorkRecord, tests []models.TestRecord, rate float64, cfg ProfitConfig) *dto.MonthlyData {
	r := decimal.NewFromFloat(rate)

	siteProfits := make(map[string]decimal.Decimal)
	siteNames := make(map[string]string)
	employeeProfits := make(map[string]decimal.Decimal)

	addSite := func(casino string, profit decimal.Decimal) {
		normalized := NormalizeCasino(casino)
		siteProfits[normalized] = siteProfits[normalized].Add(profit)
		if _, ok := siteNames[normalized]; !ok {
			siteNames[normalized] = casino
		}
	}

	workRows := make([]dto.MonthlyRow, 0, len(work))
	for _, w := range work {
		base := rowBase(w.Deposit, w.Withdrawal, r, cfg.RetentionFactor)
		share := base.Mul(cfg.WorkerShare)

		workRows = append(workRows, dto.MonthlyRow{
			Handle:      w.Employee.Handle,
			Casino:      w.Casino,
			Card:        w.Card,
			Deposit:     w.Deposit,
			Withdrawal:  w.Withdrawal,
			Calculation: round2(share),
		})

		// Site profit is the raw converted result, before the haircut.
		siteProfit := decimal.NewFromFloat(w.Withdrawal).Sub(decimal.NewFromFloat(w.Deposit)).Mul(r)
		addSite(w.Casino, siteProfit)
		employeeProfits[w.Employee.Handle] = employeeProfits[w.Employee.Handle].Add(share)
	}

	testRows := make([]dto.MonthlyRow, 0, len(tests))
	for _, t := range tests {
		base := rowBase(t.Deposit, t.Withdrawal, r, cfg.RetentionFactor)
		share := base.Mul(cfg.WorkerShare)

		testRows = append(testRows, dto.MonthlyRow{
			Handle:      cfg.TesterHandle,
			Casino:      t.Casino,
			Card:        t.Card,
			Deposit:     t.Deposit,
			Withdrawal:  t.Withdrawal,
			Calculation: round2(share),
		})

		siteProfit := decimal.NewFromFloat(t.Withdrawal).Sub(decimal.NewFromFloat(t.Deposit)).Mul(r)
		addSite(t.Casino, siteProfit)
		employeeProfits[cfg.TesterHandle] = employeeProfits[cfg.TesterHandle].Add(share)
	}

	totalProfit := decimal.Zero
	sites := make([]dto.SiteProfit, 0, len(siteProfits))
	for normalized, profit := range siteProfits {
		totalProfit = totalProfit.Add(profit)
		sites = append(sites, dto.SiteProfit{
			Site:   siteNames[normalized],
			Profit: round2(profit),
		})
	}
	sort.Slice(sites, func(i, j int) bool {
		if sites[i].Profit != sites[j].Profit {
			return sites[i].Profit > sites[j].Profit
		}
		return sites[i].Site < sites[j].Site
	})

	perEmployee := make([]dto.HandleProfit, 0, len(employeeProfits))
	for handle, profit := range employeeProfits {
		if profit.GreaterThan(cfg.BonusThreshold) {
			profit = profit.Add(cfg.BonusAmount)
		}
		perEmployee = append(perEmployee, dto.HandleProfit{
			Handle: handle,
			Profit: round2(profit),
		})
	}
	sort.Slice(perEmployee, func(i, j int) bool {
		if perEmployee[i].Profit != perEmployee[j].Profit {
			return perEmployee[i].Profit > perEmployee[j].Profit
		}
		return perEmployee[i].Handle < perEmployee[j].Handle
	})

	return &dto.MonthlyData{
		Rate:            rate,
		WorkData:        workRows,
		TestData:        testRows,
		SiteProfits:     sites,
		EmployeeProfits: perEmployee,
		TotalProfit:     round2(totalProfit),
		Stats: dto.MonthlyDataStats{
			TotalRecords:   len(work) + len(tests),
			TotalEmployees: len(perEmployee),
			TotalSites:     len(sites),
		},
	}
}
