package hr

import (
	"context"
	"testing"

	"cazinoureview/dto"
	"cazinoureview/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workRow(handle, casino string, deposit, withdrawal float64) models.WorkRecord {
	return models.WorkRecord{
		Employee:   models.Employee{Handle: handle},
		Casino:     casino,
		Deposit:    deposit,
		Withdrawal: withdrawal,
	}
}

func testRow(casino string, deposit, withdrawal float64) models.TestRecord {
	return models.TestRecord{
		Casino:     casino,
		Deposit:    deposit,
		Withdrawal: withdrawal,
	}
}

func findProfit(t *testing.T, entries []dto.HandleProfit, handle string) float64 {
	t.Helper()
	for _, e := range entries {
		if e.Handle == handle {
			return e.Profit
		}
	}
	t.Fatalf("no entry for %s", handle)
	return 0
}

// plainConfig strips the management layer so single mechanisms can be
// asserted in isolation.
func plainConfig() ProfitConfig {
	cfg := DefaultProfitConfig()
	cfg.TeamShares = map[string]decimal.Decimal{}
	return cfg
}

func TestComputeProfitsBaseShare(t *testing.T) {
	cfg := DefaultProfitConfig()
	work := []models.WorkRecord{
		workRow("@worker", "LuckySpin", 1000, 1200),
	}

	res := ComputeProfits(work, nil, 1.3, 0, cfg)

	// (1200 - 1000) * 1.3 * 0.97 = 252.2, worker keeps 10%.
	assert.Equal(t, 252.2, res.TotalBase)
	assert.Equal(t, 25.22, res.TotalProfit)
	assert.Equal(t, 25.22, findProfit(t, res.Results, "@worker"))

	// Management shares come out of the full team base.
	assert.Equal(t, 12.61, findProfit(t, res.Team, "@i88jU"))
	assert.Equal(t, 25.22, findProfit(t, res.Team, "@n1mbo"))
	assert.Equal(t, 25.22, findProfit(t, res.Team, "@sobroffice"))
	assert.Equal(t, 12.61, findProfit(t, res.Team, "@zvr1903"))

	assert.Equal(t, 1, res.Summary.WorkRecords)
	assert.Equal(t, 1, res.Summary.TotalEmployees)
	assert.Equal(t, 4, res.Summary.TeamMembers)
}

func TestComputeProfitsBonusCliff(t *testing.T) {
	// Unit rate and shares so a row's withdrawal is the worker's total.
	cfg := plainConfig()
	cfg.RetentionFactor = decimal.NewFromInt(1)
	cfg.WorkerShare = decimal.NewFromInt(1)

	tests := []struct {
		name       string
		withdrawal float64
		want       float64
	}{
		{name: "Exactly at threshold", withdrawal: 200, want: 200},
		{name: "Just above threshold", withdrawal: 200.01, want: 400.01},
		{name: "Below threshold", withdrawal: 199.99, want: 199.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			work := []models.WorkRecord{
				workRow("@worker", "LuckySpin", 0, tt.withdrawal),
			}
			res := ComputeProfits(work, nil, 1, 0, cfg)
			assert.Equal(t, tt.want, findProfit(t, res.Results, "@worker"))
		})
	}
}

func TestComputeProfitsTesterOverlap(t *testing.T) {
	cfg := plainConfig()
	work := []models.WorkRecord{
		workRow("@worker", "LuckySpin", 100, 150),
		workRow("@worker", "OtherSite", 0, 30),
	}
	tests := []models.TestRecord{
		// Casino matching is normalized, not literal.
		testRow("  luckyspin ", 0, 10),
	}

	res := ComputeProfits(work, tests, 1.27, 0, cfg)

	// Worker: (50 * 1.27 * 0.97) * 0.10 + (30 * 1.27 * 0.97) * 0.10.
	assert.Equal(t, 9.86, findProfit(t, res.Results, "@worker"))

	// Tester: own test row share 1.2319 plus the 10% overlap bonus on the
	// worker's LuckySpin row, 6.1595. OtherSite was never tested and
	// contributes nothing.
	assert.Equal(t, 7.39, findProfit(t, res.Results, TesterHandle))

	// Bases: 61.595 + 36.957 + 12.319 across the three rows.
	assert.Equal(t, 110.87, res.TotalBase)
	// Totals carry worker shares only; the overlap bonus is on top of them.
	assert.Equal(t, 11.09, res.TotalProfit)
}

func TestComputeProfitsOverlapFromTesterWorkRows(t *testing.T) {
	cfg := plainConfig()
	work := []models.WorkRecord{
		workRow(TesterHandle, "LuckySpin", 0, 100),
		workRow("@worker", "LuckySpin", 0, 100),
	}

	res := ComputeProfits(work, nil, 1, 0, cfg)

	// The tester's own work rows mark the casino as tested, so both rows
	// carry the overlap bonus: 2 * (97 * 0.10) share-equivalent on top of
	// the tester's own 9.7 share.
	assert.Equal(t, 29.1, findProfit(t, res.Results, TesterHandle))
	assert.Equal(t, 9.7, findProfit(t, res.Results, "@worker"))
}

func TestComputeProfitsExpenseClawback(t *testing.T) {
	cfg := plainConfig()
	cfg.RetentionFactor = decimal.NewFromInt(1)
	cfg.TeamShares = map[string]decimal.Decimal{
		"@mgr": decimal.NewFromFloat(0.10),
	}

	work := []models.WorkRecord{
		workRow("@worker", "LuckySpin", 0, 1000),
	}

	tests := []struct {
		name     string
		expenses float64
		want     float64
	}{
		{name: "At ceiling leaves base intact", expenses: 250, want: 100},
		{name: "Above ceiling claws back", expenses: 250.01, want: 75},
		{name: "No expenses", expenses: 0, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ComputeProfits(work, nil, 1, tt.expenses, cfg)
			assert.Equal(t, tt.want, findProfit(t, res.Team, "@mgr"))
		})
	}
}

func TestComputeProfitsManagementMergesIntoEmployeeTotal(t *testing.T) {
	cfg := DefaultProfitConfig()
	tests := []models.TestRecord{
		testRow("LuckySpin", 0, 100),
	}

	res := ComputeProfits(nil, tests, 1.3, 0, cfg)

	// Base 100 * 1.3 * 0.97 = 126.1. The tester earns the 10% worker share
	// on the test row plus the 10% management share, merged into one entry.
	seen := 0
	for _, e := range res.Results {
		if e.Handle == TesterHandle {
			seen++
		}
	}
	require.Equal(t, 1, seen)
	assert.Equal(t, 25.22, findProfit(t, res.Results, TesterHandle))
	assert.Equal(t, 12.61, findProfit(t, res.Team, TesterHandle))
}

func TestComputeProfitsEmptyMonth(t *testing.T) {
	res := ComputeProfits(nil, nil, 1.27, 0, DefaultProfitConfig())

	assert.Zero(t, res.TotalBase)
	assert.Zero(t, res.TotalProfit)
	assert.Equal(t, 0, res.Summary.TotalEmployees)

	// Management entries still appear, at zero.
	require.Len(t, res.Team, 4)
	for _, e := range res.Team {
		assert.Zero(t, e.Profit)
	}
}

func TestCalculateCreatesAccountingRow(t *testing.T) {
	db := openTestDB(t)
	calc := NewCalculator(CalculatorOptions{DB: db})

	res, err := calc.Calculate(context.Background(), august())
	require.NoError(t, err)

	// A never-imported month still leaves its accounting row behind, at
	// the default rate.
	var acc models.MonthlyAccounting
	require.NoError(t, db.Where("month = ?", "August 2025").First(&acc).Error)
	assert.Equal(t, 1.27, acc.GbpUsdRate)
	assert.Equal(t, 1.27, res.Rate)
	assert.Zero(t, res.TotalBase)

	// Re-running updates in place, no duplicate rows.
	_, err = calc.Calculate(context.Background(), august())
	require.NoError(t, err)

	var accounts, snapshots int64
	db.Model(&models.MonthlyAccounting{}).Count(&accounts)
	db.Model(&models.ProfitSnapshot{}).Count(&snapshots)
	assert.Equal(t, int64(1), accounts)
	assert.Equal(t, int64(1), snapshots)
}

func TestCalculateUsesStoredRate(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.MonthlyAccounting{
		Month:      "August 2025",
		GbpUsdRate: 1.3,
	}).Error)

	emp := models.Employee{Handle: "@worker", Role: "JUNIOR", IsActive: true}
	require.NoError(t, db.Create(&emp).Error)
	require.NoError(t, db.Create(&models.WorkRecord{
		EmployeeID: emp.ID,
		Month:      "August 2025",
		Casino:     "LuckySpin",
		Deposit:    1000,
		Withdrawal: 1200,
		Card:       "N/A",
	}).Error)

	calc := NewCalculator(CalculatorOptions{DB: db})
	res, err := calc.Calculate(context.Background(), august())
	require.NoError(t, err)

	assert.Equal(t, 1.3, res.Rate)
	assert.Equal(t, 252.2, res.TotalBase)
	assert.Equal(t, 25.22, findProfit(t, res.Results, "@worker"))
}

func TestComputeProfitsResultOrdering(t *testing.T) {
	cfg := plainConfig()
	work := []models.WorkRecord{
		workRow("@small", "A", 0, 10),
		workRow("@big", "B", 0, 1000),
		workRow("@alpha", "C", 0, 10),
	}

	res := ComputeProfits(work, nil, 1, 0, cfg)

	require.Len(t, res.Results, 3)
	assert.Equal(t, "@big", res.Results[0].Handle)
	// Ties break alphabetically.
	assert.Equal(t, "@alpha", res.Results[1].Handle)
	assert.Equal(t, "@small", res.Results[2].Handle)
}
