package hr

import (
	"testing"

	"cazinoureview/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMonthlyData(t *testing.T) {
	cfg := DefaultProfitConfig()
	work := []models.WorkRecord{
		workRow("@worker", "LuckySpin", 1000, 1200),
		workRow("@worker", "luckyspin", 0, 100),
		workRow("@other", "OtherSite", 50, 40),
	}
	tests := []models.TestRecord{
		testRow("OtherSite", 0, 10),
	}

	data := BuildMonthlyData(work, tests, 1.3, cfg)

	require.Len(t, data.WorkData, 3)
	require.Len(t, data.TestData, 1)

	// Per-row share: (1200 - 1000) * 1.3 * 0.97 * 0.10.
	assert.Equal(t, 25.22, data.WorkData[0].Calculation)
	// Losing rows keep their negative share visible.
	assert.Equal(t, -1.26, data.WorkData[2].Calculation)
	assert.Equal(t, TesterHandle, data.TestData[0].Handle)

	// Site grouping is normalized, so both LuckySpin spellings fold into
	// one entry with the raw converted profit (no retention haircut).
	require.Len(t, data.SiteProfits, 2)
	assert.Equal(t, "LuckySpin", data.SiteProfits[0].Site)
	assert.Equal(t, 390.0, data.SiteProfits[0].Profit)
	assert.Equal(t, "OtherSite", data.SiteProfits[1].Site)
	assert.Equal(t, 0.0, data.SiteProfits[1].Profit)

	// @worker, @other and the tester each get an entry, sorted by profit.
	require.Len(t, data.EmployeeProfits, 3)
	assert.Equal(t, "@worker", data.EmployeeProfits[0].Handle)
	assert.Equal(t, 37.83, data.EmployeeProfits[0].Profit)
	assert.Equal(t, TesterHandle, data.EmployeeProfits[1].Handle)
	assert.Equal(t, "@other", data.EmployeeProfits[2].Handle)

	assert.Equal(t, 390.0, data.TotalProfit)
	assert.Equal(t, 4, data.Stats.TotalRecords)
	assert.Equal(t, 3, data.Stats.TotalEmployees)
	assert.Equal(t, 2, data.Stats.TotalSites)
}

func TestBuildMonthlyDataAppliesBonusPerEmployee(t *testing.T) {
	cfg := DefaultProfitConfig()
	work := []models.WorkRecord{
		workRow("@big", "SiteA", 0, 2000),
	}

	data := BuildMonthlyData(work, nil, 1.3, cfg)

	// Share 2000 * 1.3 * 0.97 * 0.10 = 252.2 clears the bonus cliff.
	require.Len(t, data.EmployeeProfits, 1)
	assert.Equal(t, 452.2, data.EmployeeProfits[0].Profit)
	// Row-level calculation stays bonus-free.
	assert.Equal(t, 252.2, data.WorkData[0].Calculation)
}

func TestBuildMonthlyDataEmpty(t *testing.T) {
	data := BuildMonthlyData(nil, nil, 1.27, DefaultProfitConfig())

	assert.Empty(t, data.WorkData)
	assert.Empty(t, data.TestData)
	assert.Empty(t, data.SiteProfits)
	assert.Empty(t, data.EmployeeProfits)
	assert.Zero(t, data.TotalProfit)
	assert.Zero(t, data.Stats.TotalRecords)
}
