package hr

import (
	"time"

	"cazinoureview/constants"

	"github.com/shopspring/decimal"
)

// TesterHandle is the distinguished tester/management member.
const TesterHandle = "@sobroffice"

// ProfitConfig holds every business constant of the profit calculation so
// tests and future months can override them in one place.
type ProfitConfig struct {
	// DefaultRate is the GBP/USD fallback when a month has no accounting row.
	DefaultRate float64
	// RetentionFactor models the fee/slippage haircut on every row.
	RetentionFactor decimal.Decimal
	// WorkerShare is the ordinary worker's cut of base profit.
	WorkerShare decimal.Decimal
	// TesterOverlapShare is the verification bonus fraction the tester earns
	// on work rows for casinos the tester has also tested.
	TesterOverlapShare decimal.Decimal
	// BonusThreshold/BonusAmount define the flat performance bonus cliff.
	BonusThreshold decimal.Decimal
	BonusAmount    decimal.Decimal
	// ExpenseCeiling is the fraction of total base that expenses may reach
	// before the management team base is clawed back.
	ExpenseCeiling decimal.Decimal
	// TesterHandle is the employee whose compensation aggregates test rows,
	// the overlap bonus and a management share.
	TesterHandle string
	// TeamShares maps management handles to their fixed share of team base.
	TeamShares map[string]decimal.Decimal
}

// DefaultProfitConfig returns the production configuration.
func DefaultProfitConfig() ProfitConfig {
	return ProfitConfig{
		DefaultRate:        constants.DefaultGbpUsdRate,
		RetentionFactor:    decimal.NewFromFloat(0.97),
		WorkerShare:        decimal.NewFromFloat(0.10),
		TesterOverlapShare: decimal.NewFromFloat(0.10),
		BonusThreshold:     decimal.NewFromInt(200),
		BonusAmount:        decimal.NewFromInt(200),
		ExpenseCeiling:     decimal.NewFromFloat(0.25),
		TesterHandle:       TesterHandle,
		TeamShares: map[string]decimal.Decimal{
			"@i88jU":      decimal.NewFromFloat(0.05),
			"@n1mbo":      decimal.NewFromFloat(0.10),
			"@sobroffice": decimal.NewFromFloat(0.10),
			"@zvr1903":    decimal.NewFromFloat(0.05),
		},
	}
}

// ImportConfig bounds the import run.
type ImportConfig struct {
	// BatchSize is how many employee documents are fetched concurrently.
	BatchSize int
	// MaxRows caps how many rows are read per sheet.
	MaxRows int
	// SoftDeadline stops launching further batches once exceeded; the run
	// returns partial results instead of timing out entirely.
	SoftDeadline time.Duration
	// TesterHandle and TesterSpreadsheetID locate the shared tester dataset.
	TesterHandle        string
	TesterSpreadsheetID string
}

// DefaultImportConfig returns the production import bounds.
func DefaultImportConfig(testerSpreadsheetID string) ImportConfig {
	return ImportConfig{
		BatchSize:           5,
		MaxRows:             1000,
		SoftDeadline:        50 * time.Second,
		TesterHandle:        TesterHandle,
		TesterSpreadsheetID: testerSpreadsheetID,
	}
}
