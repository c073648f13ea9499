package hr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"cazinoureview/constants"
	"cazinoureview/dto"
	"cazinoureview/models"
	"cazinoureview/services/logger"
	"cazinoureview/services/sheets"

	"gorm.io/gorm"
)

// Importer replaces a month's work and test records with fresh rows from
// the external document store. Re-running for the same month is idempotent:
// all rows for the month are deleted before the new ones are inserted.
type Importer struct {
	db    *gorm.DB
	store sheets.Store
	log   logger.Logger
	cfg   ImportConfig
}

type ImporterOptions struct {
	DB     *gorm.DB
	Store  sheets.Store
	Logger logger.Logger
	Config ImportConfig
}

func NewImporter(opts ImporterOptions) *Importer {
	cfg := opts.Config
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 5
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = 1000
	}
	if cfg.SoftDeadline <= 0 {
		cfg.SoftDeadline = 50 * time.Second
	}
	if cfg.TesterHandle == "" {
		cfg.TesterHandle = TesterHandle
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewDefaultLogger(logger.InfoLevel)
	}

	return &Importer{
		db:    opts.DB,
		store: opts.Store,
		log:   log,
		cfg:   cfg,
	}
}

type fetchResult struct {
	handle string
	rows   []Row
	err    error
}

// Run imports one month. A failure on one employee's document is collected
// into the summary and never aborts the run; a failure to enumerate
// employees at all does.
func (s *Importer) Run(ctx context.Context, month Month) (*dto.ImportSummary, error) {
	key := month.Key()
	s.log.Info("starting import for %s", key)

	folders, err := s.store.ListEmployeeFolders(ctx)
	if err != nil {
		return nil, err
	}

	// Every enumerated identity joins the roster up front, so an employee
	// whose document later fails to fetch still exists.
	for _, folder := range folders {
		if _, err := s.upsertEmployee(folder.Handle); err != nil {
			return nil, err
		}
	}

	summary := &dto.ImportSummary{
		Month:     key,
		Processed: []dto.EmployeeImport{},
		Errors:    []string{},
	}

	collected := s.fetchAll(ctx, folders, month, summary)

	var testRows []Row
	if s.cfg.TesterSpreadsheetID != "" {
		testRows, err = s.fetchSheetRows(ctx, s.cfg.TesterSpreadsheetID, month)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s (tests): %v", s.cfg.TesterHandle, err))
			testRows = nil
		}
	}

	if err := s.persist(month, collected, testRows, summary); err != nil {
		return nil, err
	}

	summary.Message = importMessage(summary)
	s.log.Info("import for %s done: %d rows, %d errors", key, summary.Imported+summary.TestRows, len(summary.Errors))
	return summary, nil
}

// fetchAll reads every employee folder in concurrent batches. Per-employee
// failures are collected into the summary; the soft deadline stops the run
// between batches and marks it partial.
func (s *Importer) fetchAll(ctx context.Context, folders []sheets.Folder, month Month, summary *dto.ImportSummary) map[string][]Row {
	start := time.Now()
	collected := make(map[string][]Row, len(folders))

	var mu sync.Mutex
	for i := 0; i < len(folders); i += s.cfg.BatchSize {
		if time.Since(start) > s.cfg.SoftDeadline && i > 0 {
			summary.Partial = true
			remaining := len(folders) - i
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("soft deadline reached, %d employees not fetched", remaining))
			break
		}

		end := i + s.cfg.BatchSize
		if end > len(folders) {
			end = len(folders)
		}

		var wg sync.WaitGroup
		for _, folder := range folders[i:end] {
			wg.Add(1)
			go func(f sheets.Folder) {
				defer wg.Done()
				res := s.fetchEmployeeRows(ctx, f, month)

				mu.Lock()
				defer mu.Unlock()
				if res.err != nil {
					summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", res.handle, res.err))
					return
				}
				collected[res.handle] = res.rows
				summary.Processed = append(summary.Processed, dto.EmployeeImport{
					Handle: res.handle,
					Rows:   len(res.rows),
				})
			}(folder)
		}
		wg.Wait()
	}

	return collected
}

// fetchEmployeeRows locates the employee's spreadsheet and reads the
// month's rows from it.
func (s *Importer) fetchEmployeeRows(ctx context.Context, folder sheets.Folder, month Month) fetchResult {
	spreadsheetID, err := s.store.FindSpreadsheet(ctx, folder.ID)
	if err != nil {
		return fetchResult{handle: folder.Handle, err: err}
	}

	rows, err := s.fetchSheetRows(ctx, spreadsheetID, month)
	return fetchResult{handle: folder.Handle, rows: rows, err: err}
}

func (s *Importer) fetchSheetRows(ctx context.Context, spreadsheetID string, month Month) ([]Row, error) {
	titles, err := s.store.ListSheetTitles(ctx, spreadsheetID)
	if err != nil {
		return nil, err
	}

	title, ok := sheets.MatchTitle(titles, month.SheetCandidates())
	if !ok {
		msg := fmt.Sprintf("no sheet tab for %s", month.Key())
		if suggestion := sheets.SuggestTitle(titles, month.Name()); suggestion != "" {
			msg = fmt.Sprintf("%s (closest tab: %q)", msg, suggestion)
		}
		return nil, errors.New(msg)
	}

	raw, err := s.store.ReadRows(ctx, spreadsheetID, title, s.cfg.MaxRows)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(raw))
	for _, cells := range raw {
		row, skip := ParseRow(cells)
		if skip != SkipNone {
			s.log.Debug("skipping row in %q: %s", title, skip)
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// persist replaces the month's rows. Delete-then-insert is deliberately
// not wrapped in a transaction: imports are single-writer admin operations
// and a crashed run is repaired by re-running it.
func (s *Importer) persist(month Month, collected map[string][]Row, testRows []Row, summary *dto.ImportSummary) error {
	key := month.Key()

	employees := make(map[string]models.Employee, len(collected)+1)
	for handle := range collected {
		emp, err := s.upsertEmployee(handle)
		if err != nil {
			return err
		}
		employees[handle] = emp
	}

	tester, err := s.upsertEmployee(s.cfg.TesterHandle)
	if err != nil {
		return err
	}

	if err := s.db.Where("month = ?", key).Delete(&models.WorkRecord{}).Error; err != nil {
		return err
	}
	if err := s.db.Where("month = ?", key).Delete(&models.TestRecord{}).Error; err != nil {
		return err
	}

	var workRecords []models.WorkRecord
	for handle, rows := range collected {
		emp := employees[handle]
		for _, row := range rows {
			workRecords = append(workRecords, models.WorkRecord{
				EmployeeID: emp.ID,
				Month:      key,
				Casino:     row.Casino,
				Deposit:    row.Deposit,
				Withdrawal: row.Withdrawal,
				Card:       row.Card,
			})
		}
	}
	if len(workRecords) > 0 {
		if err := s.db.CreateInBatches(workRecords, 200).Error; err != nil {
			return err
		}
	}
	summary.Imported = len(workRecords)

	var testRecords []models.TestRecord
	for _, row := range testRows {
		testRecords = append(testRecords, models.TestRecord{
			EmployeeID: tester.ID,
			Month:      key,
			Casino:     row.Casino,
			Deposit:    row.Deposit,
			Withdrawal: row.Withdrawal,
			Card:       row.Card,
		})
	}
	if len(testRecords) > 0 {
		if err := s.db.CreateInBatches(testRecords, 200).Error; err != nil {
			return err
		}
	}
	summary.TestRows = len(testRecords)

	// Make sure the month has an accounting row for the calculator.
	acc := models.MonthlyAccounting{Month: key, GbpUsdRate: constants.DefaultGbpUsdRate}
	if err := s.db.Where("month = ?", key).FirstOrCreate(&acc).Error; err != nil {
		return err
	}

	return nil
}

// upsertEmployee finds or creates an employee by handle. The distinguished
// tester handle gets the TESTER role on creation.
func (s *Importer) upsertEmployee(handle string) (models.Employee, error) {
	var emp models.Employee
	err := s.db.Where("handle = ?", handle).First(&emp).Error
	if err == nil {
		return emp, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Employee{}, err
	}

	role := constants.RoleJunior
	if handle == s.cfg.TesterHandle {
		role = constants.RoleTester
	}
	emp = models.Employee{
		Handle:   handle,
		Role:     role,
		IsActive: true,
	}
	if err := s.db.Create(&emp).Error; err != nil {
		return models.Employee{}, err
	}
	return emp, nil
}

func importMessage(s *dto.ImportSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Import finished for %s:\n", s.Month)
	fmt.Fprintf(&b, "• Work rows imported: %d\n", s.Imported)
	fmt.Fprintf(&b, "• Test rows imported: %d\n", s.TestRows)
	fmt.Fprintf(&b, "• Employees processed: %d\n", len(s.Processed))
	fmt.Fprintf(&b, "• Errors: %d", len(s.Errors))
	if s.Partial {
		b.WriteString("\n• Run stopped at the soft deadline; re-run to pick up the rest")
	}
	return b.String()
}
