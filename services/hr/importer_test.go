package hr

import (
	"context"
	"errors"
	"testing"
	"time"

	"cazinoureview/dto"
	"cazinoureview/models"
	"cazinoureview/services/sheets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore serves canned folders and sheets, keyed by folder and
// spreadsheet ID.
type fakeStore struct {
	folders    []sheets.Folder
	foldersErr error

	spreadsheets   map[string]string // folder ID -> spreadsheet ID
	spreadsheetErr map[string]error

	titles map[string][]string        // spreadsheet ID -> tab names
	rows   map[string][][]interface{} // spreadsheet ID -> data rows
}

func (f *fakeStore) RootFolder(ctx context.Context) (string, error) {
	return "WORK RECORDS", nil
}

func (f *fakeStore) ListEmployeeFolders(ctx context.Context) ([]sheets.Folder, error) {
	if f.foldersErr != nil {
		return nil, f.foldersErr
	}
	return f.folders, nil
}

func (f *fakeStore) FindSpreadsheet(ctx context.Context, folderID string) (string, error) {
	if err := f.spreadsheetErr[folderID]; err != nil {
		return "", err
	}
	id, ok := f.spreadsheets[folderID]
	if !ok {
		return "", errors.New("no spreadsheet in folder")
	}
	return id, nil
}

func (f *fakeStore) ListSheetTitles(ctx context.Context, spreadsheetID string) ([]string, error) {
	return f.titles[spreadsheetID], nil
}

func (f *fakeStore) ReadRows(ctx context.Context, spreadsheetID, sheetTitle string, maxRows int) ([][]interface{}, error) {
	return f.rows[spreadsheetID], nil
}

func testImporter(store sheets.Store, cfg ImportConfig) *Importer {
	return NewImporter(ImporterOptions{Store: store, Config: cfg})
}

func august() Month {
	return Month{Year: 2025, Month: time.August}
}

func TestFetchAllCollectsPerEmployee(t *testing.T) {
	store := &fakeStore{
		folders: []sheets.Folder{
			{ID: "f1", Handle: "@alice"},
			{ID: "f2", Handle: "@bob"},
		},
		spreadsheets: map[string]string{"f1": "s1", "f2": "s2"},
		titles: map[string][]string{
			"s1": {"July", "August"},
			"s2": {"August 2025"},
		},
		rows: map[string][][]interface{}{
			"s1": {
				{"LuckySpin", "100", "150", "Visa"},
				{"", "", ""},
			},
			"s2": {
				{"OtherSite", "0", "30"},
			},
		},
	}

	imp := testImporter(store, ImportConfig{})
	summary := &dto.ImportSummary{Processed: []dto.EmployeeImport{}, Errors: []string{}}

	collected := imp.fetchAll(context.Background(), store.folders, august(), summary)

	require.Len(t, collected, 2)
	assert.Len(t, collected["@alice"], 1)
	assert.Len(t, collected["@bob"], 1)
	assert.Len(t, summary.Processed, 2)
	assert.Empty(t, summary.Errors)
	assert.False(t, summary.Partial)
}

func TestFetchAllIsolatesEmployeeFailures(t *testing.T) {
	store := &fakeStore{
		folders: []sheets.Folder{
			{ID: "f1", Handle: "@alice"},
			{ID: "f2", Handle: "@broken"},
		},
		spreadsheets:   map[string]string{"f1": "s1"},
		spreadsheetErr: map[string]error{"f2": errors.New("drive unavailable")},
		titles:         map[string][]string{"s1": {"August"}},
		rows: map[string][][]interface{}{
			"s1": {{"LuckySpin", "100", "150"}},
		},
	}

	imp := testImporter(store, ImportConfig{})
	summary := &dto.ImportSummary{Processed: []dto.EmployeeImport{}, Errors: []string{}}

	collected := imp.fetchAll(context.Background(), store.folders, august(), summary)

	require.Len(t, collected, 1)
	assert.Len(t, collected["@alice"], 1)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "@broken")
	assert.Contains(t, summary.Errors[0], "drive unavailable")
}

func TestFetchAllMissingTabSuggestsClosest(t *testing.T) {
	store := &fakeStore{
		folders:      []sheets.Folder{{ID: "f1", Handle: "@alice"}},
		spreadsheets: map[string]string{"f1": "s1"},
		titles:       map[string][]string{"s1": {"Augsut", "July"}},
	}

	imp := testImporter(store, ImportConfig{})
	summary := &dto.ImportSummary{Processed: []dto.EmployeeImport{}, Errors: []string{}}

	collected := imp.fetchAll(context.Background(), store.folders, august(), summary)

	assert.Empty(t, collected)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "no sheet tab for August 2025")
	assert.Contains(t, summary.Errors[0], "Augsut")
}

func TestFetchAllSoftDeadlineStopsBetweenBatches(t *testing.T) {
	store := &fakeStore{
		folders: []sheets.Folder{
			{ID: "f1", Handle: "@a"},
			{ID: "f2", Handle: "@b"},
			{ID: "f3", Handle: "@c"},
		},
		spreadsheets: map[string]string{"f1": "s1", "f2": "s1", "f3": "s1"},
		titles:       map[string][]string{"s1": {"August"}},
		rows: map[string][][]interface{}{
			"s1": {{"LuckySpin", "100", "150"}},
		},
	}

	imp := testImporter(store, ImportConfig{BatchSize: 1, SoftDeadline: time.Nanosecond})
	summary := &dto.ImportSummary{Processed: []dto.EmployeeImport{}, Errors: []string{}}

	collected := imp.fetchAll(context.Background(), store.folders, august(), summary)

	// The first batch always runs; the deadline check only fires before a
	// later batch.
	require.Len(t, collected, 1)
	assert.True(t, summary.Partial)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "2 employees not fetched")
}

func TestRunUpsertsEveryEnumeratedEmployee(t *testing.T) {
	store := &fakeStore{
		folders: []sheets.Folder{
			{ID: "f1", Handle: "@alice"},
			{ID: "f2", Handle: "@broken"},
		},
		spreadsheets:   map[string]string{"f1": "s1"},
		spreadsheetErr: map[string]error{"f2": errors.New("drive unavailable")},
		titles:         map[string][]string{"s1": {"August"}},
		rows: map[string][][]interface{}{
			"s1": {{"LuckySpin", "100", "150"}},
		},
	}

	db := openTestDB(t)
	imp := NewImporter(ImporterOptions{DB: db, Store: store})

	summary, err := imp.Run(context.Background(), august())
	require.NoError(t, err)
	require.Len(t, summary.Errors, 1)

	// The identity whose document failed to fetch still joins the roster.
	var broken models.Employee
	require.NoError(t, db.Where("handle = ?", "@broken").First(&broken).Error)
	assert.Equal(t, "JUNIOR", broken.Role)
	assert.True(t, broken.IsActive)

	var count int64
	db.Model(&models.WorkRecord{}).Where("month = ?", "August 2025").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRunReplacesMonthIdempotently(t *testing.T) {
	store := &fakeStore{
		folders:      []sheets.Folder{{ID: "f1", Handle: "@alice"}},
		spreadsheets: map[string]string{"f1": "s1"},
		titles:       map[string][]string{"s1": {"August"}},
		rows: map[string][][]interface{}{
			"s1": {
				{"LuckySpin", "100", "150", "Visa"},
				{"OtherSite", "0", "30"},
			},
		},
	}

	db := openTestDB(t)
	imp := NewImporter(ImporterOptions{DB: db, Store: store})

	for i := 0; i < 2; i++ {
		summary, err := imp.Run(context.Background(), august())
		require.NoError(t, err)
		assert.Equal(t, 2, summary.Imported)
	}

	var count int64
	db.Model(&models.WorkRecord{}).Where("month = ?", "August 2025").Count(&count)
	assert.Equal(t, int64(2), count)

	var employees int64
	db.Model(&models.Employee{}).Count(&employees)
	// @alice plus the tester, once each.
	assert.Equal(t, int64(2), employees)

	var acc models.MonthlyAccounting
	require.NoError(t, db.Where("month = ?", "August 2025").First(&acc).Error)
	assert.Equal(t, 1.27, acc.GbpUsdRate)
}

func TestNewImporterDefaults(t *testing.T) {
	imp := NewImporter(ImporterOptions{})

	assert.Equal(t, 5, imp.cfg.BatchSize)
	assert.Equal(t, 1000, imp.cfg.MaxRows)
	assert.Equal(t, 50*time.Second, imp.cfg.SoftDeadline)
	assert.Equal(t, TesterHandle, imp.cfg.TesterHandle)
}
