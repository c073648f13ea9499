package hr

import (
	"path/filepath"
	"testing"

	"cazinoureview/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "hr.db")), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Employee{},
		&models.WorkRecord{},
		&models.TestRecord{},
		&models.MonthlyAccounting{},
		&models.ProfitSnapshot{},
	))
	return db
}
