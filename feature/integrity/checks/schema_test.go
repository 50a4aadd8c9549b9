package checks

import (
	"regexp"
	"testing"

	"stocktake/core/database"
	"stocktake/feature/stocktake/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func sqliteDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil, models.All())
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_Migrated(t *testing.T) {
	db := sqliteDB(t)
	all := append(models.All(), models.Registry()...)
	require.NoError(t, db.AutoMigrate(all...))

	report, err := CheckSchema(db, all)
	require.NoError(t, err)
	assert.True(t, report.Matched, "%+v", report)
	assert.Equal(t, "sqlite", report.Dialect)
	assert.Len(t, report.Tables, 6)
	for name, tbl := range report.Tables {
		assert.Equal(t, "ok", tbl.Status, name)
	}
}

func TestCheckSchema_MissingTable(t *testing.T) {
	db := sqliteDB(t)
	require.NoError(t, db.AutoMigrate(&models.Session{}))

	report, err := CheckSchema(db, []any{&models.Session{}, &models.CountRecord{}})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, "ok", report.Tables["inventory_sessions"].Status)
	assert.Equal(t, "missing", report.Tables["inventory_counts"].Status)
}

func TestCheckSchema_MissingColumn(t *testing.T) {
	db := sqliteDB(t)
	require.NoError(t, db.Exec("CREATE TABLE settings (setting_key TEXT PRIMARY KEY, value TEXT, updated_at DATETIME)").Error)

	report, err := CheckSchema(db, []any{&models.Setting{}})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	tbl := report.Tables["settings"]
	assert.Equal(t, "error", tbl.Status)
	assert.Equal(t, []string{"updated_by"}, tbl.MissingColumns)
}

func TestCheckSchema_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("setting_key", "varchar(64)", "NO", "PRI", nil, "").
		AddRow("value", "int(11)", "YES", "", nil, "").
		AddRow("updated_by", "varchar(64)", "YES", "", nil, "").
		AddRow("updated_at", "datetime(3)", "YES", "", nil, "")
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `settings`")).WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `inventory_sessions`")).WillReturnError(assert.AnError)

	report, err := CheckSchema(db, []any{&models.Setting{}, &models.Session{}})
	require.NoError(t, err)
	assert.False(t, report.Matched)

	tbl := report.Tables["settings"]
	assert.Equal(t, "error", tbl.Status)
	assert.Empty(t, tbl.MissingColumns)
	require.Len(t, tbl.TypeMismatches, 1)
	assert.Contains(t, tbl.TypeMismatches[0], "value")

	assert.Equal(t, "error", report.Tables["inventory_sessions"].Status)
	assert.Len(t, report.Errors, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
