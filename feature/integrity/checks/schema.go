package checks

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"stocktake/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// SchemaReport is the result of comparing the models against the database.
type SchemaReport struct {
	Dialect string                 `json:"dialect"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "missing", "error"
}

// CheckSchema verifies that every model's table and columns exist with a
// compatible type. Read-only computed fields are ignored.
func CheckSchema(db *gorm.DB, models []any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Dialect: db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	cache := &sync.Map{}
	for _, model := range models {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}

		actual, err := database.GetTableColumns(db, s.Table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", s.Table, err))
			report.Matched = false
			report.Tables[s.Table] = TableReport{MissingColumns: []string{}, TypeMismatches: []string{}, Status: "error"}
			continue
		}

		tbl := compareTable(s, actual)
		if tbl.Status != "ok" {
			report.Matched = false
		}
		report.Tables[s.Table] = tbl
	}
	return report, nil
}

func compareTable(s *schema.Schema, actual []database.ColumnInfo) TableReport {
	tbl := TableReport{MissingColumns: []string{}, TypeMismatches: []string{}, Status: "ok"}
	if len(actual) == 0 {
		tbl.Status = "missing"
		return tbl
	}

	cols := make(map[string]database.ColumnInfo, len(actual))
	for _, col := range actual {
		cols[col.Field] = col
	}

	for _, field := range s.Fields {
		if field.DBName == "" || field.IgnoreMigration {
			continue
		}
		col, ok := cols[strings.ToLower(field.DBName)]
		if !ok {
			tbl.MissingColumns = append(tbl.MissingColumns, field.DBName)
			continue
		}
		if !compatible(field.DataType, col.Type) {
			tbl.TypeMismatches = append(tbl.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", field.DBName, field.DataType, col.Type))
		}
	}

	sort.Strings(tbl.MissingColumns)
	if len(tbl.MissingColumns) > 0 || len(tbl.TypeMismatches) > 0 {
		tbl.Status = "error"
	}
	return tbl
}

// compatible is a loose family match; sizes and precision are not compared.
func compatible(expected schema.DataType, actual string) bool {
	switch expected {
	case schema.Int, schema.Uint:
		return strings.Contains(actual, "int")
	case schema.String:
		return strings.Contains(actual, "char") || strings.Contains(actual, "text")
	case schema.Time:
		return strings.Contains(actual, "date") || strings.Contains(actual, "time")
	case schema.Bool:
		return strings.Contains(actual, "bool") || strings.Contains(actual, "tinyint") || strings.Contains(actual, "numeric")
	default:
		return true
	}
}
