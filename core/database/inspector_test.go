package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE count_records (session_id TEXT NOT NULL, tool_id TEXT NOT NULL, counted_qty INTEGER)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "count_records")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]ColumnInfo)
	for _, col := range columns {
		colMap[col.Field] = col
	}

	assert.Equal(t, "text", colMap["session_id"].Type)
	assert.Equal(t, "NO", colMap["session_id"].Null)
	assert.Equal(t, "integer", colMap["counted_qty"].Type)
	assert.Equal(t, "YES", colMap["counted_qty"].Null)

	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}
