package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTool_Code(t *testing.T) {
	tests := []struct {
		name string
		tool Tool
		want string
	}{
		{"sku first", Tool{ID: "1", SKU: "D-1234", Barcode: "590"}, "D-1234"},
		{"barcode", Tool{ID: "1", Barcode: "590"}, "590"},
		{"inventory number", Tool{ID: "1", InventoryNumber: "INV-7"}, "INV-7"},
		{"qr", Tool{ID: "1", QRCode: "qr://x"}, "qr://x"},
		{"id fallback", Tool{ID: "1"}, "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tool.Code())
		})
	}
}

func TestTool_Matches(t *testing.T) {
	tool := Tool{Name: "Impact Drill", SKU: "D-1234", SerialNumber: "SN-99"}
	assert.True(t, tool.Matches("drill"))
	assert.True(t, tool.Matches("d-12"))
	assert.True(t, tool.Matches("sn-9"))
	assert.False(t, tool.Matches("helmet"))
}

func TestTool_Available(t *testing.T) {
	assert.Equal(t, 7, Tool{Quantity: 10, IssuedQuantity: 3}.Available())
}

func TestSessionStatus_Valid(t *testing.T) {
	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusPaused.Valid())
	assert.True(t, StatusEnded.Valid())
	assert.False(t, SessionStatus("archived").Valid())
}

func TestCorrection_Pending(t *testing.T) {
	c := Correction{}
	assert.True(t, c.Pending())
	now := time.Now()
	c.AcceptedAt = &now
	assert.False(t, c.Pending())
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "tools", Tool{}.TableName())
	assert.Equal(t, "issuances", Issuance{}.TableName())
	assert.Equal(t, "inventory_sessions", Session{}.TableName())
	assert.Equal(t, "inventory_counts", CountRecord{}.TableName())
	assert.Equal(t, "inventory_corrections", Correction{}.TableName())
	assert.Equal(t, "settings", Setting{}.TableName())
}
