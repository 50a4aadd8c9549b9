// Package stocktaketest provides fixtures shared by the stock-take package tests.
package stocktaketest

import (
	"testing"
	"time"

	"stocktake/core/auth"
	"stocktake/core/database"
	"stocktake/feature/stocktake/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	Admin    = auth.Actor{ID: "u-admin", Name: "Anna Admin", Role: auth.RoleAdmin}
	Operator = auth.Actor{ID: "u-op", Name: "Olek Operator", Role: auth.RoleOperator}
)

// NewDB opens an in-memory SQLite database with every table migrated.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(append(models.All(), models.Registry()...)...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SeedTools inserts tools into the registry tables.
func SeedTools(t testing.TB, db *gorm.DB, tools ...models.Tool) {
	t.Helper()
	for _, tool := range tools {
		require.NoError(t, db.Create(&tool).Error)
	}
}

// Issue records an open issuance of qty units of toolID.
func Issue(t testing.TB, db *gorm.DB, id, toolID string, qty int) {
	t.Helper()
	require.NoError(t, db.Create(&models.Issuance{
		ID:       id,
		ToolID:   toolID,
		Quantity: qty,
		IssuedAt: time.Now().UTC(),
	}).Error)
}

// Drill, Helmet and Gloves are the canonical fixtures.
var (
	Drill  = models.Tool{ID: "t-drill", Name: "Impact Drill", SKU: "D-1234", Barcode: "5901234123457", InventoryNumber: "INV-001", SerialNumber: "SN-DR-77", Quantity: 10}
	Helmet = models.Tool{ID: "t-helmet", Name: "Safety Helmet", SKU: "H-200", QRCode: "QR:HELMET:200", Quantity: 5}
	Gloves = models.Tool{ID: "t-gloves", Name: "Work Gloves", SKU: "G-300", InventoryNumber: "INV-003", Quantity: 3}
)
