package registry

import (
	"context"
	"testing"

	"stocktake/core/apperror"
	"stocktake/core/database"
	"stocktake/feature/stocktake/models"
	"stocktake/feature/stocktake/stocktaketest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newGormRegistry(t *testing.T) (*GormRegistry, *gorm.DB) {
	db := stocktaketest.NewDB(t)
	stocktaketest.SeedTools(t, db, stocktaketest.Drill, stocktaketest.Helmet, stocktaketest.Gloves,
		models.Tool{ID: "t-drill-2", Name: "Cordless Drill", SKU: "D-9999", SerialNumber: "SN-DR-78", Quantity: 1})
	return NewGormRegistry(db), db
}

func TestGormRegistry_Get(t *testing.T) {
	reg, db := newGormRegistry(t)
	stocktaketest.Issue(t, db, "i1", "t-drill", 2)
	stocktaketest.Issue(t, db, "i2", "t-drill", 1)

	tool, err := reg.Get(context.Background(), "t-drill")
	require.NoError(t, err)
	assert.Equal(t, "Impact Drill", tool.Name)
	assert.Equal(t, 10, tool.Quantity)
	assert.Equal(t, 3, tool.IssuedQuantity)

	_, err = reg.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGormRegistry_GetMany(t *testing.T) {
	reg, _ := newGormRegistry(t)

	tools, err := reg.GetMany(context.Background(), []string{"t-drill", "t-gloves", "missing"})
	require.NoError(t, err)
	assert.Len(t, tools, 2)
	assert.Equal(t, 3, tools["t-gloves"].Quantity)

	empty, err := reg.GetMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGormRegistry_List(t *testing.T) {
	reg, _ := newGormRegistry(t)

	tools, err := reg.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 4)
	assert.Equal(t, "t-drill", tools[0].ID)
	assert.Equal(t, "t-helmet", tools[3].ID)
}

func TestGormRegistry_Search(t *testing.T) {
	reg, _ := newGormRegistry(t)

	tests := []struct {
		name  string
		field Field
		value string
		want  []string
	}{
		{"sku exact case insensitive", FieldSKU, " d-1234 ", []string{"t-drill"}},
		{"sku no partial", FieldSKU, "D-12", nil},
		{"barcode", FieldBarcode, "5901234123457", []string{"t-drill"}},
		{"qr", FieldQRCode, "qr:helmet:200", []string{"t-helmet"}},
		{"inventory number", FieldInventoryNumber, "INV-003", []string{"t-gloves"}},
		{"fuzzy name", FieldFuzzy, "drill", []string{"t-drill", "t-drill-2"}},
		{"fuzzy serial", FieldFuzzy, "dr-78", []string{"t-drill-2"}},
		{"fuzzy wildcard is literal", FieldFuzzy, "%", nil},
		{"empty", FieldSKU, "  ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tools, err := reg.Search(context.Background(), tt.field, tt.value)
			require.NoError(t, err)
			var ids []string
			for _, tool := range tools {
				ids = append(ids, tool.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	_, err := reg.Search(context.Background(), Field("color"), "red")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestGormRegistry_AdjustQuantity(t *testing.T) {
	reg, db := newGormRegistry(t)
	ctx := context.Background()

	tool, err := reg.AdjustQuantity(ctx, "t-drill", -2)
	require.NoError(t, err)
	assert.Equal(t, 8, tool.Quantity)

	tool, err = reg.AdjustQuantity(ctx, "t-drill", 5)
	require.NoError(t, err)
	assert.Equal(t, 13, tool.Quantity)

	_, err = reg.AdjustQuantity(ctx, "t-gloves", -4)
	assert.ErrorIs(t, err, apperror.ErrPreconditionFailed)
	unchanged, err := reg.Get(ctx, "t-gloves")
	require.NoError(t, err)
	assert.Equal(t, 3, unchanged.Quantity)

	_, err = reg.AdjustQuantity(ctx, "missing", 1)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	t.Run("rolls back with the surrounding transaction", func(t *testing.T) {
		err := db.Transaction(func(tx *gorm.DB) error {
			if _, err := reg.AdjustQuantity(database.WithTx(ctx, tx), "t-helmet", 10); err != nil {
				return err
			}
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)

		helmet, err := reg.Get(ctx, "t-helmet")
		require.NoError(t, err)
		assert.Equal(t, 5, helmet.Quantity)
	})
}

func TestNew(t *testing.T) {
	db := stocktaketest.NewDB(t)

	reg, err := New(Config{Mode: ModeGorm}, db, nil)
	require.NoError(t, err)
	assert.IsType(t, &GormRegistry{}, reg)

	_, err = New(Config{Mode: ModeHTTP}, db, nil)
	assert.ErrorContains(t, err, "base_url")

	_, err = New(Config{Mode: "ldap"}, db, nil)
	assert.ErrorContains(t, err, "unsupported mode")
}
