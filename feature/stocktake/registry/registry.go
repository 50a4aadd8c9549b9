package registry

import (
	"context"
	"fmt"

	"stocktake/feature/stocktake/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Field names a searchable tool attribute.
type Field string

const (
	FieldSKU             Field = "sku"
	FieldBarcode         Field = "barcode"
	FieldQRCode          Field = "qr_code"
	FieldInventoryNumber Field = "inventory_number"
	// FieldFuzzy matches a substring of the name or serial number.
	FieldFuzzy Field = "fuzzy"
)

// Registry is the system of record for tools.
//
// Search returns candidates in the registry's own ordering; exact fields
// compare case-insensitively, FieldFuzzy does a case-insensitive substring
// match. AdjustQuantity adds delta to the recorded quantity and fails with
// apperror.ErrPreconditionFailed when the result would be negative.
type Registry interface {
	Get(ctx context.Context, id string) (models.Tool, error)
	GetMany(ctx context.Context, ids []string) (map[string]models.Tool, error)
	List(ctx context.Context) ([]models.Tool, error)
	Search(ctx context.Context, field Field, value string) ([]models.Tool, error)
	AdjustQuantity(ctx context.Context, id string, delta int) (models.Tool, error)
}

// New builds the registry selected by cfg.Mode.
func New(cfg Config, db *gorm.DB, logger *zap.Logger) (Registry, error) {
	switch cfg.Mode {
	case "", ModeGorm:
		return NewGormRegistry(db), nil
	case ModeHTTP:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("registry: base_url is required in http mode")
		}
		return NewHTTPRegistry(cfg, logger), nil
	default:
		return nil, fmt.Errorf("registry: unsupported mode %q", cfg.Mode)
	}
}
