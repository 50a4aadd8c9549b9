package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stocktake/core/apperror"
	"stocktake/core/database"
	"stocktake/feature/stocktake/models"

	"gorm.io/gorm"
)

const issuedSubquery = "COALESCE((SELECT SUM(i.quantity) FROM issuances i " +
	"WHERE i.tool_id = tools.id AND i.returned_at IS NULL), 0) AS issued_quantity"

var exactColumns = map[Field]string{
	FieldSKU:             "sku",
	FieldBarcode:         "barcode",
	FieldQRCode:          "qr_code",
	FieldInventoryNumber: "inventory_number",
}

// GormRegistry reads tools from the service database.
// It joins a transaction carried by the context (see database.WithTx).
type GormRegistry struct {
	db *gorm.DB
}

// NewGormRegistry creates a registry over the tools and issuances tables.
func NewGormRegistry(db *gorm.DB) *GormRegistry {
	return &GormRegistry{db: db}
}

func (r *GormRegistry) query(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, r.db).
		Model(&models.Tool{}).
		Select("tools.*, " + issuedSubquery)
}

// Get returns a single tool.
func (r *GormRegistry) Get(ctx context.Context, id string) (models.Tool, error) {
	var tool models.Tool
	err := r.query(ctx).Where("tools.id = ?", id).Take(&tool).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Tool{}, fmt.Errorf("tool %s: %w", id, apperror.ErrNotFound)
	}
	if err != nil {
		return models.Tool{}, fmt.Errorf("failed to load tool %s: %w", id, err)
	}
	return tool, nil
}

// GetMany returns the known tools among ids, keyed by id.
func (r *GormRegistry) GetMany(ctx context.Context, ids []string) (map[string]models.Tool, error) {
	out := make(map[string]models.Tool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var tools []models.Tool
	if err := r.query(ctx).Where("tools.id IN ?", ids).Find(&tools).Error; err != nil {
		return nil, fmt.Errorf("failed to load tools: %w", err)
	}
	for _, t := range tools {
		out[t.ID] = t
	}
	return out, nil
}

// List returns all tools ordered by id.
func (r *GormRegistry) List(ctx context.Context) ([]models.Tool, error) {
	var tools []models.Tool
	if err := r.query(ctx).Order("tools.id").Find(&tools).Error; err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	return tools, nil
}

// Search returns tools matching value on field, ordered by id.
func (r *GormRegistry) Search(ctx context.Context, field Field, value string) ([]models.Tool, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return nil, nil
	}

	q := r.query(ctx)
	if field == FieldFuzzy {
		like := "%" + escapeLike(v) + "%"
		q = q.Where("LOWER(tools.name) LIKE ? ESCAPE '!' OR LOWER(tools.serial_number) LIKE ? ESCAPE '!'", like, like)
	} else {
		col, ok := exactColumns[field]
		if !ok {
			return nil, fmt.Errorf("%w: unknown search field %q", apperror.ErrInvalidInput, field)
		}
		q = q.Where("LOWER(tools."+col+") = ?", v)
	}

	var tools []models.Tool
	if err := q.Order("tools.id").Find(&tools).Error; err != nil {
		return nil, fmt.Errorf("failed to search tools by %s: %w", field, err)
	}
	return tools, nil
}

// AdjustQuantity adds delta to the tool quantity in one conditional update.
func (r *GormRegistry) AdjustQuantity(ctx context.Context, id string, delta int) (models.Tool, error) {
	if delta == 0 {
		return r.Get(ctx, id)
	}
	res := database.Conn(ctx, r.db).
		Model(&models.Tool{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return models.Tool{}, fmt.Errorf("failed to adjust tool %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return models.Tool{}, err
		}
		return models.Tool{}, fmt.Errorf("%w: tool %s quantity would become negative", apperror.ErrPreconditionFailed, id)
	}
	return r.Get(ctx, id)
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
