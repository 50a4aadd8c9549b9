package integrity

import (
	"context"

	"stocktake/core/storage"
	"stocktake/feature/integrity/checks"
	"stocktake/feature/stocktake/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client       storage.Client
	bucket       string
	logger       *zap.Logger
	db           *gorm.DB
	withRegistry bool
}

// NewService creates a new integrity service. withRegistry adds the tools
// and issuances tables to the schema check.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, withRegistry bool) *Service {
	return &Service{
		client:       client,
		bucket:       bucket,
		logger:       logger,
		db:           db,
		withRegistry: withRegistry,
	}
}

// CheckStorage returns the missing export folders.
func (s *Service) CheckStorage(ctx context.Context) ([]string, error) {
	return checks.CheckStorage(ctx, s.client, s.bucket)
}

// FixStorage creates the missing export folders.
func (s *Service) FixStorage(ctx context.Context, missing []string) error {
	return checks.FixStorage(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckSchema compares the stock-take tables with their models.
func (s *Service) CheckSchema(ctx context.Context) (*checks.SchemaReport, error) {
	tables := models.All()
	if s.withRegistry {
		tables = append(tables, models.Registry()...)
	}
	var db *gorm.DB
	if s.db != nil {
		db = s.db.WithContext(ctx)
	}
	return checks.CheckSchema(db, tables)
}

// Report runs every check and collects the outcome per check.
func (s *Service) Report(ctx context.Context) map[string]any {
	report := make(map[string]any)

	if missing, err := s.CheckStorage(ctx); err != nil {
		report["storage"] = map[string]any{"status": "error", "error": err.Error()}
	} else {
		report["storage"] = map[string]any{"status": "ok", "missing": missing}
	}

	if schema, err := s.CheckSchema(ctx); err != nil {
		report["schema"] = map[string]any{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schema
	}

	return report
}
