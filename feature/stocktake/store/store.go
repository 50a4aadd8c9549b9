package store

import (
	"context"
	"fmt"

	"stocktake/core/database"
	"stocktake/feature/stocktake/models"

	"gorm.io/gorm"
)

// Store persists sessions, counts, corrections and settings.
type Store struct {
	db      *gorm.DB
	retries int
}

// New creates a store. retries bounds attempts on storage contention.
func New(db *gorm.DB, retries int) *Store {
	if retries < 1 {
		retries = 1
	}
	return &Store{db: db, retries: retries}
}

// DB returns the underlying connection.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Migrate creates or updates the stock-take tables. When withRegistry is set
// the tools and issuances tables of the database registry are migrated too.
func (s *Store) Migrate(ctx context.Context, withRegistry bool) error {
	tables := models.All()
	if withRegistry {
		tables = append(tables, models.Registry()...)
	}
	if err := s.db.WithContext(ctx).AutoMigrate(tables...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// InTx runs fn in a transaction carried by the returned context.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return database.Conn(ctx, s.db).Transaction(func(tx *gorm.DB) error {
		return fn(database.WithTx(ctx, tx))
	})
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, s.db)
}
