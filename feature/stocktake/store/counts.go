package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stocktake/core/apperror"
	"stocktake/core/database"
	"stocktake/feature/stocktake/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var countKey = []clause.Column{{Name: "session_id"}, {Name: "tool_id"}}

// IncrementCount adds qty to the count of toolID in an active session and
// returns the new total. The increment is a single upsert evaluated by the
// database, so concurrent scans never lose updates.
func (s *Store) IncrementCount(ctx context.Context, sessionID, toolID string, qty int, by string) (int, error) {
	return s.upsertCount(ctx, sessionID, toolID, qty, by, gorm.Expr("counted_qty + ?", qty))
}

// SetCount overwrites the count of toolID in an active session. Negative
// quantities are clamped to zero.
func (s *Store) SetCount(ctx context.Context, sessionID, toolID string, qty int, by string) (int, error) {
	if qty < 0 {
		qty = 0
	}
	return s.upsertCount(ctx, sessionID, toolID, qty, by, qty)
}

func (s *Store) upsertCount(ctx context.Context, sessionID, toolID string, qty int, by string, onConflict any) (int, error) {
	var total int
	err := database.Retry(ctx, s.retries, func() error {
		return s.InTx(ctx, func(ctx context.Context) error {
			if err := s.requireActive(ctx, sessionID); err != nil {
				return err
			}

			now := time.Now().UTC()
			record := models.CountRecord{
				SessionID:  sessionID,
				ToolID:     toolID,
				CountedQty: qty,
				UpdatedAt:  now,
				UpdatedBy:  by,
			}
			err := s.conn(ctx).Clauses(clause.OnConflict{
				Columns: countKey,
				DoUpdates: clause.Assignments(map[string]any{
					"counted_qty": onConflict,
					"updated_at":  now,
					"updated_by":  by,
				}),
			}).Create(&record).Error
			if err != nil {
				return fmt.Errorf("failed to write count: %w", err)
			}

			var stored models.CountRecord
			if err := s.conn(ctx).Where("session_id = ? AND tool_id = ?", sessionID, toolID).Take(&stored).Error; err != nil {
				return fmt.Errorf("failed to read count: %w", err)
			}
			total = stored.CountedQty
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) requireActive(ctx context.Context, sessionID string) error {
	// Shared lock holds off a concurrent end/cancel until the count commits.
	var session models.Session
	err := s.conn(ctx).
		Clauses(clause.Locking{Strength: "SHARE"}).
		Select("id", "status").
		Where("id = ?", sessionID).
		Take(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("session %s: %w", sessionID, apperror.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	if session.Status != models.StatusActive {
		return fmt.Errorf("%w: session %s is %s", apperror.ErrSessionNotActive, sessionID, session.Status)
	}
	return nil
}

// ListCounts returns the count records of a session ordered by tool id.
func (s *Store) ListCounts(ctx context.Context, sessionID string) ([]models.CountRecord, error) {
	var records []models.CountRecord
	if err := s.conn(ctx).Where("session_id = ?", sessionID).Order("tool_id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list counts of session %s: %w", sessionID, err)
	}
	return records, nil
}

// CountsByTool returns counted quantities of a session keyed by tool id.
func (s *Store) CountsByTool(ctx context.Context, sessionID string) (map[string]int, error) {
	records, err := s.ListCounts(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(records))
	for _, r := range records {
		out[r.ToolID] = r.CountedQty
	}
	return out, nil
}
