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

// ApplyFunc pushes an accepted correction to the tool registry. It runs
// inside the accepting transaction; ctx carries that transaction.
type ApplyFunc func(ctx context.Context, c models.Correction) error

// CreateCorrection inserts a pending correction.
func (s *Store) CreateCorrection(ctx context.Context, c *models.Correction) error {
	if err := s.conn(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create correction: %w", err)
	}
	return nil
}

// GetCorrection loads a correction.
func (s *Store) GetCorrection(ctx context.Context, id string) (*models.Correction, error) {
	var c models.Correction
	err := s.conn(ctx).Where("id = ?", id).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("correction %s: %w", id, apperror.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load correction %s: %w", id, err)
	}
	return &c, nil
}

// ListCorrections returns the corrections of a session, oldest first.
func (s *Store) ListCorrections(ctx context.Context, sessionID string, pendingOnly bool) ([]models.Correction, error) {
	q := s.conn(ctx).Where("session_id = ?", sessionID)
	if pendingOnly {
		q = q.Where("accepted_at IS NULL")
	}
	var out []models.Correction
	if err := q.Order("proposed_at, id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list corrections of session %s: %w", sessionID, err)
	}
	return out, nil
}

// PendingToolIDs returns the tools of a session with a pending correction.
func (s *Store) PendingToolIDs(ctx context.Context, sessionID string) (map[string]bool, error) {
	var ids []string
	err := s.conn(ctx).
		Model(&models.Correction{}).
		Where("session_id = ? AND accepted_at IS NULL", sessionID).
		Distinct().
		Pluck("tool_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load pending corrections of session %s: %w", sessionID, err)
	}
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// AcceptCorrection marks a pending correction accepted and runs apply in the
// same transaction. Only one caller can claim a correction; the others get
// apperror.ErrPreconditionFailed. An apply error rolls the claim back.
func (s *Store) AcceptCorrection(ctx context.Context, id, by string, at time.Time, apply ApplyFunc) (*models.Correction, error) {
	return s.accept(ctx, nil, id, by, at, apply)
}

// CreateAcceptedCorrection inserts c and accepts it in the same transaction.
// When apply fails nothing is stored.
func (s *Store) CreateAcceptedCorrection(ctx context.Context, c *models.Correction, by string, at time.Time, apply ApplyFunc) (*models.Correction, error) {
	return s.accept(ctx, c, c.ID, by, at, apply)
}

func (s *Store) accept(ctx context.Context, create *models.Correction, id, by string, at time.Time, apply ApplyFunc) (*models.Correction, error) {
	var (
		applied   bool
		commitErr error
	)
	err := database.Retry(ctx, s.retries, func() error {
		err := s.InTx(ctx, func(ctx context.Context) error {
			if create != nil {
				if err := s.CreateCorrection(ctx, create); err != nil {
					return err
				}
			}
			c, err := s.GetCorrection(ctx, id)
			if err != nil {
				return err
			}
			// Accepts of the same tool queue behind each other until commit.
			if err := s.lockTool(ctx, c.ToolID); err != nil {
				return err
			}

			res := s.conn(ctx).
				Model(&models.Correction{}).
				Where("id = ? AND accepted_at IS NULL", id).
				Updates(map[string]any{"accepted_by": by, "accepted_at": at})
			if res.Error != nil {
				return fmt.Errorf("failed to accept correction %s: %w", id, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: correction %s is already accepted", apperror.ErrPreconditionFailed, id)
			}

			c.AcceptedBy = &by
			c.AcceptedAt = &at
			if apply != nil {
				if err := apply(ctx, *c); err != nil {
					return err
				}
			}
			applied = true
			return nil
		})
		// A registry outside this database cannot roll back; never apply twice.
		if err != nil && applied {
			commitErr = err
			return nil
		}
		return err
	})
	if commitErr != nil {
		return nil, fmt.Errorf("correction %s: commit failed after registry update: %w", id, commitErr)
	}
	if err != nil {
		return nil, err
	}
	return s.GetCorrection(ctx, id)
}

// lockTool takes row locks on every correction of toolID, across sessions.
func (s *Store) lockTool(ctx context.Context, toolID string) error {
	var ids []string
	err := s.conn(ctx).
		Model(&models.Correction{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tool_id = ?", toolID).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return fmt.Errorf("failed to lock corrections of tool %s: %w", toolID, err)
	}
	return nil
}

// DeleteCorrection removes a pending correction.
func (s *Store) DeleteCorrection(ctx context.Context, id string) error {
	res := s.conn(ctx).Where("id = ? AND accepted_at IS NULL", id).Delete(&models.Correction{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete correction %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetCorrection(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("%w: correction %s is accepted and cannot be deleted", apperror.ErrPreconditionFailed, id)
	}
	return nil
}
