package store

import (
	"context"
	"errors"
	"fmt"

	"stocktake/core/apperror"
	"stocktake/core/database"
	"stocktake/feature/stocktake/models"

	"gorm.io/gorm"
)

const countedItemsColumn = "(SELECT COUNT(*) FROM inventory_counts c WHERE c.session_id = inventory_sessions.id) AS counted_items"

// CreateSession inserts a new session.
func (s *Store) CreateSession(ctx context.Context, session *models.Session) error {
	if err := s.conn(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession loads a session with its counted item total.
func (s *Store) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := s.conn(ctx).
		Model(&models.Session{}).
		Select("inventory_sessions.*, "+countedItemsColumn).
		Where("inventory_sessions.id = ?", id).
		Take(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("session %s: %w", id, apperror.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	return &session, nil
}

// ListSessions returns all sessions, newest first.
func (s *Store) ListSessions(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	err := s.conn(ctx).
		Model(&models.Session{}).
		Select("inventory_sessions.*, " + countedItemsColumn).
		Order("inventory_sessions.created_at DESC, inventory_sessions.id").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// TransitionSession moves a session to the status returned by next.
// The write is conditional on the status next was computed from, so a
// concurrent transition is retried against the fresh status.
func (s *Store) TransitionSession(ctx context.Context, id string, next func(models.SessionStatus) (models.SessionStatus, error)) (*models.Session, error) {
	errRaced := errors.New("status changed concurrently")

	attempt := func() error {
		current, err := s.GetSession(ctx, id)
		if err != nil {
			return err
		}
		to, err := next(current.Status)
		if err != nil {
			return err
		}
		res := s.conn(ctx).
			Model(&models.Session{}).
			Where("id = ? AND status = ?", id, current.Status).
			Update("status", to)
		if res.Error != nil {
			return fmt.Errorf("failed to update session %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return errRaced
		}
		return nil
	}

	var err error
	for i := 0; i < s.retries; i++ {
		if err = database.Retry(ctx, s.retries, attempt); !errors.Is(err, errRaced) {
			break
		}
	}
	if errors.Is(err, errRaced) {
		return nil, fmt.Errorf("%w: session %s status kept changing", apperror.ErrStorageConflict, id)
	}
	if err != nil {
		return nil, err
	}
	return s.GetSession(ctx, id)
}

// DeleteSession removes an ended session and its count records. Corrections
// are kept for audit unless purgeCorrections is set.
func (s *Store) DeleteSession(ctx context.Context, id string, purgeCorrections bool) error {
	return database.Retry(ctx, s.retries, func() error {
		return s.InTx(ctx, func(ctx context.Context) error {
			session, err := s.GetSession(ctx, id)
			if err != nil {
				return err
			}
			if session.Status != models.StatusEnded {
				return fmt.Errorf("%w: session %s is %s, only ended sessions can be deleted", apperror.ErrPreconditionFailed, id, session.Status)
			}

			tx := s.conn(ctx)
			if err := tx.Where("session_id = ?", id).Delete(&models.CountRecord{}).Error; err != nil {
				return fmt.Errorf("failed to delete counts of session %s: %w", id, err)
			}
			if purgeCorrections {
				if err := tx.Where("session_id = ?", id).Delete(&models.Correction{}).Error; err != nil {
					return fmt.Errorf("failed to delete corrections of session %s: %w", id, err)
				}
			}
			if err := tx.Where("id = ? AND status = ?", id, models.StatusEnded).Delete(&models.Session{}).Error; err != nil {
				return fmt.Errorf("failed to delete session %s: %w", id, err)
			}
			return nil
		})
	})
}
