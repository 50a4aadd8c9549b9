package session

import (
	"context"
	"fmt"
	"strings"

	"stocktake/core/apperror"
	"stocktake/core/auth"
	"stocktake/feature/stocktake/models"
	"stocktake/feature/stocktake/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxNameLength = 200

// Manager governs the lifecycle of inventory sessions.
type Manager struct {
	store  *store.Store
	logger *zap.Logger
}

// NewManager creates a session manager.
func NewManager(st *store.Store, logger *zap.Logger) *Manager {
	return &Manager{store: st, logger: logger}
}

// Create opens a new active session.
func (m *Manager) Create(ctx context.Context, actor auth.Actor, name, notes string) (*models.Session, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, apperror.Wrap("create session", "", "", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Wrap("create session", "", "", fmt.Errorf("%w: name is required", apperror.ErrInvalidInput))
	}
	if len(name) > maxNameLength {
		return nil, apperror.Wrap("create session", "", "", fmt.Errorf("%w: name exceeds %d characters", apperror.ErrInvalidInput, maxNameLength))
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		Name:      name,
		Notes:     strings.TrimSpace(notes),
		Status:    models.StatusActive,
		CreatedBy: actor.Label(),
	}
	if err := m.store.CreateSession(ctx, session); err != nil {
		return nil, apperror.Wrap("create session", "", "", err)
	}

	m.logger.Info("Session created",
		zap.String("session", session.ID),
		zap.String("name", session.Name),
		zap.String("actor", actor.ID),
	)
	return session, nil
}

// SetStatus applies a lifecycle action. Invalid transitions leave the
// session unchanged.
func (m *Manager) SetStatus(ctx context.Context, actor auth.Actor, id string, action Action) (*models.Session, error) {
	op := "set session status"
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, apperror.Wrap(op, id, "", err)
	}

	session, err := m.store.TransitionSession(ctx, id, func(from models.SessionStatus) (models.SessionStatus, error) {
		return Next(from, action)
	})
	if err != nil {
		return nil, apperror.Wrap(op, id, "", err)
	}

	m.logger.Info("Session status changed",
		zap.String("session", id),
		zap.String("action", string(action)),
		zap.String("status", string(session.Status)),
		zap.String("actor", actor.ID),
	)
	return session, nil
}

// Delete removes an ended session and its counts.
func (m *Manager) Delete(ctx context.Context, actor auth.Actor, id string, purgeCorrections bool) error {
	op := "delete session"
	if err := auth.RequireAdmin(actor); err != nil {
		return apperror.Wrap(op, id, "", err)
	}
	if err := m.store.DeleteSession(ctx, id, purgeCorrections); err != nil {
		return apperror.Wrap(op, id, "", err)
	}

	m.logger.Info("Session deleted",
		zap.String("session", id),
		zap.Bool("purge_corrections", purgeCorrections),
		zap.String("actor", actor.ID),
	)
	return nil
}

// Get returns a session.
func (m *Manager) Get(ctx context.Context, actor auth.Actor, id string) (*models.Session, error) {
	if err := auth.RequireAuthenticated(actor); err != nil {
		return nil, apperror.Wrap("get session", id, "", err)
	}
	session, err := m.store.GetSession(ctx, id)
	if err != nil {
		return nil, apperror.Wrap("get session", id, "", err)
	}
	return session, nil
}

// List returns all sessions, newest first.
func (m *Manager) List(ctx context.Context, actor auth.Actor) ([]models.Session, error) {
	if err := auth.RequireAuthenticated(actor); err != nil {
		return nil, apperror.Wrap("list sessions", "", "", err)
	}
	sessions, err := m.store.ListSessions(ctx)
	if err != nil {
		return nil, apperror.Wrap("list sessions", "", "", err)
	}
	return sessions, nil
}
