package session

import (
	"context"
	"testing"

	"stocktake/core/apperror"
	"stocktake/core/auth"
	"stocktake/feature/stocktake/models"
	"stocktake/feature/stocktake/store"
	"stocktake/feature/stocktake/stocktaketest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNext(t *testing.T) {
	tests := []struct {
		from    models.SessionStatus
		action  Action
		want    models.SessionStatus
		wantErr error
	}{
		{models.StatusActive, ActionPause, models.StatusPaused, nil},
		{models.StatusPaused, ActionResume, models.StatusActive, nil},
		{models.StatusActive, ActionEnd, models.StatusEnded, nil},
		{models.StatusPaused, ActionEnd, models.StatusEnded, nil},
		{models.StatusActive, ActionResume, "", apperror.ErrInvalidTransition},
		{models.StatusPaused, ActionPause, "", apperror.ErrInvalidTransition},
		{models.StatusEnded, ActionResume, "", apperror.ErrInvalidTransition},
		{models.StatusEnded, ActionPause, "", apperror.ErrInvalidTransition},
		{models.StatusEnded, ActionEnd, "", apperror.ErrInvalidTransition},
		{models.StatusActive, Action("archive"), "", apperror.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.action), func(t *testing.T) {
			got, err := Next(tt.from, tt.action)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newManager(t *testing.T) *Manager {
	db := stocktaketest.NewDB(t)
	return NewManager(store.New(db, 3), zap.NewNop())
}

func TestManager_Create(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	s, err := m.Create(ctx, stocktaketest.Admin, "  Q1-2025  ", "warehouse A")
	require.NoError(t, err)
	assert.Equal(t, "Q1-2025", s.Name)
	assert.Equal(t, models.StatusActive, s.Status)
	assert.Equal(t, "Anna Admin", s.CreatedBy)
	assert.NotEmpty(t, s.ID)

	_, err = m.Create(ctx, stocktaketest.Admin, "   ", "")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = m.Create(ctx, stocktaketest.Operator, "Q2-2025", "")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	list, err := m.List(ctx, stocktaketest.Operator)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestManager_Lifecycle(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()
	s, err := m.Create(ctx, stocktaketest.Admin, "Q1-2025", "")
	require.NoError(t, err)

	_, err = m.SetStatus(ctx, stocktaketest.Operator, s.ID, ActionPause)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	got, err := m.SetStatus(ctx, stocktaketest.Admin, s.ID, ActionPause)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaused, got.Status)

	got, err = m.SetStatus(ctx, stocktaketest.Admin, s.ID, ActionResume)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, got.Status)

	err = m.Delete(ctx, stocktaketest.Admin, s.ID, false)
	assert.ErrorIs(t, err, apperror.ErrPreconditionFailed)

	got, err = m.SetStatus(ctx, stocktaketest.Admin, s.ID, ActionEnd)
	require.NoError(t, err)
	assert.Equal(t, models.StatusEnded, got.Status)

	_, err = m.SetStatus(ctx, stocktaketest.Admin, s.ID, ActionResume)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
	still, err := m.Get(ctx, stocktaketest.Operator, s.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusEnded, still.Status)

	assert.ErrorIs(t, m.Delete(ctx, stocktaketest.Operator, s.ID, false), apperror.ErrUnauthorized)
	require.NoError(t, m.Delete(ctx, stocktaketest.Admin, s.ID, false))

	_, err = m.Get(ctx, stocktaketest.Admin, s.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestManager_Anonymous(t *testing.T) {
	m := newManager(t)
	_, err := m.List(context.Background(), auth.Actor{})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
