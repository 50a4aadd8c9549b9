package correction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stocktake/core/apperror"
	"stocktake/core/auth"
	"stocktake/core/reconcile"
	"stocktake/feature/stocktake/differences"
	"stocktake/feature/stocktake/marker"
	"stocktake/feature/stocktake/models"
	"stocktake/feature/stocktake/registry"
	"stocktake/feature/stocktake/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxReasonLength = 1000

// Options carries installation settings into a call.
type Options struct {
	// AutoAccept accepts an admin's proposal in the same call.
	AutoAccept bool
}

// Workflow proposes, accepts and deletes corrections.
type Workflow struct {
	store    *store.Store
	registry registry.Registry
	diffs    *differences.Engine
	marker   marker.Marker
	logger   *zap.Logger
	now      func() time.Time
}

// NewWorkflow creates a correction workflow. A nil marker disables marks.
func NewWorkflow(st *store.Store, reg registry.Registry, diffs *differences.Engine, m marker.Marker, logger *zap.Logger) *Workflow {
	if m == nil {
		m = marker.Nop{}
	}
	return &Workflow{
		store:    st,
		registry: reg,
		diffs:    diffs,
		marker:   m,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Propose records a pending correction of toolID by differenceQty.
// With opts.AutoAccept and an admin proposer it is stored already accepted,
// or not at all when the registry refuses the change.
func (w *Workflow) Propose(ctx context.Context, actor auth.Actor, sessionID, toolID string, differenceQty int, reason string, opts Options) (*models.Correction, error) {
	op := "propose correction"
	if err := auth.RequireAuthenticated(actor); err != nil {
		return nil, apperror.Wrap(op, sessionID, toolID, err)
	}
	if differenceQty == 0 {
		return nil, apperror.Wrap(op, sessionID, toolID, apperror.ErrNoOpCorrection)
	}
	reason = strings.TrimSpace(reason)
	if len(reason) > maxReasonLength {
		return nil, apperror.Wrap(op, sessionID, toolID, fmt.Errorf("%w: reason exceeds %d characters", apperror.ErrInvalidInput, maxReasonLength))
	}
	if _, err := w.store.GetSession(ctx, sessionID); err != nil {
		return nil, apperror.Wrap(op, sessionID, toolID, err)
	}
	if _, err := w.registry.Get(ctx, toolID); err != nil {
		return nil, apperror.Wrap(op, sessionID, toolID, err)
	}

	c := &models.Correction{
		ID:            uuid.NewString(),
		SessionID:     sessionID,
		ToolID:        toolID,
		DifferenceQty: differenceQty,
		Reason:        reason,
		ProposedBy:    actor.Label(),
		ProposedAt:    w.now(),
	}
	if opts.AutoAccept && actor.IsAdmin() {
		var adjusted models.Tool
		accepted, err := w.store.CreateAcceptedCorrection(ctx, c, actor.Label(), w.now(), w.apply(&adjusted))
		if err != nil {
			return nil, apperror.Wrap(op, sessionID, toolID, err)
		}
		w.accepted(ctx, actor, accepted, adjusted)
		return accepted, nil
	}

	if err := w.store.CreateCorrection(ctx, c); err != nil {
		return nil, apperror.Wrap(op, sessionID, toolID, err)
	}

	w.logger.Info("Correction proposed",
		zap.String("correction", c.ID),
		zap.String("session", sessionID),
		zap.String("tool", toolID),
		zap.Int("difference", differenceQty),
		zap.String("actor", actor.ID),
	)
	return c, nil
}

// ProposeDerived proposes the current difference of toolID, counted minus
// system quantity at this moment.
func (w *Workflow) ProposeDerived(ctx context.Context, actor auth.Actor, sessionID, toolID, reason string, opts Options) (*models.Correction, error) {
	if err := auth.RequireAuthenticated(actor); err != nil {
		return nil, apperror.Wrap("propose correction", sessionID, toolID, err)
	}
	if _, err := w.store.GetSession(ctx, sessionID); err != nil {
		return nil, apperror.Wrap("propose correction", sessionID, toolID, err)
	}
	row, err := w.diffs.Row(ctx, sessionID, toolID)
	if err != nil {
		return nil, apperror.Wrap("propose correction", sessionID, toolID, err)
	}
	return w.Propose(ctx, actor, sessionID, toolID, row.Difference, reason, opts)
}

// Accept applies a pending correction to the registry. The acceptance and the
// registry change succeed or fail together.
func (w *Workflow) Accept(ctx context.Context, actor auth.Actor, id string) (*models.Correction, error) {
	op := "accept correction"
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, apperror.Wrap(op, "", "", err)
	}

	var adjusted models.Tool
	c, err := w.store.AcceptCorrection(ctx, id, actor.Label(), w.now(), w.apply(&adjusted))
	if err != nil {
		return nil, apperror.Wrap(op, "", "", fmt.Errorf("correction %s: %w", id, err))
	}
	w.accepted(ctx, actor, c, adjusted)
	return c, nil
}

func (w *Workflow) apply(adjusted *models.Tool) store.ApplyFunc {
	return func(ctx context.Context, c models.Correction) error {
		tool, err := w.registry.AdjustQuantity(ctx, c.ToolID, c.DifferenceQty)
		if err != nil {
			return err
		}
		*adjusted = tool
		return nil
	}
}

func (w *Workflow) accepted(ctx context.Context, actor auth.Actor, c *models.Correction, adjusted models.Tool) {
	w.logger.Info("Correction accepted",
		zap.String("correction", c.ID),
		zap.String("session", c.SessionID),
		zap.String("tool", c.ToolID),
		zap.Int("difference", c.DifferenceQty),
		zap.Int("quantity", adjusted.Quantity),
		zap.String("actor", actor.ID),
	)

	if err := w.marker.Mark(ctx, c.SessionID, c.ToolID); err != nil {
		w.logger.Warn("Failed to mark tool as recently corrected", zap.String("tool", c.ToolID), zap.Error(err))
	}
}

// Delete removes a pending correction.
func (w *Workflow) Delete(ctx context.Context, actor auth.Actor, id string) error {
	op := "delete correction"
	if err := auth.RequireAdmin(actor); err != nil {
		return apperror.Wrap(op, "", "", err)
	}
	if err := w.store.DeleteCorrection(ctx, id); err != nil {
		return apperror.Wrap(op, "", "", err)
	}
	w.logger.Info("Correction deleted", zap.String("correction", id), zap.String("actor", actor.ID))
	return nil
}

// List returns the corrections of a session.
func (w *Workflow) List(ctx context.Context, actor auth.Actor, sessionID string, pendingOnly bool) ([]models.Correction, error) {
	if err := auth.RequireAuthenticated(actor); err != nil {
		return nil, apperror.Wrap("list corrections", sessionID, "", err)
	}
	if _, err := w.store.GetSession(ctx, sessionID); err != nil {
		return nil, apperror.Wrap("list corrections", sessionID, "", err)
	}
	out, err := w.store.ListCorrections(ctx, sessionID, pendingOnly)
	if err != nil {
		return nil, apperror.Wrap("list corrections", sessionID, "", err)
	}
	return out, nil
}

// RecentlyCorrected returns tools of a session corrected a moment ago.
func (w *Workflow) RecentlyCorrected(ctx context.Context, sessionID string) ([]string, error) {
	return w.marker.Recent(ctx, sessionID)
}

// ProposeFromDifferences proposes one correction per non-zero row of the
// filtered difference view, skipping tools that already have a pending
// correction in the session.
func (w *Workflow) ProposeFromDifferences(ctx context.Context, actor auth.Actor, sessionID string, f differences.Filter, reason string, opts Options) ([]models.Correction, error) {
	op := "propose corrections"
	report, err := w.diffs.Differences(ctx, actor, sessionID, f)
	if err != nil {
		return nil, err
	}
	pending, err := w.store.PendingToolIDs(ctx, sessionID)
	if err != nil {
		return nil, apperror.Wrap(op, sessionID, "", err)
	}

	actions := reconcile.Plan(report.Rows, pending, strings.TrimSpace(reason))
	out := make([]models.Correction, 0, len(actions))
	for _, a := range actions {
		c, err := w.Propose(ctx, actor, sessionID, a.Key, a.DifferenceQty, a.Reason, opts)
		if err != nil {
			return out, err
		}
		out = append(out, *c)
	}

	w.logger.Info("Corrections proposed from differences",
		zap.String("session", sessionID),
		zap.Int("proposed", len(out)),
		zap.Int("skipped_pending", len(pending)),
	)
	return out, nil
}
