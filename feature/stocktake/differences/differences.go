package differences

import (
	"context"
	"fmt"

	"stocktake/core/apperror"
	"stocktake/core/auth"
	"stocktake/core/reconcile"
	"stocktake/core/server"
	"stocktake/feature/stocktake/models"
	"stocktake/feature/stocktake/registry"
	"stocktake/feature/stocktake/store"
)

// Row is one line of the difference view.
type Row = reconcile.Result[models.Tool]

// Filter narrows the difference view.
type Filter = reconcile.Filter

// Report is a difference view with its summary.
type Report struct {
	SessionID string            `json:"session_id"`
	Mode      string            `json:"counting_mode"`
	Rows      []Row             `json:"rows"`
	Summary   reconcile.Summary `json:"summary"`
}

// toolSource reads registry tools for the reconcile engine.
type toolSource struct {
	mode string
}

func (s toolSource) Key(t models.Tool) string { return t.ID }

func (s toolSource) SystemQty(t models.Tool) int {
	if s.mode == server.CountingAvailable {
		return t.Available()
	}
	return t.Quantity
}

func (s toolSource) Matches(t models.Tool, needle string) bool { return t.Matches(needle) }

// Engine computes differences between counts and the registry.
type Engine struct {
	store    *store.Store
	registry registry.Registry
	mode     string
}

// NewEngine creates a difference engine. mode is server.CountingOnHand or
// server.CountingAvailable and decides what "system quantity" means.
func NewEngine(st *store.Store, reg registry.Registry, mode string) *Engine {
	if mode == "" {
		mode = server.CountingOnHand
	}
	return &Engine{store: st, registry: reg, mode: mode}
}

// Mode returns the system quantity policy.
func (e *Engine) Mode() string {
	return e.mode
}

// Differences recomputes the view from the current counts and registry.
func (e *Engine) Differences(ctx context.Context, actor auth.Actor, sessionID string, f Filter) (Report, error) {
	op := "differences"
	if err := auth.RequireAuthenticated(actor); err != nil {
		return Report{}, apperror.Wrap(op, sessionID, "", err)
	}
	if f.MinAbs < 0 {
		return Report{}, apperror.Wrap(op, sessionID, "", fmt.Errorf("%w: min_abs must not be negative", apperror.ErrInvalidInput))
	}
	if _, err := e.store.GetSession(ctx, sessionID); err != nil {
		return Report{}, apperror.Wrap(op, sessionID, "", err)
	}

	counted, err := e.store.CountsByTool(ctx, sessionID)
	if err != nil {
		return Report{}, apperror.Wrap(op, sessionID, "", err)
	}

	system, err := e.systemTools(ctx, counted, f.IncludeUncounted)
	if err != nil {
		return Report{}, apperror.Wrap(op, sessionID, "", err)
	}

	rows := reconcile.Compute[models.Tool](toolSource{mode: e.mode}, system, counted, f)
	return Report{
		SessionID: sessionID,
		Mode:      e.mode,
		Rows:      rows,
		Summary:   reconcile.Summarize(rows),
	}, nil
}

func (e *Engine) systemTools(ctx context.Context, counted map[string]int, all bool) (map[string]models.Tool, error) {
	if all {
		tools, err := e.registry.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make(map[string]models.Tool, len(tools))
		for _, t := range tools {
			out[t.ID] = t
		}
		// Counted tools outside the listing still need their registry data.
		var missing []string
		for id := range counted {
			if _, ok := out[id]; !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			extra, err := e.registry.GetMany(ctx, missing)
			if err != nil {
				return nil, err
			}
			for id, t := range extra {
				out[id] = t
			}
		}
		return out, nil
	}

	ids := make([]string, 0, len(counted))
	for id := range counted {
		ids = append(ids, id)
	}
	return e.registry.GetMany(ctx, ids)
}

// Row returns the difference of a single tool, counted or not.
func (e *Engine) Row(ctx context.Context, sessionID, toolID string) (Row, error) {
	counted, err := e.store.CountsByTool(ctx, sessionID)
	if err != nil {
		return Row{}, err
	}
	tool, err := e.registry.Get(ctx, toolID)
	if err != nil {
		return Row{}, err
	}

	single := map[string]int{}
	if qty, ok := counted[toolID]; ok {
		single[toolID] = qty
	}
	rows := reconcile.Compute[models.Tool](toolSource{mode: e.mode},
		map[string]models.Tool{toolID: tool}, single, Filter{IncludeUncounted: true})
	return rows[0], nil
}
