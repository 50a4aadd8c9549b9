package counting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stocktake/core/apperror"
	"stocktake/core/auth"
	"stocktake/feature/stocktake/models"
	"stocktake/feature/stocktake/registry"
	"stocktake/feature/stocktake/resolver"
	"stocktake/feature/stocktake/store"

	"go.uber.org/zap"
)

// UnresolvedError reports a scanned code that matches no tool.
type UnresolvedError struct {
	Code string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("code %q: no matching tool", e.Code)
}

// Unwrap classifies the error as apperror.ErrNotFound.
func (e *UnresolvedError) Unwrap() error { return apperror.ErrNotFound }

// ScanResult is the tool a scan resolved to and its new counted total.
type ScanResult struct {
	Tool       models.Tool `json:"tool"`
	CountedQty int         `json:"counted_qty"`
	MatchedBy  string      `json:"matched_by"`
	Ambiguous  bool        `json:"ambiguous,omitempty"`
}

// Service ingests scans and manual counts.
type Service struct {
	store    *store.Store
	resolver *resolver.Resolver
	registry registry.Registry
	logger   *zap.Logger
}

// NewService creates a counting service.
func NewService(st *store.Store, res *resolver.Resolver, reg registry.Registry, logger *zap.Logger) *Service {
	return &Service{store: st, resolver: res, registry: reg, logger: logger}
}

// Scan resolves code and adds quantity to the tool's count in the session.
func (s *Service) Scan(ctx context.Context, actor auth.Actor, sessionID, code string, quantity int) (ScanResult, error) {
	op := "scan"
	if err := s.precheck(ctx, actor, sessionID, quantity); err != nil {
		return ScanResult{}, apperror.Wrap(op, sessionID, "", err)
	}

	res, err := s.resolver.Resolve(ctx, code)
	if err != nil {
		return ScanResult{}, apperror.Wrap(op, sessionID, "", err)
	}
	if !res.Found {
		return ScanResult{}, apperror.Wrap(op, sessionID, "", &UnresolvedError{Code: strings.TrimSpace(code)})
	}

	total, err := s.store.IncrementCount(ctx, sessionID, res.Tool.ID, quantity, actor.Label())
	if err != nil {
		return ScanResult{}, apperror.Wrap(op, sessionID, res.Tool.ID, err)
	}

	s.logger.Debug("Scan counted",
		zap.String("session", sessionID),
		zap.String("tool", res.Tool.ID),
		zap.String("matcher", res.MatchedBy),
		zap.Int("quantity", quantity),
		zap.Int("total", total),
	)
	return ScanResult{Tool: res.Tool, CountedQty: total, MatchedBy: res.MatchedBy, Ambiguous: res.Ambiguous}, nil
}

// SetCount overwrites the counted quantity of a tool. Negative quantities
// are clamped to zero.
func (s *Service) SetCount(ctx context.Context, actor auth.Actor, sessionID, toolID string, quantity int) (models.CountRecord, error) {
	op := "set count"
	if err := auth.RequireAuthenticated(actor); err != nil {
		return models.CountRecord{}, apperror.Wrap(op, sessionID, toolID, err)
	}
	if err := s.requireActive(ctx, sessionID); err != nil {
		return models.CountRecord{}, apperror.Wrap(op, sessionID, toolID, err)
	}
	if _, err := s.registry.Get(ctx, toolID); err != nil {
		return models.CountRecord{}, apperror.Wrap(op, sessionID, toolID, err)
	}

	total, err := s.store.SetCount(ctx, sessionID, toolID, quantity, actor.Label())
	if err != nil {
		return models.CountRecord{}, apperror.Wrap(op, sessionID, toolID, err)
	}

	s.logger.Info("Count set",
		zap.String("session", sessionID),
		zap.String("tool", toolID),
		zap.Int("quantity", total),
		zap.String("actor", actor.ID),
	)
	return models.CountRecord{SessionID: sessionID, ToolID: toolID, CountedQty: total, UpdatedBy: actor.Label()}, nil
}

// Counts lists the count records of a session.
func (s *Service) Counts(ctx context.Context, actor auth.Actor, sessionID string) ([]models.CountRecord, error) {
	if err := auth.RequireAuthenticated(actor); err != nil {
		return nil, apperror.Wrap("list counts", sessionID, "", err)
	}
	if _, err := s.store.GetSession(ctx, sessionID); err != nil {
		return nil, apperror.Wrap("list counts", sessionID, "", err)
	}
	records, err := s.store.ListCounts(ctx, sessionID)
	if err != nil {
		return nil, apperror.Wrap("list counts", sessionID, "", err)
	}
	return records, nil
}

// precheck validates a scan before any registry round trip.
func (s *Service) precheck(ctx context.Context, actor auth.Actor, sessionID string, quantity int) error {
	if err := auth.RequireAuthenticated(actor); err != nil {
		return err
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", apperror.ErrInvalidInput, quantity)
	}
	return s.requireActive(ctx, sessionID)
}

func (s *Service) requireActive(ctx context.Context, sessionID string) error {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Status != models.StatusActive {
		return fmt.Errorf("%w: session %s is %s", apperror.ErrSessionNotActive, sessionID, session.Status)
	}
	return nil
}

// IsUnresolved reports whether err is an unresolved scan.
func IsUnresolved(err error) bool {
	var u *UnresolvedError
	return errors.As(err, &u)
}
