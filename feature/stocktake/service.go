package stocktake

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"stocktake/core/apperror"
	"stocktake/core/auth"
	"stocktake/core/storage"
	"stocktake/feature/stocktake/correction"
	"stocktake/feature/stocktake/counting"
	"stocktake/feature/stocktake/differences"
	"stocktake/feature/stocktake/export"
	"stocktake/feature/stocktake/marker"
	"stocktake/feature/stocktake/models"
	"stocktake/feature/stocktake/registry"
	"stocktake/feature/stocktake/resolver"
	"stocktake/feature/stocktake/session"
	"stocktake/feature/stocktake/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the collaborators of the stock-take service.
type Deps struct {
	DB       *gorm.DB
	Registry registry.Registry
	// Storage and Bucket enable archiving exports; Storage may be nil.
	Storage storage.Client
	Bucket  string
	// Marker records recently corrected tools; nil disables it.
	Marker       marker.Marker
	CountingMode string
	Delimiter    rune
	Retries      int
	Logger       *zap.Logger
}

// Service wires the stock-take components together.
type Service struct {
	Sessions    *session.Manager
	Counting    *counting.Service
	Differences *differences.Engine
	Corrections *correction.Workflow
	Resolver    *resolver.Resolver

	store     *store.Store
	archiver  *export.Archiver
	delimiter rune
	logger    *zap.Logger
}

// NewService creates the stock-take service.
func NewService(d Deps) *Service {
	st := store.New(d.DB, d.Retries)
	res := resolver.New(d.Registry, d.Logger)
	diffs := differences.NewEngine(st, d.Registry, d.CountingMode)

	svc := &Service{
		Sessions:    session.NewManager(st, d.Logger),
		Counting:    counting.NewService(st, res, d.Registry, d.Logger),
		Differences: diffs,
		Corrections: correction.NewWorkflow(st, d.Registry, diffs, d.Marker, d.Logger),
		Resolver:    res,
		store:       st,
		delimiter:   d.Delimiter,
		logger:      d.Logger,
	}
	if d.Storage != nil && d.Bucket != "" {
		svc.archiver = export.NewArchiver(d.Storage, d.Bucket)
	}
	return svc
}

// Store returns the persistence layer.
func (s *Service) Store() *store.Store {
	return s.store
}

// AutoAccept reads the persisted auto-accept setting. Unset means false.
func (s *Service) AutoAccept(ctx context.Context) (bool, error) {
	v, ok, err := s.store.GetSetting(ctx, models.SettingAutoAccept)
	if err != nil || !ok {
		return false, err
	}
	enabled, err := strconv.ParseBool(v)
	if err != nil {
		s.logger.Warn("Ignoring malformed setting", zap.String("key", models.SettingAutoAccept), zap.String("value", v))
		return false, nil
	}
	return enabled, nil
}

// SetAutoAccept changes the auto-accept setting.
func (s *Service) SetAutoAccept(ctx context.Context, actor auth.Actor, enabled bool) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return apperror.Wrap("set auto-accept", "", "", err)
	}
	if err := s.store.PutSetting(ctx, models.SettingAutoAccept, strconv.FormatBool(enabled), actor.Label()); err != nil {
		return apperror.Wrap("set auto-accept", "", "", err)
	}
	s.logger.Info("Auto-accept changed", zap.Bool("enabled", enabled), zap.String("actor", actor.ID))
	return nil
}

// Options loads the correction options from settings.
func (s *Service) Options(ctx context.Context) (correction.Options, error) {
	enabled, err := s.AutoAccept(ctx)
	if err != nil {
		return correction.Options{}, err
	}
	return correction.Options{AutoAccept: enabled}, nil
}

// Propose proposes a correction; a nil difference is derived from the
// current counts.
func (s *Service) Propose(ctx context.Context, actor auth.Actor, sessionID, toolID string, difference *int, reason string) (*models.Correction, error) {
	opts, err := s.Options(ctx)
	if err != nil {
		return nil, err
	}
	if difference == nil {
		return s.Corrections.ProposeDerived(ctx, actor, sessionID, toolID, reason, opts)
	}
	return s.Corrections.Propose(ctx, actor, sessionID, toolID, *difference, reason, opts)
}

// ProposeAll proposes corrections for every non-zero difference in the view.
func (s *Service) ProposeAll(ctx context.Context, actor auth.Actor, sessionID string, f differences.Filter, reason string) ([]models.Correction, error) {
	opts, err := s.Options(ctx)
	if err != nil {
		return nil, err
	}
	return s.Corrections.ProposeFromDifferences(ctx, actor, sessionID, f, reason, opts)
}

// ExportRequest selects what to export.
type ExportRequest struct {
	Filter differences.Filter
	// Delimiter overrides the configured delimiter when non-zero.
	Delimiter rune
	// Archive also stores the CSV in object storage.
	Archive bool
}

// ExportResult is a rendered export.
type ExportResult struct {
	Content    string    `json:"content"`
	Rows       int       `json:"rows"`
	Object     string    `json:"object,omitempty"`
	ExportedAt time.Time `json:"exported_at"`
}

// Export renders the filtered difference view of a session as CSV.
func (s *Service) Export(ctx context.Context, actor auth.Actor, sessionID string, req ExportRequest) (ExportResult, error) {
	sess, err := s.Sessions.Get(ctx, actor, sessionID)
	if err != nil {
		return ExportResult{}, err
	}
	if req.Archive && s.archiver == nil {
		return ExportResult{}, apperror.Wrap("export", sessionID, "", fmt.Errorf("%w: export archive is not configured", apperror.ErrPreconditionFailed))
	}

	report, err := s.Differences.Differences(ctx, actor, sessionID, req.Filter)
	if err != nil {
		return ExportResult{}, err
	}

	delim := req.Delimiter
	if delim == 0 {
		delim = s.delimiter
	}
	now := time.Now().UTC()
	content, err := export.CSV(report.Rows, export.Meta{
		SessionName: sess.Name,
		ExportedBy:  actor.Label(),
		ExportedAt:  now,
		Delimiter:   delim,
	})
	if err != nil {
		return ExportResult{}, apperror.Wrap("export", sessionID, "", fmt.Errorf("%w: %v", apperror.ErrInvalidInput, err))
	}

	result := ExportResult{Content: content, Rows: len(report.Rows), ExportedAt: now}
	if req.Archive {
		name, err := s.archiver.Archive(ctx, sessionID, now, content)
		if err != nil {
			return ExportResult{}, apperror.Wrap("export", sessionID, "", err)
		}
		result.Object = name
	}

	s.logger.Info("Session exported",
		zap.String("session", sessionID),
		zap.Int("rows", result.Rows),
		zap.String("object", result.Object),
		zap.String("actor", actor.ID),
	)
	return result, nil
}

// Exports returns the object keys of archived exports of a session, oldest first.
func (s *Service) Exports(ctx context.Context, actor auth.Actor, sessionID string) ([]string, error) {
	if _, err := s.Sessions.Get(ctx, actor, sessionID); err != nil {
		return nil, err
	}
	if s.archiver == nil {
		return nil, apperror.Wrap("list exports", sessionID, "", fmt.Errorf("%w: export archive is not configured", apperror.ErrPreconditionFailed))
	}
	keys, err := s.archiver.List(ctx, sessionID)
	if err != nil {
		return nil, apperror.Wrap("list exports", sessionID, "", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Resolve looks up a code without counting it.
func (s *Service) Resolve(ctx context.Context, actor auth.Actor, code string) (resolver.Resolution, error) {
	if err := auth.RequireAuthenticated(actor); err != nil {
		return resolver.Resolution{}, apperror.Wrap("resolve", "", "", err)
	}
	res, err := s.Resolver.Resolve(ctx, code)
	if err != nil {
		return resolver.Resolution{}, apperror.Wrap("resolve", "", "", err)
	}
	return res, nil
}
