package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"stocktake/core/auth"
	"stocktake/core/cache"
	"stocktake/core/config"
	"stocktake/core/database"
	"stocktake/core/logger"
	"stocktake/core/server"
	"stocktake/core/storage"
	"stocktake/feature/stocktake"
	"stocktake/feature/stocktake/marker"
	"stocktake/feature/stocktake/registry"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// services holds the collaborators shared by the commands.
type services struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	storage storage.Client
	// archive is set once the export bucket is known to exist.
	archive bool
	redis   *redis.Client
}

// newServices loads configuration, the logger and the database. Object
// storage and Redis are optional and only logged when unavailable.
func newServices(ctx context.Context) (*services, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.Server.IsValidCountingMode() {
		return nil, fmt.Errorf("unknown counting mode %q (want %s or %s)", cfg.Server.CountingMode, server.CountingOnHand, server.CountingAvailable)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}
	logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	svc := &services{cfg: cfg, logger: logg, db: db}

	if client, err := storage.NewClient(cfg.Storage); err != nil {
		logg.Warn("Export archive disabled", zap.Error(err))
	} else {
		svc.storage = client
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			logg.Warn("Export archive disabled", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
		} else {
			svc.archive = true
		}
	}

	if cfg.Redis.Enabled {
		if client, err := cache.New(ctx, cfg.Redis); err != nil {
			logg.Warn("Recently corrected markers disabled", zap.Error(err))
		} else {
			svc.redis = client
		}
	}

	return svc, nil
}

// deps builds the stock-take dependencies.
func (s *services) deps() (stocktake.Deps, error) {
	reg, err := registry.New(s.cfg.Registry, s.db, s.logger)
	if err != nil {
		return stocktake.Deps{}, err
	}

	d := stocktake.Deps{
		DB:           s.db,
		Registry:     reg,
		Bucket:       s.cfg.Storage.Bucket,
		CountingMode: s.cfg.Server.CountingMode,
		Delimiter:    s.cfg.Server.Delimiter(),
		Retries:      s.cfg.Database.MaxRetries,
		Logger:       s.logger,
	}
	if s.archive {
		d.Storage = s.storage
	}
	if s.redis != nil {
		d.Marker = marker.NewRedis(s.redis, time.Duration(s.cfg.Redis.MarkerTTLSeconds)*time.Second)
	}
	return d, nil
}

// withRegistry reports whether the tools table lives in the service database.
func (s *services) withRegistry() bool {
	return s.cfg.Registry.Mode == "" || s.cfg.Registry.Mode == registry.ModeGorm
}

func (s *services) close() {
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = s.logger.Sync()
}

// cliActor is the admin identity used by administrative commands.
func cliActor(cmd *cobra.Command) auth.Actor {
	name, _ := cmd.Flags().GetString("as")
	if name == "" {
		name = os.Getenv("USER")
	}
	return auth.Actor{ID: "cli:" + name, Name: name, Role: auth.RoleAdmin}
}
