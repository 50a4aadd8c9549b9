package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stocktake/core/loader"
	"stocktake/core/logger"
	"stocktake/core/middleware/auth"
	"stocktake/core/middleware/rayid"
	"stocktake/feature/integrity"
	"stocktake/feature/stocktake"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "stocktake/docs/swagger"
)

// @title Stocktake API
// @version 1.0
// @description Physical inventory sessions, counts, differences and corrections for tools and PPE.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the stock-take server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newServices(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.close()
		logg := svc.logger

		if svc.cfg.Auth.JWTSecret == "" {
			return fmt.Errorf("auth.jwt_secret must be set")
		}

		if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
			if err := migrateSchema(cmd.Context(), svc); err != nil {
				return err
			}
		}

		deps, err := svc.deps()
		if err != nil {
			return err
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager(logg)
		mgr.Register(stocktake.NewFeature(deps))
		mgr.Register(integrity.NewFeature(svc.storage, svc.cfg.Storage.Bucket, logg, svc.db, svc.withRegistry()))

		// RayID first so every later log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			l.Info("Request",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("took", time.Since(start)),
				zap.String("ip", c.IP()),
			)
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Public routes.
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		app.Use(auth.New(auth.Config{
			Secret: svc.cfg.Auth.JWTSecret,
			Skip:   []string{"/swagger", "/health"},
		}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server",
				zap.String("port", svc.cfg.Server.Port),
				zap.String("registry", svc.cfg.Registry.Mode),
				zap.String("counting_mode", svc.cfg.Server.CountingMode),
				zap.Strings("features", mgr.Names()),
			)
			errCh <- app.Listen(":" + svc.cfg.Server.Port)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-quit:
		}

		logg.Info("Shutting down server...")
		return app.ShutdownWithTimeout(10 * time.Second)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
	startCmd.Flags().Bool("migrate", false, "Migrate the schema before serving")
}
