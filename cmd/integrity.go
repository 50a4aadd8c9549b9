package cmd

import (
	"context"
	"fmt"

	"stocktake/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the database schema and the export bucket",
	Long:  `Checks that the stock-take tables match the models and that the export bucket has the required folders.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true)
	},
}

// storageCmd represents the integrity storage command
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check and fix the export bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(storageCmd, schemaCmd)

	storageCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders")
}

func runIntegrityChecks(ctx context.Context, runStorage, runSchema bool) error {
	svc, err := newServices(ctx)
	if err != nil {
		return err
	}
	defer svc.close()
	logg := svc.logger

	checker := integrity.NewService(svc.storage, svc.cfg.Storage.Bucket, logg, svc.db, svc.withRegistry())
	failed := false

	if runStorage {
		logg.Info("Checking export bucket...", zap.String("bucket", svc.cfg.Storage.Bucket))
		missing, err := checker.CheckStorage(ctx)
		switch {
		case err != nil:
			logg.Error("Storage check failed", zap.Error(err))
			failed = true
		case len(missing) == 0:
			logg.Info("Export bucket is complete.")
		case fixFlag:
			logg.Info("Fixing missing folders...", zap.Strings("missing", missing))
			if err := checker.FixStorage(ctx, missing); err != nil {
				return fmt.Errorf("failed to fix storage: %w", err)
			}
			logg.Info("Export bucket fixed.")
		default:
			logg.Warn("Missing folders", zap.Strings("missing", missing))
			logg.Info("Run with --fix to create missing folders.")
			failed = true
		}
	}

	if runSchema {
		logg.Info("Checking database schema...")
		report, err := checker.CheckSchema(ctx)
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		if report.Matched {
			logg.Info("Database schema matches the models.", zap.String("dialect", report.Dialect))
		} else {
			failed = true
			logg.Warn("Database schema mismatches found", zap.String("dialect", report.Dialect))
			for table, tbl := range report.Tables {
				if tbl.Status == "ok" {
					continue
				}
				if tbl.Status == "missing" {
					logg.Warn("Missing table", zap.String("table", table))
				}
				if len(tbl.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
				}
				if len(tbl.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tbl.TypeMismatches))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	if failed {
		return fmt.Errorf("integrity checks failed")
	}
	return nil
}
