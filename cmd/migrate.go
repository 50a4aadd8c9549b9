package cmd

import (
	"context"

	"stocktake/feature/stocktake/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long:  `Migrates the session, count, correction and settings tables. With the database registry the tools and issuances tables are migrated too.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newServices(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.close()
		return migrateSchema(cmd.Context(), svc)
	},
}

func migrateSchema(ctx context.Context, svc *services) error {
	withRegistry := svc.withRegistry()
	if err := store.New(svc.db, svc.cfg.Database.MaxRetries).Migrate(ctx, withRegistry); err != nil {
		return err
	}
	svc.logger.Info("Schema migrated", zap.Bool("registry_tables", withRegistry))
	return nil
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
