package cmd

import (
	"fmt"
	"os"

	"stocktake/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "stocktake",
	Short: "Tool and PPE stock-take service",
	Long: `Stocktake runs physical inventory sessions for tools and protective equipment.
Operators scan items, counts are compared with the tool registry and governed
corrections bring the registry back in line.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with ISO8601 timestamps suits a CLI error.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().String("as", "cli", "Name recorded as the acting admin in audit fields")
}
