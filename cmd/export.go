package cmd

import (
	"fmt"
	"os"

	"stocktake/feature/stocktake"
	"stocktake/feature/stocktake/differences"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export the difference view of a session as CSV",
	Long:  `Writes the filtered difference view to a file (or stdout) and optionally archives it in the export bucket.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		out, _ := flags.GetString("out")
		query, _ := flags.GetString("query")
		minAbs, _ := flags.GetInt("min-abs")
		uncounted, _ := flags.GetBool("include-uncounted")
		archive, _ := flags.GetBool("archive")
		delimiter, _ := flags.GetString("delimiter")

		req := stocktake.ExportRequest{
			Filter:  differences.Filter{Query: query, MinAbs: minAbs, IncludeUncounted: uncounted},
			Archive: archive,
		}
		switch delimiter {
		case "":
		case ";", ",":
			req.Delimiter = rune(delimiter[0])
		default:
			return fmt.Errorf("delimiter must be ';' or ','")
		}

		return withService(cmd, func(svc *stocktake.Service) error {
			res, err := svc.Export(cmd.Context(), cliActor(cmd), args[0], req)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err = fmt.Fprint(os.Stdout, res.Content)
				return err
			}
			if err := os.WriteFile(out, []byte(res.Content), 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			zap.L().Info("Export written",
				zap.String("file", out),
				zap.Int("rows", res.Rows),
				zap.String("object", res.Object),
			)
			return nil
		})
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("out", "o", "", "Output file (stdout when empty)")
	exportCmd.Flags().StringP("query", "q", "", "Free text filter")
	exportCmd.Flags().Int("min-abs", 0, "Minimum absolute difference")
	exportCmd.Flags().Bool("include-uncounted", false, "Include registry tools without a count")
	exportCmd.Flags().Bool("archive", false, "Also store the export in the bucket")
	exportCmd.Flags().String("delimiter", "", "Field delimiter, ';' or ',' (defaults to server.export_delimiter)")
}
