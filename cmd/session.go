package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"stocktake/feature/stocktake"
	"stocktake/feature/stocktake/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// sessionCmd groups the session administration commands
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage stock-take sessions",
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(svc *stocktake.Service) error {
			list, err := svc.Sessions.List(cmd.Context(), cliActor(cmd))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS\tCOUNTED\tCREATED")
			for _, s := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", s.ID, s.Name, s.Status, s.CountedItems, s.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		})
	},
}

var sessionCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Open a new active session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, _ := cmd.Flags().GetString("notes")
		return withService(cmd, func(svc *stocktake.Service) error {
			s, err := svc.Sessions.Create(cmd.Context(), cliActor(cmd), args[0], notes)
			if err != nil {
				return err
			}
			fmt.Println(s.ID)
			return nil
		})
	},
}

var sessionStatusCmd = &cobra.Command{
	Use:       "status <id> <pause|resume|end>",
	Short:     "Pause, resume or end a session",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{string(session.ActionPause), string(session.ActionResume), string(session.ActionEnd)},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(svc *stocktake.Service) error {
			s, err := svc.Sessions.SetStatus(cmd.Context(), cliActor(cmd), args[0], session.Action(args[1]))
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", s.ID, s.Status)
			return nil
		})
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an ended session and its counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		purge, _ := cmd.Flags().GetBool("purge-corrections")
		return withService(cmd, func(svc *stocktake.Service) error {
			return svc.Sessions.Delete(cmd.Context(), cliActor(cmd), args[0], purge)
		})
	},
}

// withService runs fn against a fully wired stock-take service.
func withService(cmd *cobra.Command, fn func(svc *stocktake.Service) error) error {
	s, err := newServices(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	deps, err := s.deps()
	if err != nil {
		return err
	}
	if err := fn(stocktake.NewService(deps)); err != nil {
		s.logger.Debug("Command failed", zap.String("command", cmd.CommandPath()), zap.Error(err))
		return err
	}
	return nil
}

func init() {
	RootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionListCmd, sessionCreateCmd, sessionStatusCmd, sessionDeleteCmd)

	sessionCreateCmd.Flags().String("notes", "", "Free text notes")
	sessionDeleteCmd.Flags().Bool("purge-corrections", false, "Also delete the session's corrections")
}
