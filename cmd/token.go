package cmd

import (
	"fmt"
	"time"

	"stocktake/core/auth"
	"stocktake/core/config"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// tokenCmd issues bearer tokens for operators and admins
var tokenCmd = &cobra.Command{
	Use:   "token <name>",
	Short: "Issue a bearer token",
	Long:  `Issues an HS256 token signed with auth.jwt_secret. Intended for provisioning scanners and admin consoles.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.Auth.JWTSecret == "" {
			return fmt.Errorf("auth.jwt_secret must be set")
		}

		role, _ := cmd.Flags().GetString("role")
		id, _ := cmd.Flags().GetString("id")
		if id == "" {
			id = uuid.NewString()
		}
		actor := auth.Actor{ID: id, Name: args[0], Role: auth.Role(role)}
		if !actor.Role.Valid() {
			return fmt.Errorf("unknown role %q", role)
		}

		ttl := time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute
		if d, _ := cmd.Flags().GetDuration("ttl"); d > 0 {
			ttl = d
		}

		token, err := auth.Issue(cfg.Auth.JWTSecret, cfg.Auth.Issuer, actor, ttl)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("role", string(auth.RoleOperator), "Role: admin or operator")
	tokenCmd.Flags().String("id", "", "Actor id (random when empty)")
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime (defaults to auth.token_ttl_minutes)")
}
