package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wso2/idea-management-api/internal/middleware"
	"github.com/wso2/idea-management-api/internal/models"
)

// tokenCmd signs a development identity token with the configured secret
var tokenCmd = &cobra.Command{
	Use:   "token <name>",
	Short: "Signs an identity token for local testing against a JWT-enabled server.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Security.JWT.Validate(); err != nil {
			return fmt.Errorf("security.jwt.secret: %w", err)
		}

		admin, _ := cmd.Flags().GetBool("admin")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		actor := models.Actor{Name: args[0], Role: models.RoleSubmitter}
		if admin {
			actor.Role = models.RoleAdmin
		}

		token, err := middleware.NewTokenVerifier(cfg.Security.JWT.Secret, cfg.Security.JWT.Issuer).IssueToken(actor, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().Bool("admin", false, "Issue the token with the Admin role")
	tokenCmd.Flags().Duration("ttl", time.Hour, "Token lifetime")
	rootCmd.AddCommand(tokenCmd)
}
