package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wso2/idea-management-api/internal/config"
	"github.com/wso2/idea-management-api/internal/database"
)

// migrateCmd applies pending schema migrations
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Applies pending schema migrations to the configured database.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		if cfg.Database.Type == config.DatabaseTypeMemory {
			return fmt.Errorf("the memory store has no schema to migrate")
		}

		db, err := database.Initialize(&cfg.Database, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Migrate(cmd.Context()); err != nil {
			return err
		}
		version, err := db.MigrationVersion(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Schema is at version %d\n", version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
