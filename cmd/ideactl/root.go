package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wso2/idea-management-api/internal/bootstrap"
	"github.com/wso2/idea-management-api/internal/config"
	"github.com/wso2/idea-management-api/internal/service"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ideactl",
	Short: "Administrative tooling for the idea management service.",
	Long: `ideactl runs schema migrations and offline reports against the idea store
configured for the API server.`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", os.Getenv("CONFIG_PATH"), "config file (default is ./configs/config.yaml)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "warn", "Set log level. Available: debug, info, warn, error")
}

// loadEnv loads configuration and a text logger for CLI use
func loadEnv(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	level, _ := cmd.Flags().GetString("loglevel")
	bootstrap.ConfigureLogger(logger, config.LoggingConfig{Level: level, Format: "text"})
	return cfg, logger, nil
}

// withIdeaService opens the configured store and runs fn against a service
// without an event publisher
func withIdeaService(cmd *cobra.Command, fn func(ctx context.Context, ideas *service.IdeaService) error) error {
	cfg, logger, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	cfg.Events.Enabled = false

	ctx := cmd.Context()
	st, closeStore, err := bootstrap.OpenStore(ctx, &cfg.Database, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	services, err := bootstrap.NewServices(cfg, st, nil, logger)
	if err != nil {
		return err
	}
	return fn(ctx, services.Ideas)
}
