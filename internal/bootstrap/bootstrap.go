// Package bootstrap wires configuration into the logger, store and services
// shared by the server and the admin CLI.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wso2/idea-management-api/internal/config"
	"github.com/wso2/idea-management-api/internal/dao"
	"github.com/wso2/idea-management-api/internal/database"
	"github.com/wso2/idea-management-api/internal/events"
	"github.com/wso2/idea-management-api/internal/metrics"
	"github.com/wso2/idea-management-api/internal/middleware"
	"github.com/wso2/idea-management-api/internal/service"
	"github.com/wso2/idea-management-api/internal/store"
	"github.com/wso2/idea-management-api/internal/store/memory"
)

// ConfigureLogger applies the logging settings to logger
func ConfigureLogger(logger *logrus.Logger, cfg config.LoggingConfig) {
	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, err := logrus.ParseLevel(cfg.Level); err == nil {
		logger.SetLevel(level)
	}
}

// CheckSecurity validates the identity settings the server starts with.
// Header-trust mode is accepted but logged at warn level on every start.
func CheckSecurity(cfg config.JWTConfig, logger *logrus.Logger) error {
	if !cfg.Enabled {
		logger.WithField("trusted_headers", []string{middleware.HeaderUserName, middleware.HeaderUserRole}).
			Warn("JWT verification is disabled; identity headers are trusted as sent and must be stripped from client requests by the gateway")
		return nil
	}
	return cfg.Validate()
}

// OpenStore returns the configured store. The returned close func releases
// the database connection and is never nil.
func OpenStore(ctx context.Context, cfg *config.DatabaseConfig, logger *logrus.Logger) (store.Store, func() error, error) {
	if cfg.Type == config.DatabaseTypeMemory {
		logger.Warn("Using in-memory store; data is lost on restart")
		return memory.New(), func() error { return nil }, nil
	}

	db, err := database.Initialize(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.HealthCheck(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("database health check failed: %w", err)
	}

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}

	closeDB := func() error {
		db.LogStats()
		return db.Close()
	}
	return dao.NewStore(db), closeDB, nil
}

// Services bundles the assembled service layer
type Services struct {
	Ideas     *service.IdeaService
	Publisher events.Publisher
}

// NewServices assembles the service layer over st
func NewServices(cfg *config.Config, st store.Store, m *metrics.Metrics, logger *logrus.Logger) (*Services, error) {
	publisher, err := events.NewPublisher(&cfg.Events, logger)
	if err != nil {
		return nil, err
	}

	ideas := service.NewIdeaService(
		st,
		service.NewClassificationService(cfg.Idea.Classification),
		service.NewEvaluationService(),
		service.NewWorkflowService(st),
		service.NewAuditService(st),
		publisher,
		m,
		cfg.Idea,
		logger,
	)

	return &Services{Ideas: ideas, Publisher: publisher}, nil
}
