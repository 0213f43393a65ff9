package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wso2/idea-management-api/internal/bootstrap"
	"github.com/wso2/idea-management-api/internal/config"
	"github.com/wso2/idea-management-api/internal/metrics"
	"github.com/wso2/idea-management-api/internal/router"
)

// Version information (set by build script)
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Set Gin to release mode by default (can be overridden by GIN_MODE env var)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	logger.WithFields(logrus.Fields{
		"version":    version,
		"build_date": buildDate,
	}).Info("Starting Idea Management API Server...")

	// CONFIG_PATH wins over the ./configs search path
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	bootstrap.ConfigureLogger(logger, cfg.Logging)

	logger.WithFields(logrus.Fields{
		"config_path":   configPath,
		"log_level":     logger.GetLevel().String(),
		"database_type": cfg.Database.Type,
	}).Info("Configuration loaded successfully")

	if err := bootstrap.CheckSecurity(cfg.Security.JWT, logger); err != nil {
		logger.WithError(err).Fatal("Invalid security configuration")
	}

	ctx := context.Background()
	st, closeStore, err := bootstrap.OpenStore(ctx, &cfg.Database, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open store")
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.WithError(err).Warn("Failed to close store")
		}
	}()

	m := metrics.New()
	services, err := bootstrap.NewServices(cfg, st, m, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize services")
	}
	defer func() {
		if err := services.Publisher.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close event publisher")
		}
	}()

	logger.Info("Services initialized successfully")

	ginRouter := router.SetupRouter(cfg, services.Ideas, st, m, logger)

	server := &http.Server{
		Addr:           cfg.Server.GetServerAddress(),
		Handler:        ginRouter,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	go func() {
		logger.WithField("addr", server.Addr).Info("Starting HTTP server...")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
		return
	}

	logger.Info("Server exited gracefully")
}
