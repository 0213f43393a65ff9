package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wso2/idea-management-api/internal/config"
	"github.com/wso2/idea-management-api/internal/handlers"
	"github.com/wso2/idea-management-api/internal/metrics"
	"github.com/wso2/idea-management-api/internal/middleware"
	"github.com/wso2/idea-management-api/internal/service"
	"github.com/wso2/idea-management-api/internal/store"
)

// SetupRouter configures all API routes
func SetupRouter(
	cfg *config.Config,
	ideaService *service.IdeaService,
	st store.Store,
	m *metrics.Metrics,
	logger *logrus.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics(m))
	if cfg.CORS.Enabled {
		router.Use(middleware.CORS(cfg.CORS))
	}

	healthHandler := handlers.NewHealthHandler(st, logger)
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	ideaHandler := handlers.NewIdeaHandler(ideaService)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Identity(cfg.Security.JWT))
	{
		// Open to any resolved actor
		v1.POST("/ideas", ideaHandler.SubmitIdea)
		v1.GET("/ideas/:ideaId", ideaHandler.GetIdea)

		admin := v1.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/ideas", ideaHandler.SearchIdeas)
			admin.GET("/ideas/export", ideaHandler.ExportIdeas)
			admin.PUT("/ideas/:ideaId/status", ideaHandler.UpdateStatus)
			admin.PUT("/ideas/:ideaId/assignee", ideaHandler.AssignReviewer)
			admin.POST("/ideas/:ideaId/reassess", ideaHandler.Reassess)
			admin.GET("/ideas/:ideaId/assessment", ideaHandler.GetAssessment)
			admin.GET("/ideas/:ideaId/workflow", ideaHandler.GetWorkflow)
			admin.GET("/ideas/:ideaId/audit-logs", ideaHandler.GetAuditLogs)
			admin.GET("/audit-logs", ideaHandler.ListAuditLogs)
			admin.GET("/statistics", ideaHandler.GetStatistics)
		}
	}

	return router
}
