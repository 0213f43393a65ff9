package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wso2/idea-management-api/internal/store"
)

// HealthHandler reports service readiness
type HealthHandler struct {
	store  store.Store
	logger *logrus.Logger
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(st store.Store, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{store: st, logger: logger}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.HealthCheck(ctx); err != nil {
		h.logger.WithError(err).Warn("Health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
