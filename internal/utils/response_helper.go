package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wso2/idea-management-api/internal/models"
	"github.com/wso2/idea-management-api/internal/service"
	"github.com/wso2/idea-management-api/pkg/utils"
)

// Context keys set by middleware
const (
	ContextKeyActor         = "actor"
	ContextKeyCorrelationID = "correlationID"
)

// SendErrorResponse sends an error JSON response
func SendErrorResponse(c *gin.Context, statusCode int, errCode, message, details string) {
	c.JSON(statusCode, models.NewErrorResponse(errCode, message, details))
}

// SendCreatedResponse sends a 201 Created response
func SendCreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SendOKResponse sends a 200 OK response
func SendOKResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendBadRequestError sends a 400 Bad Request error
func SendBadRequestError(c *gin.Context, message, details string) {
	SendErrorResponse(c, http.StatusBadRequest, models.ErrCodeBadRequest, message, details)
}

// SendUnauthorizedError sends a 401 Unauthorized error
func SendUnauthorizedError(c *gin.Context, message string) {
	SendErrorResponse(c, http.StatusUnauthorized, models.ErrCodeUnauthorized, message, "")
}

// SendForbiddenError sends a 403 Forbidden error
func SendForbiddenError(c *gin.Context, message string) {
	SendErrorResponse(c, http.StatusForbidden, models.ErrCodeForbidden, message, "")
}

// SendValidationError sends a validation error response
func SendValidationError(c *gin.Context, details string) {
	SendErrorResponse(c, http.StatusBadRequest, models.ErrCodeValidationError, "Validation failed", details)
}

// SendServiceError maps a service error to its HTTP status and error code.
// Causes of persistence failures are not exposed to the client.
func SendServiceError(c *gin.Context, err error) {
	code := service.ErrorCode(err)
	status := models.HTTPStatusForErrorCode(code)
	_ = c.Error(err)

	if status >= http.StatusInternalServerError {
		SendErrorResponse(c, status, code, "Request could not be completed", "")
		return
	}

	message := err.Error()
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		message = svcErr.Message
	}
	SendErrorResponse(c, status, code, message, "")
}

// GetActorFromContext returns the actor resolved by the identity middleware
func GetActorFromContext(c *gin.Context) models.Actor {
	actor, exists := c.Get(ContextKeyActor)
	if !exists {
		return models.Actor{}
	}
	return actor.(models.Actor)
}

// GetCorrelationIDFromContext extracts correlation ID from context
func GetCorrelationIDFromContext(c *gin.Context) string {
	correlationID, exists := c.Get(ContextKeyCorrelationID)
	if !exists {
		return utils.GenerateID()
	}
	return correlationID.(string)
}

// SetContextValue sets a value in the Gin context
func SetContextValue(c *gin.Context, key string, value interface{}) {
	c.Set(key, value)
}
