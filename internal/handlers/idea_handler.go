package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wso2/idea-management-api/internal/models"
	"github.com/wso2/idea-management-api/internal/service"
	"github.com/wso2/idea-management-api/internal/utils"
	pkgutils "github.com/wso2/idea-management-api/pkg/utils"
)

// ExportFileName is the attachment name of the CSV export
const ExportFileName = "ideas.csv"

// IdeaHandler handles idea-related HTTP requests
type IdeaHandler struct {
	ideaService *service.IdeaService
}

// NewIdeaHandler creates a new idea handler instance
func NewIdeaHandler(ideaService *service.IdeaService) *IdeaHandler {
	return &IdeaHandler{ideaService: ideaService}
}

// SubmitIdea handles POST /ideas
func (h *IdeaHandler) SubmitIdea(c *gin.Context) {
	var request models.IdeaSubmitRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.ideaService.Submit(c.Request.Context(), utils.GetActorFromContext(c), &request)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendCreatedResponse(c, result)
}

// GetIdea handles GET /ideas/:ideaId
func (h *IdeaHandler) GetIdea(c *gin.Context) {
	idea, err := h.ideaService.GetByID(c.Request.Context(), c.Param("ideaId"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, idea)
}

// SearchIdeas handles GET /ideas
func (h *IdeaHandler) SearchIdeas(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	ideas, err := h.ideaService.Search(c.Request.Context(), filter)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	params := utils.ParsePaginationParams(c.Query("limit"), c.Query("offset"))
	start, end := params.Bounds(len(ideas))
	utils.SendOKResponse(c, utils.ListResponse{
		Data:     ideas[start:end],
		Metadata: utils.CalculatePaginationMetadata(len(ideas), params.Limit, params.Offset),
	})
}

// ExportIdeas handles GET /ideas/export
func (h *IdeaHandler) ExportIdeas(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	rows, err := h.ideaService.Export(c.Request.Context(), filter)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+ExportFileName+`"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if err := w.WriteAll(rows); err != nil {
		_ = c.Error(err)
	}
}

// UpdateStatus handles PUT /ideas/:ideaId/status
func (h *IdeaHandler) UpdateStatus(c *gin.Context) {
	var request models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	status, ok := models.ParseIdeaStatus(request.Status)
	if !ok {
		utils.SendErrorResponse(c, http.StatusBadRequest, models.ErrCodeInvalidStatus, "Unknown status", request.Status)
		return
	}

	result, err := h.ideaService.UpdateStatus(c.Request.Context(), utils.GetActorFromContext(c), c.Param("ideaId"), status, request.ToReviewPatch())
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, result)
}

// AssignReviewer handles PUT /ideas/:ideaId/assignee
func (h *IdeaHandler) AssignReviewer(c *gin.Context) {
	var request models.AssignReviewerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.ideaService.AssignReviewer(c.Request.Context(), utils.GetActorFromContext(c), c.Param("ideaId"), request.Reviewer)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, result)
}

// Reassess handles POST /ideas/:ideaId/reassess
func (h *IdeaHandler) Reassess(c *gin.Context) {
	assessment, err := h.ideaService.Reassess(c.Request.Context(), utils.GetActorFromContext(c), c.Param("ideaId"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, assessment)
}

// GetAssessment handles GET /ideas/:ideaId/assessment
func (h *IdeaHandler) GetAssessment(c *gin.Context) {
	assessment, err := h.ideaService.GetAssessment(c.Request.Context(), c.Param("ideaId"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, assessment)
}

// GetWorkflow handles GET /ideas/:ideaId/workflow
func (h *IdeaHandler) GetWorkflow(c *gin.Context) {
	workflow, err := h.ideaService.GetWorkflow(c.Request.Context(), c.Param("ideaId"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, workflow)
}

// GetAuditLogs handles GET /ideas/:ideaId/audit-logs
func (h *IdeaHandler) GetAuditLogs(c *gin.Context) {
	logs, err := h.ideaService.GetAuditLogs(c.Request.Context(), c.Param("ideaId"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, logs)
}

// ListAuditLogs handles GET /audit-logs
func (h *IdeaHandler) ListAuditLogs(c *gin.Context) {
	logs, err := h.ideaService.GetAllAuditLogs(c.Request.Context())
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	params := utils.ParsePaginationParams(c.Query("limit"), c.Query("offset"))
	start, end := params.Bounds(len(logs))
	utils.SendOKResponse(c, utils.ListResponse{
		Data:     logs[start:end],
		Metadata: utils.CalculatePaginationMetadata(len(logs), params.Limit, params.Offset),
	})
}

// GetStatistics handles GET /statistics
func (h *IdeaHandler) GetStatistics(c *gin.Context) {
	stats, err := h.ideaService.GetStatistics(c.Request.Context())
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, stats)
}

// parseFilter reads the search query parameters. It writes the error
// response itself and returns false on malformed input.
func parseFilter(c *gin.Context) (models.IdeaFilter, bool) {
	filter := models.IdeaFilter{
		Department: strings.TrimSpace(c.Query("department")),
		Query:      strings.TrimSpace(c.Query("q")),
		DateRange:  strings.ToLower(strings.TrimSpace(c.Query("range"))),
	}

	if raw := c.Query("status"); raw != "" {
		status, ok := models.ParseIdeaStatus(raw)
		if !ok {
			utils.SendErrorResponse(c, http.StatusBadRequest, models.ErrCodeInvalidStatus, "Unknown status", raw)
			return filter, false
		}
		filter.Status = status
	}

	for name, target := range map[string]**int64{"from": &filter.SubmittedFrom, "to": &filter.SubmittedTo} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		millis, ok := parseInstant(raw)
		if !ok {
			utils.SendValidationError(c, name+" must be epoch milliseconds or an RFC 3339 timestamp")
			return filter, false
		}
		*target = &millis
	}

	return filter, true
}

// parseInstant accepts epoch milliseconds or an RFC 3339 timestamp
func parseInstant(raw string) (int64, bool) {
	if millis, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return millis, true
	}
	t, err := pkgutils.ParseTime(raw)
	if err != nil {
		return 0, false
	}
	return pkgutils.TimeToMillis(t), true
}
