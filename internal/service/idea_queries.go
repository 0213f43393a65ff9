package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/wso2/idea-management-api/internal/models"
	"github.com/wso2/idea-management-api/internal/store"
	"github.com/wso2/idea-management-api/pkg/utils"
)

// ExportHeader is the first row of an idea export
var ExportHeader = []string{
	"ID", "Title", "Description", "Submitter Name", "Submitter Email", "Department",
	"Region", "Status", "Priority", "Submitted At", "Expected Benefit", "Frequency",
	"Current Process", "Manual Process", "Time Spent", "Admin Remarks", "Classification",
}

// GetAll returns every idea
func (s *IdeaService) GetAll(ctx context.Context) ([]models.Idea, error) {
	return s.list(ctx, models.IdeaFilter{})
}

// GetByID returns one idea
func (s *IdeaService) GetByID(ctx context.Context, ideaID string) (*models.Idea, error) {
	if err := utils.ValidateIdeaID(ideaID); err != nil {
		return nil, invalidInput("%v", err)
	}
	// No idea can exist under a code this service never issues.
	if !utils.IsValidReferenceCode(ideaID, s.referencePrefix) {
		return nil, notFound(models.ErrCodeIdeaNotFound, "idea %s", ideaID)
	}
	idea, err := s.store.Ideas().Get(ctx, ideaID)
	if err != nil {
		return nil, storeError(err, models.ErrCodeIdeaNotFound, "idea "+ideaID)
	}
	return idea, nil
}

// GetByStatus returns the ideas currently in a status
func (s *IdeaService) GetByStatus(ctx context.Context, status models.IdeaStatus) ([]models.Idea, error) {
	if !status.IsValid() {
		return nil, invalidInput("invalid status: %s", status)
	}
	return s.list(ctx, models.IdeaFilter{Status: status})
}

// GetByDepartment returns the ideas of a department
func (s *IdeaService) GetByDepartment(ctx context.Context, department string) ([]models.Idea, error) {
	department = strings.TrimSpace(department)
	if department == "" {
		return nil, invalidInput("department is required")
	}
	return s.list(ctx, models.IdeaFilter{Department: department})
}

// Search returns ideas matching the filter, newest submission first
func (s *IdeaService) Search(ctx context.Context, filter models.IdeaFilter) ([]models.Idea, error) {
	if err := filter.Normalize(s.now()); err != nil {
		return nil, invalidInput("%v", err)
	}
	return s.list(ctx, filter)
}

func (s *IdeaService) list(ctx context.Context, filter models.IdeaFilter) ([]models.Idea, error) {
	ideas, err := s.store.Ideas().List(ctx, filter)
	if err != nil {
		return nil, persistence("failed to list ideas", err)
	}
	return ideas, nil
}

// GetStatistics aggregates the current idea set. Ideas without an
// administrator review are counted under their latest engine labels.
func (s *IdeaService) GetStatistics(ctx context.Context) (*models.Statistics, error) {
	ideas, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.store.Classifications().LatestCategories(ctx)
	if err != nil {
		return nil, persistence("failed to load classifications", err)
	}
	levels, err := s.store.Evaluations().LatestPriorityLevels(ctx)
	if err != nil {
		return nil, persistence("failed to load evaluations", err)
	}

	stats := models.NewStatistics()
	for i := range ideas {
		id := ideas[i].IdeaID
		stats.Add(&ideas[i], models.EngineLabels{Category: categories[id], PriorityLevel: levels[id]})
	}
	return stats, nil
}

// GetAssessment returns the latest engine records of an idea. Missing
// records are left nil.
func (s *IdeaService) GetAssessment(ctx context.Context, ideaID string) (*models.Assessment, error) {
	if _, err := s.GetByID(ctx, ideaID); err != nil {
		return nil, err
	}

	assessment := &models.Assessment{IdeaID: ideaID}

	classification, err := s.store.Classifications().GetLatest(ctx, ideaID)
	switch {
	case err == nil:
		assessment.Classification = classification
	case !errors.Is(err, store.ErrNotFound):
		return nil, persistence("failed to get classification", err)
	}

	evaluation, err := s.store.Evaluations().GetLatest(ctx, ideaID)
	switch {
	case err == nil:
		assessment.Evaluation = evaluation
	case !errors.Is(err, store.ErrNotFound):
		return nil, persistence("failed to get evaluation", err)
	}

	return assessment, nil
}

// GetAuditLogs returns the audit trail of an idea, newest first
func (s *IdeaService) GetAuditLogs(ctx context.Context, ideaID string) ([]models.AuditLog, error) {
	if _, err := s.GetByID(ctx, ideaID); err != nil {
		return nil, err
	}
	return s.audit.ListForIdea(ctx, ideaID)
}

// GetAllAuditLogs returns every audit entry, newest first
func (s *IdeaService) GetAllAuditLogs(ctx context.Context) ([]models.AuditLog, error) {
	return s.audit.ListAll(ctx)
}

// GetWorkflow returns the workflow of an idea
func (s *IdeaService) GetWorkflow(ctx context.Context, ideaID string) (*models.Workflow, error) {
	if _, err := s.GetByID(ctx, ideaID); err != nil {
		return nil, err
	}
	return s.workflows.GetByIdeaID(ctx, ideaID)
}

// Export flattens the ideas matching filter into rows, header first
func (s *IdeaService) Export(ctx context.Context, filter models.IdeaFilter) ([][]string, error) {
	ideas, err := s.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(ideas)+1)
	rows = append(rows, ExportHeader)
	for i := range ideas {
		rows = append(rows, exportRow(&ideas[i]))
	}
	return rows, nil
}

func exportRow(idea *models.Idea) []string {
	priority := ""
	if idea.Priority != nil {
		priority = strconv.Itoa(*idea.Priority)
	}
	manual := ""
	if idea.IsManualProcess != nil {
		manual = "No"
		if *idea.IsManualProcess {
			manual = "Yes"
		}
	}
	classification := ""
	if idea.Classification != nil {
		classification = string(*idea.Classification)
	}

	return []string{
		idea.IdeaID,
		idea.Title,
		idea.Description,
		idea.SubmitterName(),
		idea.SubmitterEmail,
		idea.Department,
		idea.Country,
		string(idea.Status),
		priority,
		utils.FormatMillis(idea.SubmittedTime),
		idea.ExpectedBenefit,
		idea.Frequency,
		deref(idea.CurrentProcess),
		manual,
		deref(idea.TimeSpent),
		deref(idea.AdminRemarks),
		classification,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
