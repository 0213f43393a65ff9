package service

import (
	"context"
	"strings"
	"time"

	"github.com/wso2/idea-management-api/internal/models"
	"github.com/wso2/idea-management-api/internal/store"
	"github.com/wso2/idea-management-api/pkg/utils"
)

// WorkflowService tracks the single workflow record of each idea
type WorkflowService struct {
	store store.Store
	now   func() time.Time
}

// NewWorkflowService creates a new workflow service
func NewWorkflowService(st store.Store) *WorkflowService {
	return &WorkflowService{store: st, now: time.Now}
}

// withStore returns a copy of the service bound to a transactional store
func (s *WorkflowService) withStore(tx store.Store) *WorkflowService {
	c := *s
	c.store = tx
	return &c
}

// Create starts the workflow of a newly submitted idea
func (s *WorkflowService) Create(ctx context.Context, ideaID string) (*models.Workflow, error) {
	now := utils.TimeToMillis(s.now())
	wf := &models.Workflow{
		WorkflowID:    utils.GenerateWorkflowID(),
		IdeaID:        ideaID,
		CurrentStatus: models.IdeaStatusSubmitted,
		AssignedTo:    models.PendingAssignment,
		CreatedTime:   now,
		UpdatedTime:   now,
	}

	if err := s.store.Workflows().Create(ctx, wf); err != nil {
		return nil, persistence("failed to create workflow", err)
	}
	return wf, nil
}

// UpdateStatus mirrors an idea status change. Terminal statuses are recorded
// as the decision. A nil remarks pointer keeps the existing remarks.
func (s *WorkflowService) UpdateStatus(ctx context.Context, ideaID string, status models.IdeaStatus, remarks *string) (*models.Workflow, error) {
	wf, err := s.GetByIdeaID(ctx, ideaID)
	if err != nil {
		return nil, err
	}

	wf.CurrentStatus = status
	if remarks != nil {
		wf.Remarks = *remarks
	}
	wf.Decision = ""
	if status.IsTerminal() {
		wf.Decision = string(status)
	}
	wf.UpdatedTime = utils.TimeToMillis(s.now())

	if err := s.store.Workflows().Update(ctx, wf); err != nil {
		return nil, storeError(err, models.ErrCodeWorkflowNotFound, "workflow for idea "+ideaID)
	}
	return wf, nil
}

// AssignReviewer records the reviewer and moves the workflow under review
func (s *WorkflowService) AssignReviewer(ctx context.Context, ideaID, reviewer string) (*models.Workflow, error) {
	reviewer = strings.TrimSpace(reviewer)
	if reviewer == "" {
		return nil, invalidInput("reviewer is required")
	}

	wf, err := s.GetByIdeaID(ctx, ideaID)
	if err != nil {
		return nil, err
	}

	wf.AssignedTo = reviewer
	wf.CurrentStatus = models.IdeaStatusUnderReview
	wf.UpdatedTime = utils.TimeToMillis(s.now())

	if err := s.store.Workflows().Update(ctx, wf); err != nil {
		return nil, storeError(err, models.ErrCodeWorkflowNotFound, "workflow for idea "+ideaID)
	}
	return wf, nil
}

// GetByIdeaID returns the workflow of an idea
func (s *WorkflowService) GetByIdeaID(ctx context.Context, ideaID string) (*models.Workflow, error) {
	wf, err := s.store.Workflows().GetByIdeaID(ctx, ideaID)
	if err != nil {
		return nil, storeError(err, models.ErrCodeWorkflowNotFound, "workflow for idea "+ideaID)
	}
	return wf, nil
}
