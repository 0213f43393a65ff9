package dao

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/wso2/idea-management-api/internal/models"
	"github.com/wso2/idea-management-api/internal/store"
)

// WorkflowDAO handles database operations for idea workflows
type WorkflowDAO struct {
	db queryer
}

var _ store.WorkflowStore = (*WorkflowDAO)(nil)

// NewWorkflowDAO creates a new WorkflowDAO instance
func NewWorkflowDAO(db queryer) *WorkflowDAO {
	return &WorkflowDAO{db: db}
}

// Create inserts a new workflow
func (dao *WorkflowDAO) Create(ctx context.Context, wf *models.Workflow) error {
	query := `
		INSERT INTO IDEA_WORKFLOW (
			WORKFLOW_ID, IDEA_ID, CURRENT_STATUS, ASSIGNED_TO, REMARKS,
			DECISION, CREATED_TIME, UPDATED_TIME
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
		wf.WorkflowID,
		wf.IdeaID,
		wf.CurrentStatus,
		wf.AssignedTo,
		wf.Remarks,
		wf.Decision,
		wf.CreatedTime,
		wf.UpdatedTime,
	)
	if err != nil {
		return createFailed(err, "workflow")
	}

	return nil
}

// GetByIdeaID retrieves the workflow of an idea
func (dao *WorkflowDAO) GetByIdeaID(ctx context.Context, ideaID string) (*models.Workflow, error) {
	query := `
		SELECT WORKFLOW_ID, IDEA_ID, CURRENT_STATUS, ASSIGNED_TO, REMARKS,
		       DECISION, CREATED_TIME, UPDATED_TIME
		FROM IDEA_WORKFLOW
		WHERE IDEA_ID = ?
	`

	var wf models.Workflow
	if err := sqlx.GetContext(ctx, dao.db, &wf, query, ideaID); err != nil {
		return nil, notFound(err, "workflow for idea %s", ideaID)
	}

	return &wf, nil
}

// Update overwrites the mutable fields of a workflow
func (dao *WorkflowDAO) Update(ctx context.Context, wf *models.Workflow) error {
	query := `
		UPDATE IDEA_WORKFLOW
		SET CURRENT_STATUS = ?, ASSIGNED_TO = ?, REMARKS = ?, DECISION = ?, UPDATED_TIME = ?
		WHERE IDEA_ID = ?
	`

	result, err := dao.db.ExecContext(ctx, query, wf.CurrentStatus, wf.AssignedTo, wf.Remarks, wf.Decision, wf.UpdatedTime, wf.IdeaID)
	if err != nil {
		return fmt.Errorf("failed to update workflow: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	// MySQL reports zero rows for an update that changes nothing, so only a
	// missing row is treated as not found
	if rowsAffected == 0 {
		exists, err := dao.exists(ctx, wf.IdeaID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("workflow for idea %s: %w", wf.IdeaID, store.ErrNotFound)
		}
	}

	return nil
}

func (dao *WorkflowDAO) exists(ctx context.Context, ideaID string) (bool, error) {
	var count int
	if err := sqlx.GetContext(ctx, dao.db, &count, `SELECT COUNT(*) FROM IDEA_WORKFLOW WHERE IDEA_ID = ?`, ideaID); err != nil {
		return false, fmt.Errorf("failed to check workflow existence: %w", err)
	}
	return count > 0, nil
}
