package dao

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/wso2/idea-management-api/internal/models"
	"github.com/wso2/idea-management-api/internal/store"
)

// AuditLogDAO handles database operations for the idea audit log.
// There is no update or delete.
type AuditLogDAO struct {
	db queryer
}

var _ store.AuditLogStore = (*AuditLogDAO)(nil)

// NewAuditLogDAO creates a new AuditLogDAO instance
func NewAuditLogDAO(db queryer) *AuditLogDAO {
	return &AuditLogDAO{db: db}
}

// Create inserts a new audit entry
func (dao *AuditLogDAO) Create(ctx context.Context, entry *models.AuditLog) error {
	query := `
		INSERT INTO IDEA_AUDIT_LOG (
			AUDIT_ID, IDEA_ID, ACTION, PERFORMED_BY, PERFORMED_TIME, DETAILS
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
		entry.AuditID,
		entry.IdeaID,
		entry.Action,
		entry.PerformedBy,
		entry.PerformedTime,
		entry.Details,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	return nil
}

// ListByIdeaID retrieves the audit entries of an idea, newest first
func (dao *AuditLogDAO) ListByIdeaID(ctx context.Context, ideaID string) ([]models.AuditLog, error) {
	query := `
		SELECT AUDIT_ID, IDEA_ID, ACTION, PERFORMED_BY, PERFORMED_TIME, DETAILS
		FROM IDEA_AUDIT_LOG
		WHERE IDEA_ID = ?
		ORDER BY PERFORMED_TIME DESC, SEQ_ID DESC
	`

	logs := []models.AuditLog{}
	if err := sqlx.SelectContext(ctx, dao.db, &logs, query, ideaID); err != nil {
		return nil, fmt.Errorf("failed to get audit logs by idea ID: %w", err)
	}

	return logs, nil
}

// ListAll retrieves every audit entry, newest first
func (dao *AuditLogDAO) ListAll(ctx context.Context) ([]models.AuditLog, error) {
	query := `
		SELECT AUDIT_ID, IDEA_ID, ACTION, PERFORMED_BY, PERFORMED_TIME, DETAILS
		FROM IDEA_AUDIT_LOG
		ORDER BY PERFORMED_TIME DESC, SEQ_ID DESC
	`

	logs := []models.AuditLog{}
	if err := sqlx.SelectContext(ctx, dao.db, &logs, query); err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	return logs, nil
}
