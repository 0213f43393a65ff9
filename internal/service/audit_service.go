package service

import (
	"context"
	"time"

	"github.com/wso2/idea-management-api/internal/models"
	"github.com/wso2/idea-management-api/internal/store"
	"github.com/wso2/idea-management-api/pkg/utils"
)

// AuditService appends and reads the idea audit log
type AuditService struct {
	store store.Store
	now   func() time.Time
}

// NewAuditService creates a new audit service
func NewAuditService(st store.Store) *AuditService {
	return &AuditService{store: st, now: time.Now}
}

// Record appends an immutable audit entry
func (s *AuditService) Record(ctx context.Context, ideaID string, action models.AuditAction, performedBy, details string) (*models.AuditLog, error) {
	entry := &models.AuditLog{
		AuditID:       utils.GenerateAuditID(),
		IdeaID:        ideaID,
		Action:        action,
		PerformedBy:   performedBy,
		PerformedTime: utils.TimeToMillis(s.now()),
		Details:       details,
	}

	if err := s.store.AuditLogs().Create(ctx, entry); err != nil {
		return nil, persistence("failed to record audit entry", err)
	}
	return entry, nil
}

// ListForIdea returns the entries of one idea, newest first
func (s *AuditService) ListForIdea(ctx context.Context, ideaID string) ([]models.AuditLog, error) {
	logs, err := s.store.AuditLogs().ListByIdeaID(ctx, ideaID)
	if err != nil {
		return nil, persistence("failed to list audit logs", err)
	}
	return logs, nil
}

// ListAll returns every entry, newest first
func (s *AuditService) ListAll(ctx context.Context) ([]models.AuditLog, error) {
	logs, err := s.store.AuditLogs().ListAll(ctx)
	if err != nil {
		return nil, persistence("failed to list audit logs", err)
	}
	return logs, nil
}
