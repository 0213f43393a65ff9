// Package store defines the persistence port of the idea lifecycle. Adapters
// live in internal/dao (MySQL and SQLite through sqlx) and
// internal/store/memory.
package store

import (
	"context"
	"errors"

	"github.com/wso2/idea-management-api/internal/models"
)

// ErrNotFound is returned by adapters when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned by adapters when a create collides with an
// existing primary key
var ErrDuplicate = errors.New("record already exists")

// IdeaStore persists ideas. Ideas are never deleted.
type IdeaStore interface {
	Create(ctx context.Context, idea *models.Idea) error
	Get(ctx context.Context, ideaID string) (*models.Idea, error)
	Exists(ctx context.Context, ideaID string) (bool, error)
	Update(ctx context.Context, idea *models.Idea) error
	// List returns ideas matching the filter, newest submission first
	List(ctx context.Context, filter models.IdeaFilter) ([]models.Idea, error)
}

// ClassificationStore persists classification records
type ClassificationStore interface {
	Create(ctx context.Context, classification *models.Classification) error
	GetLatest(ctx context.Context, ideaID string) (*models.Classification, error)
	// LatestCategories maps each classified idea to its latest category
	LatestCategories(ctx context.Context) (map[string]models.Category, error)
}

// EvaluationStore persists evaluation records
type EvaluationStore interface {
	Create(ctx context.Context, evaluation *models.EvaluationScore) error
	GetLatest(ctx context.Context, ideaID string) (*models.EvaluationScore, error)
	// LatestPriorityLevels maps each evaluated idea to its latest priority level
	LatestPriorityLevels(ctx context.Context) (map[string]models.PriorityLevel, error)
}

// WorkflowStore persists the single workflow record of each idea
type WorkflowStore interface {
	Create(ctx context.Context, workflow *models.Workflow) error
	GetByIdeaID(ctx context.Context, ideaID string) (*models.Workflow, error)
	Update(ctx context.Context, workflow *models.Workflow) error
}

// AuditLogStore persists audit entries. It is append-only; listings are
// newest first.
type AuditLogStore interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	ListByIdeaID(ctx context.Context, ideaID string) ([]models.AuditLog, error)
	ListAll(ctx context.Context) ([]models.AuditLog, error)
}

// Store groups the entity stores behind one transaction boundary
type Store interface {
	Ideas() IdeaStore
	Classifications() ClassificationStore
	Evaluations() EvaluationStore
	Workflows() WorkflowStore
	AuditLogs() AuditLogStore

	// InTx runs fn against a transactional view of the store. All writes made
	// through tx are committed when fn returns nil and discarded otherwise.
	InTx(ctx context.Context, fn func(tx Store) error) error

	// HealthCheck reports whether the backing storage is reachable
	HealthCheck(ctx context.Context) error
}
