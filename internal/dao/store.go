package dao

import (
	"context"

	"github.com/wso2/idea-management-api/internal/database"
	"github.com/wso2/idea-management-api/internal/store"
)

// Store implements store.Store on a SQL database
type Store struct {
	db   *database.DB
	inTx bool

	ideas           *IdeaDAO
	classifications *ClassificationDAO
	evaluations     *EvaluationDAO
	workflows       *WorkflowDAO
	auditLogs       *AuditLogDAO
}

var _ store.Store = (*Store)(nil)

// NewStore creates a store whose DAOs run directly on the connection pool
func NewStore(db *database.DB) *Store {
	return newStore(db, db.DB, false)
}

func newStore(db *database.DB, q queryer, inTx bool) *Store {
	return &Store{
		db:              db,
		inTx:            inTx,
		ideas:           NewIdeaDAO(q),
		classifications: NewClassificationDAO(q),
		evaluations:     NewEvaluationDAO(q),
		workflows:       NewWorkflowDAO(q),
		auditLogs:       NewAuditLogDAO(q),
	}
}

func (s *Store) Ideas() store.IdeaStore                     { return s.ideas }
func (s *Store) Classifications() store.ClassificationStore { return s.classifications }
func (s *Store) Evaluations() store.EvaluationStore         { return s.evaluations }
func (s *Store) Workflows() store.WorkflowStore             { return s.workflows }
func (s *Store) AuditLogs() store.AuditLogStore             { return s.auditLogs }

// InTx runs fn inside a database transaction. A store that is already bound
// to a transaction runs fn directly.
func (s *Store) InTx(ctx context.Context, fn func(tx store.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	return s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		return fn(newStore(s.db, tx.Tx, true))
	})
}

// HealthCheck pings the database
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}
