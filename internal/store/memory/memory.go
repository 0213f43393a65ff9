// Package memory implements the persistence port on process-local maps. It is
// used by tests and by the memory database type; nothing survives a restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/wso2/idea-management-api/internal/models"
	"github.com/wso2/idea-management-api/internal/store"
)

type state struct {
	ideas           map[string]*models.Idea
	classifications []models.Classification
	evaluations     []models.EvaluationScore
	workflows       map[string]*models.Workflow
	auditLogs       []models.AuditLog
}

func newState() *state {
	return &state{
		ideas:     make(map[string]*models.Idea),
		workflows: make(map[string]*models.Workflow),
	}
}

func (s *state) snapshot() *state {
	c := &state{
		ideas:           make(map[string]*models.Idea, len(s.ideas)),
		classifications: append([]models.Classification(nil), s.classifications...),
		evaluations:     append([]models.EvaluationScore(nil), s.evaluations...),
		workflows:       make(map[string]*models.Workflow, len(s.workflows)),
		auditLogs:       append([]models.AuditLog(nil), s.auditLogs...),
	}
	for id, idea := range s.ideas {
		c.ideas[id] = idea.Clone()
	}
	for id, wf := range s.workflows {
		w := *wf
		c.workflows[id] = &w
	}
	return c
}

// Store is an in-memory store.Store. A single mutex serializes every call;
// InTx holds it for the whole callback and restores a snapshot on error.
type Store struct {
	mu sync.Mutex
	st *state
	// inTx is set on the view handed to InTx callbacks, whose calls run
	// under the lock already held by InTx
	inTx bool
	root *Store
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store
func New() *Store {
	return &Store{st: newState()}
}

func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) data() *state {
	if s.inTx {
		return s.root.st
	}
	return s.st
}

// Ideas returns the idea store
func (s *Store) Ideas() store.IdeaStore { return ideaStore{s} }

// Classifications returns the classification store
func (s *Store) Classifications() store.ClassificationStore { return classificationStore{s} }

// Evaluations returns the evaluation store
func (s *Store) Evaluations() store.EvaluationStore { return evaluationStore{s} }

// Workflows returns the workflow store
func (s *Store) Workflows() store.WorkflowStore { return workflowStore{s} }

// AuditLogs returns the audit log store
func (s *Store) AuditLogs() store.AuditLogStore { return auditLogStore{s} }

// InTx runs fn with exclusive access to the store
func (s *Store) InTx(ctx context.Context, fn func(tx store.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.st.snapshot()
	committed := false
	defer func() {
		if !committed {
			s.st = saved
		}
	}()

	if err := fn(&Store{inTx: true, root: s}); err != nil {
		return err
	}
	committed = true
	return nil
}

// HealthCheck always succeeds
func (s *Store) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

type ideaStore struct{ s *Store }

func (r ideaStore) Create(ctx context.Context, idea *models.Idea) error {
	defer r.s.lock()()
	st := r.s.data()
	if _, ok := st.ideas[idea.IdeaID]; ok {
		return fmt.Errorf("idea %s: %w", idea.IdeaID, store.ErrDuplicate)
	}
	st.ideas[idea.IdeaID] = idea.Clone()
	return nil
}

func (r ideaStore) Get(ctx context.Context, ideaID string) (*models.Idea, error) {
	defer r.s.lock()()
	idea, ok := r.s.data().ideas[ideaID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return idea.Clone(), nil
}

func (r ideaStore) Exists(ctx context.Context, ideaID string) (bool, error) {
	defer r.s.lock()()
	_, ok := r.s.data().ideas[ideaID]
	return ok, nil
}

func (r ideaStore) Update(ctx context.Context, idea *models.Idea) error {
	defer r.s.lock()()
	st := r.s.data()
	if _, ok := st.ideas[idea.IdeaID]; !ok {
		return store.ErrNotFound
	}
	st.ideas[idea.IdeaID] = idea.Clone()
	return nil
}

func (r ideaStore) List(ctx context.Context, filter models.IdeaFilter) ([]models.Idea, error) {
	defer r.s.lock()()
	ideas := make([]models.Idea, 0, len(r.s.data().ideas))
	for _, idea := range r.s.data().ideas {
		if filter.Matches(idea) {
			ideas = append(ideas, *idea.Clone())
		}
	}
	sort.SliceStable(ideas, func(i, j int) bool {
		if ideas[i].SubmittedTime != ideas[j].SubmittedTime {
			return ideas[i].SubmittedTime > ideas[j].SubmittedTime
		}
		return ideas[i].IdeaID < ideas[j].IdeaID
	})
	return ideas, nil
}

type classificationStore struct{ s *Store }

func (r classificationStore) Create(ctx context.Context, c *models.Classification) error {
	defer r.s.lock()()
	st := r.s.data()
	st.classifications = append(st.classifications, *c)
	return nil
}

// GetLatest scans from the end so the most recently appended record wins
func (r classificationStore) GetLatest(ctx context.Context, ideaID string) (*models.Classification, error) {
	defer r.s.lock()()
	records := r.s.data().classifications
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].IdeaID == ideaID {
			c := records[i]
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r classificationStore) LatestCategories(ctx context.Context) (map[string]models.Category, error) {
	defer r.s.lock()()
	latest := make(map[string]models.Category)
	for _, c := range r.s.data().classifications {
		latest[c.IdeaID] = c.Category
	}
	return latest, nil
}

type evaluationStore struct{ s *Store }

func (r evaluationStore) Create(ctx context.Context, e *models.EvaluationScore) error {
	defer r.s.lock()()
	st := r.s.data()
	st.evaluations = append(st.evaluations, *e)
	return nil
}

func (r evaluationStore) GetLatest(ctx context.Context, ideaID string) (*models.EvaluationScore, error) {
	defer r.s.lock()()
	records := r.s.data().evaluations
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].IdeaID == ideaID {
			e := records[i]
			return &e, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r evaluationStore) LatestPriorityLevels(ctx context.Context) (map[string]models.PriorityLevel, error) {
	defer r.s.lock()()
	latest := make(map[string]models.PriorityLevel)
	for _, e := range r.s.data().evaluations {
		latest[e.IdeaID] = e.PriorityLevel
	}
	return latest, nil
}

type workflowStore struct{ s *Store }

func (r workflowStore) Create(ctx context.Context, wf *models.Workflow) error {
	defer r.s.lock()()
	st := r.s.data()
	if _, ok := st.workflows[wf.IdeaID]; ok {
		return fmt.Errorf("workflow for idea %s: %w", wf.IdeaID, store.ErrDuplicate)
	}
	w := *wf
	st.workflows[wf.IdeaID] = &w
	return nil
}

func (r workflowStore) GetByIdeaID(ctx context.Context, ideaID string) (*models.Workflow, error) {
	defer r.s.lock()()
	wf, ok := r.s.data().workflows[ideaID]
	if !ok {
		return nil, store.ErrNotFound
	}
	w := *wf
	return &w, nil
}

func (r workflowStore) Update(ctx context.Context, wf *models.Workflow) error {
	defer r.s.lock()()
	st := r.s.data()
	if _, ok := st.workflows[wf.IdeaID]; !ok {
		return store.ErrNotFound
	}
	w := *wf
	st.workflows[wf.IdeaID] = &w
	return nil
}

type auditLogStore struct{ s *Store }

func (r auditLogStore) Create(ctx context.Context, entry *models.AuditLog) error {
	defer r.s.lock()()
	st := r.s.data()
	st.auditLogs = append(st.auditLogs, *entry)
	return nil
}

func (r auditLogStore) ListByIdeaID(ctx context.Context, ideaID string) ([]models.AuditLog, error) {
	defer r.s.lock()()
	return newestFirst(r.s.data().auditLogs, func(e *models.AuditLog) bool { return e.IdeaID == ideaID }), nil
}

func (r auditLogStore) ListAll(ctx context.Context) ([]models.AuditLog, error) {
	defer r.s.lock()()
	return newestFirst(r.s.data().auditLogs, func(*models.AuditLog) bool { return true }), nil
}

// newestFirst returns matching entries by descending time. Entries sharing a
// timestamp keep reverse insertion order.
func newestFirst(entries []models.AuditLog, keep func(*models.AuditLog) bool) []models.AuditLog {
	out := make([]models.AuditLog, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		if keep(&entries[i]) {
			out = append(out, entries[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PerformedTime > out[j].PerformedTime
	})
	return out
}
