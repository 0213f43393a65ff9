package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wso2/idea-management-api/internal/config"
	"github.com/wso2/idea-management-api/internal/events"
	"github.com/wso2/idea-management-api/internal/metrics"
	"github.com/wso2/idea-management-api/internal/models"
	"github.com/wso2/idea-management-api/internal/store"
	"github.com/wso2/idea-management-api/internal/store/memory"
)

// testClock advances one millisecond on every read so that audit entries
// written by one operation have distinct timestamps
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

// TestSetup contains common test dependencies
type TestSetup struct {
	Store   store.Store
	Memory  *memory.Store
	Metrics *metrics.Metrics
	Clock   *testClock
	Service *IdeaService
}

// NewTestSetup wires an IdeaService over an in-memory store
func NewTestSetup() *TestSetup {
	mem := memory.New()
	return newTestSetupWith(mem, mem, events.NoopPublisher{})
}

func newTestSetupWith(mem *memory.Store, st store.Store, publisher events.Publisher) *TestSetup {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	clock := newTestClock()
	workflows := NewWorkflowService(st)
	workflows.now = clock.Now
	audit := NewAuditService(st)
	audit.now = clock.Now
	m := metrics.New()

	svc := NewIdeaService(
		st,
		NewClassificationService(config.ClassificationConfig{}),
		NewEvaluationService(),
		workflows,
		audit,
		publisher,
		m,
		config.IdeaConfig{ReferencePrefix: "IDEA", IDMaxAttempts: 5},
		logger,
	)
	svc.now = clock.Now

	return &TestSetup{Store: st, Memory: mem, Metrics: m, Clock: clock, Service: svc}
}

// NewValidSubmitRequest returns a request scoring 8.8 (Critical) and
// classified as Automation
func NewValidSubmitRequest() *models.IdeaSubmitRequest {
	return &models.IdeaSubmitRequest{
		Title:              "Invoice matching bot",
		Description:        "Automate matching of supplier invoices against purchase orders.",
		Department:         models.DepartmentIT,
		Country:            "Sri Lanka",
		ExpectedBenefit:    models.BenefitCostReduction,
		Frequency:          "Daily",
		SubmitterFirstName: "Jane",
		SubmitterLastName:  "Doe",
		SubmitterEmail:     "jane.doe@example.com",
	}
}

var (
	submitter = models.Actor{Name: "jane.doe", Role: models.RoleSubmitter}
	admin     = models.Actor{Name: "admin", Role: models.RoleAdmin}
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func categoryPtr(c models.Category) *models.Category { return &c }

var errInjected = errors.New("injected failure")

// faultyStore wraps a store and swaps in failing or mocked entity stores,
// including inside transactions
type faultyStore struct {
	store.Store
	failWorkflows bool
	auditLogs     store.AuditLogStore
}

func (f *faultyStore) InTx(ctx context.Context, fn func(tx store.Store) error) error {
	return f.Store.InTx(ctx, func(tx store.Store) error {
		return fn(&faultyStore{Store: tx, failWorkflows: f.failWorkflows, auditLogs: f.auditLogs})
	})
}

func (f *faultyStore) Workflows() store.WorkflowStore {
	if f.failWorkflows {
		return failingWorkflowStore{}
	}
	return f.Store.Workflows()
}

func (f *faultyStore) AuditLogs() store.AuditLogStore {
	if f.auditLogs != nil {
		return f.auditLogs
	}
	return f.Store.AuditLogs()
}

type failingWorkflowStore struct{}

func (failingWorkflowStore) Create(context.Context, *models.Workflow) error { return errInjected }

func (failingWorkflowStore) GetByIdeaID(context.Context, string) (*models.Workflow, error) {
	return nil, errInjected
}

func (failingWorkflowStore) Update(context.Context, *models.Workflow) error { return errInjected }

// ideaOverrideStore replaces the idea store outside transactions
type ideaOverrideStore struct {
	store.Store
	ideas store.IdeaStore
}

func (s *ideaOverrideStore) Ideas() store.IdeaStore { return s.ideas }

// staleExistsStore reports every idea code as unused, as if another
// submission inserted it between the existence check and the transaction
type staleExistsStore struct {
	store.Store
}

func (s *staleExistsStore) Ideas() store.IdeaStore { return staleExistsIdeas{s.Store.Ideas()} }

func (s *staleExistsStore) InTx(ctx context.Context, fn func(tx store.Store) error) error {
	return s.Store.InTx(ctx, func(tx store.Store) error {
		return fn(&staleExistsStore{Store: tx})
	})
}

type staleExistsIdeas struct {
	store.IdeaStore
}

func (staleExistsIdeas) Exists(context.Context, string) (bool, error) { return false, nil }
