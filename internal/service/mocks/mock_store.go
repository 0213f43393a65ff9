package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/wso2/idea-management-api/internal/models"
)

// MockIdeaStore is a mock implementation of store.IdeaStore
type MockIdeaStore struct {
	mock.Mock
}

func (m *MockIdeaStore) Create(ctx context.Context, idea *models.Idea) error {
	args := m.Called(ctx, idea)
	return args.Error(0)
}

func (m *MockIdeaStore) Get(ctx context.Context, ideaID string) (*models.Idea, error) {
	args := m.Called(ctx, ideaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Idea), args.Error(1)
}

func (m *MockIdeaStore) Exists(ctx context.Context, ideaID string) (bool, error) {
	args := m.Called(ctx, ideaID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdeaStore) Update(ctx context.Context, idea *models.Idea) error {
	args := m.Called(ctx, idea)
	return args.Error(0)
}

func (m *MockIdeaStore) List(ctx context.Context, filter models.IdeaFilter) ([]models.Idea, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Idea), args.Error(1)
}

// MockAuditLogStore is a mock implementation of store.AuditLogStore
type MockAuditLogStore struct {
	mock.Mock
}

func (m *MockAuditLogStore) Create(ctx context.Context, entry *models.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogStore) ListByIdeaID(ctx context.Context, ideaID string) ([]models.AuditLog, error) {
	args := m.Called(ctx, ideaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditLog), args.Error(1)
}

func (m *MockAuditLogStore) ListAll(ctx context.Context) ([]models.AuditLog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditLog), args.Error(1)
}
