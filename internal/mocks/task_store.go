package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/smartsite/task-api/internal/domain"
	"github.com/smartsite/task-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockTaskStore mocks store.TaskStore. WithTx returns the same mock, so
// expectations apply inside and outside transactions alike.
type MockTaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements store.TaskStore
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// GetByID implements store.TaskStore
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

// List implements store.TaskStore
func (m *MockTaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

// Update implements store.TaskStore
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// Delete implements store.TaskStore
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx implements store.TaskStore
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

// MockTaskHistoryStore mocks store.TaskHistoryStore. WithTx returns the same mock.
type MockTaskHistoryStore struct {
	mock.Mock
}

var _ store.TaskHistoryStore = (*MockTaskHistoryStore)(nil)

// Create implements store.TaskHistoryStore
func (m *MockTaskHistoryStore) Create(ctx context.Context, history *domain.TaskHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

// ListByTaskID implements store.TaskHistoryStore
func (m *MockTaskHistoryStore) ListByTaskID(
	ctx context.Context,
	taskID uuid.UUID,
) ([]*domain.TaskHistory, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TaskHistory), args.Error(1)
}

// WithTx implements store.TaskHistoryStore
func (m *MockTaskHistoryStore) WithTx(tx *sql.Tx) store.TaskHistoryStore {
	return m
}
