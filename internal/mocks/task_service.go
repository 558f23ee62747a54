package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartsite/task-api/internal/domain"
	"github.com/smartsite/task-api/internal/service"
	"github.com/smartsite/task-api/internal/store"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// Custom behavior functions
	CreateTaskFn     func(ctx context.Context, actor string, draft domain.TaskDraft) (*domain.Task, error)
	ListTasksFn      func(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error)
	GetTaskFn        func(ctx context.Context, id uuid.UUID) (*domain.Task, []*domain.TaskHistory, error)
	UpdateTaskFn     func(ctx context.Context, actor string, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTaskFn     func(ctx context.Context, actor string, id uuid.UUID) error
	GetTaskHistoryFn func(ctx context.Context, id uuid.UUID) ([]*domain.TaskHistory, error)

	// Default return values
	Task         *domain.Task
	Tasks        []*domain.Task
	History      []*domain.TaskHistory
	DefaultError error
}

var _ service.TaskService = (*MockTaskService)(nil)

// CreateTask implements the TaskService.CreateTask method
func (m *MockTaskService) CreateTask(
	ctx context.Context,
	actor string,
	draft domain.TaskDraft,
) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, actor, draft)
	}
	return m.Task, m.DefaultError
}

// ListTasks implements the TaskService.ListTasks method
func (m *MockTaskService) ListTasks(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, filter)
	}
	return m.Tasks, m.DefaultError
}

// GetTask implements the TaskService.GetTask method
func (m *MockTaskService) GetTask(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Task, []*domain.TaskHistory, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return m.Task, m.History, m.DefaultError
}

// UpdateTask implements the TaskService.UpdateTask method
func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	actor string,
	id uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, actor, id, patch)
	}
	return m.Task, m.DefaultError
}

// DeleteTask implements the TaskService.DeleteTask method
func (m *MockTaskService) DeleteTask(ctx context.Context, actor string, id uuid.UUID) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, actor, id)
	}
	return m.DefaultError
}

// GetTaskHistory implements the TaskService.GetTaskHistory method
func (m *MockTaskService) GetTaskHistory(
	ctx context.Context,
	id uuid.UUID,
) ([]*domain.TaskHistory, error) {
	if m.GetTaskHistoryFn != nil {
		return m.GetTaskHistoryFn(ctx, id)
	}
	return m.History, m.DefaultError
}
