package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/smartsite/task-api/internal/domain"
	"github.com/smartsite/task-api/internal/mocks"
	"github.com/smartsite/task-api/internal/service"
	"github.com/smartsite/task-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	tasks   *mocks.MockTaskStore
	history *mocks.MockTaskHistoryStore
	tx      *mocks.MockTxRunner
	svc     service.TaskService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		tasks:   &mocks.MockTaskStore{},
		history: &mocks.MockTaskHistoryStore{},
		tx:      &mocks.MockTxRunner{},
	}
	svc, err := service.NewTaskService(f.tasks, f.history, f.tx, nil, nil)
	require.NoError(t, err)
	f.svc = svc
	t.Cleanup(func() {
		f.tasks.AssertExpectations(t)
		f.history.AssertExpectations(t)
	})
	return f
}

func existingTask(t *testing.T) *domain.Task {
	t.Helper()
	assignee := "dana"
	task, err := domain.NewTask(
		domain.TaskDraft{
			Title:       "Quarterly invoice",
			Description: "Send the invoice to finance",
			AssignedTo:  &assignee,
		},
		domain.CategoryFinance,
		domain.PriorityLow,
		[]string{"Check invoice"},
	)
	require.NoError(t, err)
	task.CreatedAt = task.CreatedAt.Add(-time.Hour)
	task.UpdatedAt = task.CreatedAt
	return task
}

func historyWith(action domain.HistoryAction, actor string) any {
	return mock.MatchedBy(func(h *domain.TaskHistory) bool {
		return h.Action == action && h.ChangedBy == actor
	})
}

func TestNewTaskService_NilDependencies(t *testing.T) {
	tasks := &mocks.MockTaskStore{}
	history := &mocks.MockTaskHistoryStore{}
	tx := &mocks.MockTxRunner{}

	_, err := service.NewTaskService(nil, history, tx, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = service.NewTaskService(tasks, nil, tx, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = service.NewTaskService(tasks, history, nil, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateTask(t *testing.T) {
	t.Run("classifies and records creation", func(t *testing.T) {
		f := newServiceFixture(t)

		f.tasks.On("Create", mock.Anything, mock.AnythingOfType("*domain.Task")).Return(nil)
		f.history.On("Create", mock.Anything, mock.MatchedBy(func(h *domain.TaskHistory) bool {
			return h.Action == domain.HistoryActionCreated &&
				h.ChangedBy == "alice" &&
				h.OldValue == nil &&
				h.NewValue["status"] == "pending"
		})).Return(nil)

		task, err := f.svc.CreateTask(context.Background(), "alice", domain.TaskDraft{
			Title:       "Team sync",
			Description: "Urgent meeting with team today",
		})
		require.NoError(t, err)

		assert.Equal(t, domain.TaskStatusPending, task.Status)
		require.NotNil(t, task.Category)
		assert.Equal(t, domain.CategoryScheduling, *task.Category)
		require.NotNil(t, task.Priority)
		assert.Equal(t, domain.PriorityHigh, *task.Priority)
		assert.Equal(t, []string{"Block calendar", "Send invite"}, task.SuggestedActions)
		assert.Empty(t, task.ExtractedEntities)
		assert.Equal(t, 1, f.tx.Calls)
	})

	t.Run("unmatched description is general and low", func(t *testing.T) {
		f := newServiceFixture(t)

		f.tasks.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.history.On("Create", mock.Anything, historyWith(domain.HistoryActionCreated, domain.SystemActor)).
			Return(nil)

		task, err := f.svc.CreateTask(context.Background(), "", domain.TaskDraft{
			Title:       "Misc",
			Description: "Water the plants",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryGeneral, *task.Category)
		assert.Equal(t, domain.PriorityLow, *task.Priority)
		assert.NotNil(t, task.SuggestedActions)
		assert.Empty(t, task.SuggestedActions)
	})

	t.Run("blank fields are validation errors", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.svc.CreateTask(context.Background(), "", domain.TaskDraft{Title: " ", Description: "x"})
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = f.svc.CreateTask(context.Background(), "", domain.TaskDraft{Title: "x", Description: ""})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Zero(t, f.tx.Calls)
	})

	t.Run("history failure fails the create", func(t *testing.T) {
		f := newServiceFixture(t)
		dbErr := errors.New("insert failed")

		f.tasks.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.history.On("Create", mock.Anything, mock.Anything).Return(dbErr)

		_, err := f.svc.CreateTask(context.Background(), "", domain.TaskDraft{
			Title:       "Fix",
			Description: "fix the bug",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)

		var svcErr *service.TaskServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "create", svcErr.Operation)
	})
}

func TestListTasks(t *testing.T) {
	f := newServiceFixture(t)
	status := domain.TaskStatusCompleted
	task := existingTask(t)

	f.tasks.On("List", mock.Anything, store.TaskFilter{Status: &status, Limit: store.DefaultListLimit}).
		Return([]*domain.Task{task}, nil)

	tasks, err := f.svc.ListTasks(context.Background(), store.TaskFilter{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, []*domain.Task{task}, tasks)
}

func TestGetTask(t *testing.T) {
	t.Run("returns task and history", func(t *testing.T) {
		f := newServiceFixture(t)
		task := existingTask(t)
		record, err := domain.NewTaskHistory(task.ID, domain.HistoryActionCreated,
			nil, map[string]any{"status": "pending"}, "")
		require.NoError(t, err)

		f.tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)
		f.history.On("ListByTaskID", mock.Anything, task.ID).
			Return([]*domain.TaskHistory{record}, nil)

		got, history, err := f.svc.GetTask(context.Background(), task.ID)
		require.NoError(t, err)
		assert.Equal(t, task, got)
		assert.Len(t, history, 1)
	})

	t.Run("missing task is not found", func(t *testing.T) {
		f := newServiceFixture(t)
		id := uuid.New()

		f.tasks.On("GetByID", mock.Anything, id).Return(nil, store.ErrTaskNotFound)

		_, _, err := f.svc.GetTask(context.Background(), id)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUpdateTask(t *testing.T) {
	t.Run("applies only supplied fields", func(t *testing.T) {
		f := newServiceFixture(t)
		task := existingTask(t)
		before := task.UpdatedAt

		f.tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)
		f.tasks.On("Update", mock.Anything, task).Return(nil)
		f.history.On("Create", mock.Anything, mock.MatchedBy(func(h *domain.TaskHistory) bool {
			return h.Action == domain.HistoryActionUpdated &&
				h.ChangedBy == "bob" &&
				h.OldValue["status"] == "pending" &&
				h.OldValue["assigned_to"] == "dana" &&
				len(h.NewValue) == 2 &&
				h.NewValue["status"] == "completed" &&
				h.NewValue["assigned_to"] == nil
		})).Return(nil)

		patch := domain.TaskPatch{
			Status:     domain.Some(domain.TaskStatusCompleted),
			AssignedTo: domain.Null[string](),
		}
		updated, err := f.svc.UpdateTask(context.Background(), "bob", task.ID, patch)
		require.NoError(t, err)

		assert.Equal(t, domain.TaskStatusCompleted, updated.Status)
		assert.Nil(t, updated.AssignedTo)
		assert.Equal(t, "Quarterly invoice", updated.Title)
		require.NotNil(t, updated.Category)
		assert.Equal(t, domain.CategoryFinance, *updated.Category)
		assert.True(t, updated.UpdatedAt.After(before))
	})

	t.Run("description change does not reclassify", func(t *testing.T) {
		f := newServiceFixture(t)
		task := existingTask(t)

		f.tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)
		f.tasks.On("Update", mock.Anything, task).Return(nil)
		f.history.On("Create", mock.Anything, mock.Anything).Return(nil)

		updated, err := f.svc.UpdateTask(context.Background(), "", task.ID, domain.TaskPatch{
			Description: domain.Some("urgent meeting about a bug"),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryFinance, *updated.Category)
		assert.Equal(t, domain.PriorityLow, *updated.Priority)
	})

	t.Run("invalid patch is rejected before the transaction", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.svc.UpdateTask(context.Background(), "", uuid.New(), domain.TaskPatch{
			Title: domain.Null[string](),
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Zero(t, f.tx.Calls)
	})

	t.Run("missing task is not found", func(t *testing.T) {
		f := newServiceFixture(t)
		id := uuid.New()

		f.tasks.On("GetByID", mock.Anything, id).Return(nil, store.ErrTaskNotFound)

		_, err := f.svc.UpdateTask(context.Background(), "", id, domain.TaskPatch{
			Status: domain.Some(domain.TaskStatusCompleted),
		})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestDeleteTask(t *testing.T) {
	t.Run("records deletion then removes the row", func(t *testing.T) {
		f := newServiceFixture(t)
		task := existingTask(t)

		var order []string
		f.tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)
		f.history.On("Create", mock.Anything, mock.MatchedBy(func(h *domain.TaskHistory) bool {
			return h.Action == domain.HistoryActionDeleted &&
				h.OldValue["title"] == "Quarterly invoice" &&
				len(h.OldValue) == 1 &&
				h.NewValue == nil
		})).Run(func(mock.Arguments) { order = append(order, "history") }).Return(nil)
		f.tasks.On("Delete", mock.Anything, task.ID).
			Run(func(mock.Arguments) { order = append(order, "delete") }).Return(nil)

		require.NoError(t, f.svc.DeleteTask(context.Background(), "erin", task.ID))
		assert.Equal(t, []string{"history", "delete"}, order)
	})

	t.Run("missing task is not found", func(t *testing.T) {
		f := newServiceFixture(t)
		id := uuid.New()

		f.tasks.On("GetByID", mock.Anything, id).Return(nil, store.ErrTaskNotFound)

		err := f.svc.DeleteTask(context.Background(), "", id)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("transaction failure is wrapped", func(t *testing.T) {
		f := newServiceFixture(t)
		f.tx.Err = store.ErrTransactionFailed

		err := f.svc.DeleteTask(context.Background(), "", uuid.New())
		assert.ErrorIs(t, err, store.ErrTransactionFailed)
		assert.False(t, store.IsNotFoundError(err))
	})
}

func TestGetTaskHistory(t *testing.T) {
	t.Run("returns records for a deleted task", func(t *testing.T) {
		f := newServiceFixture(t)
		taskID := uuid.New()
		deleted, err := domain.NewTaskHistory(taskID, domain.HistoryActionDeleted,
			map[string]any{"title": "gone"}, nil, "")
		require.NoError(t, err)

		f.history.On("ListByTaskID", mock.Anything, taskID).
			Return([]*domain.TaskHistory{deleted}, nil)

		records, err := f.svc.GetTaskHistory(context.Background(), taskID)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, domain.HistoryActionDeleted, records[0].Action)
	})

	t.Run("no records is not found", func(t *testing.T) {
		f := newServiceFixture(t)
		taskID := uuid.New()

		f.history.On("ListByTaskID", mock.Anything, taskID).Return([]*domain.TaskHistory{}, nil)

		_, err := f.svc.GetTaskHistory(context.Background(), taskID)
		assert.ErrorIs(t, err, store.ErrTaskHistoryNotFound)
		assert.True(t, store.IsNotFoundError(err))
	})
}

func TestTaskServiceError(t *testing.T) {
	err := service.NewTaskServiceError("update", "task not found", store.ErrTaskNotFound)
	assert.Equal(t, "task service update failed: task not found: entity not found: task", err.Error())
	assert.ErrorIs(t, err, store.ErrNotFound)

	bare := service.NewTaskServiceError("list", "boom", nil)
	assert.Equal(t, "task service list failed: boom", bare.Error())
}
