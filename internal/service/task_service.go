package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smartsite/task-api/internal/domain"
	"github.com/smartsite/task-api/internal/domain/classify"
	"github.com/smartsite/task-api/internal/platform/logger"
	"github.com/smartsite/task-api/internal/store"
)

// TaskService provides task management operations. Every mutation appends
// exactly one history record in the same transaction as the task write.
type TaskService interface {
	// CreateTask classifies the draft's description and stores a new pending task.
	CreateTask(ctx context.Context, actor string, draft domain.TaskDraft) (*domain.Task, error)

	// ListTasks returns tasks matching the filter, newest first.
	ListTasks(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error)

	// GetTask returns a task together with its history, newest first.
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, []*domain.TaskHistory, error)

	// UpdateTask applies the supplied fields of patch to an existing task.
	UpdateTask(
		ctx context.Context,
		actor string,
		id uuid.UUID,
		patch domain.TaskPatch,
	) (*domain.Task, error)

	// DeleteTask removes a task, keeping its history.
	DeleteTask(ctx context.Context, actor string, id uuid.UUID) error

	// GetTaskHistory returns the audit trail for a task id, including deleted tasks.
	GetTaskHistory(ctx context.Context, id uuid.UUID) ([]*domain.TaskHistory, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks      store.TaskStore
	history    store.TaskHistoryStore
	txRunner   store.TxRunner
	classifier classify.Classifier
	logger     *slog.Logger
	now        func() time.Time
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
// A nil classifier falls back to the default keyword rules.
func NewTaskService(
	tasks store.TaskStore,
	history store.TaskHistoryStore,
	txRunner store.TxRunner,
	classifier classify.Classifier,
	logger *slog.Logger,
) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}
	if history == nil {
		return nil, domain.NewValidationError("history", "cannot be nil", domain.ErrValidation)
	}
	if txRunner == nil {
		return nil, domain.NewValidationError("txRunner", "cannot be nil", domain.ErrValidation)
	}

	if classifier == nil {
		classifier = classify.NewDefaultClassifier()
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:      tasks,
		history:    history,
		txRunner:   txRunner,
		classifier: classifier,
		logger:     logger.With(slog.String("component", "task_service")),
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	actor string,
	draft domain.TaskDraft,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if strings.TrimSpace(draft.Title) == "" {
		return nil, domain.NewValidationError("title", "cannot be empty", domain.ErrEmptyContent)
	}
	if strings.TrimSpace(draft.Description) == "" {
		return nil, domain.NewValidationError("description", "cannot be empty", domain.ErrEmptyContent)
	}

	result := s.classifier.Classify(draft.Description)

	task, err := domain.NewTask(draft, result.Category, result.Priority, result.SuggestedActions)
	if err != nil {
		return nil, err
	}

	err = s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.tasks.WithTx(tx).Create(ctx, task); err != nil {
			return err
		}
		return s.recordHistory(ctx, tx, task.ID, domain.HistoryActionCreated,
			nil, map[string]any{"status": string(task.Status)}, actor)
	})
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return nil, NewTaskServiceError("create", "failed to create task", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("category", string(result.Category)),
		slog.String("priority", string(result.Priority)),
		slog.String("actor", actorOrSystem(actor)))
	return task, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx, filter.Normalize())
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("list", "failed to list tasks", err)
	}
	return tasks, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Task, []*domain.TaskHistory, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, nil, s.wrapLookupError(ctx, "get", id, err)
	}

	history, err := s.history.ListByTaskID(ctx, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load task history",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, nil, NewTaskServiceError("get", "failed to load task history", err)
	}

	return task, history, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	actor string,
	id uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Task
	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		task, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return err
		}

		oldValue := task.Snapshot()
		patch.ApplyTo(task, s.now())

		if err := txTasks.Update(ctx, task); err != nil {
			return err
		}
		if err := s.recordHistory(ctx, tx, id, domain.HistoryActionUpdated,
			oldValue, patch.Changes(), actor); err != nil {
			return err
		}

		updated = task
		return nil
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for update", slog.String("task_id", id.String()))
			return nil, NewTaskServiceError("update", "task not found", err)
		}
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, NewTaskServiceError("update", "failed to update task", err)
	}

	log.Info("task updated",
		slog.String("task_id", id.String()),
		slog.Int("fields", len(patch.Changes())),
		slog.String("actor", actorOrSystem(actor)))
	return updated, nil
}

// DeleteTask implements TaskService.DeleteTask
// The deleted record is written before the row is removed so the audit
// trail ends with it.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, actor string, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		task, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := s.recordHistory(ctx, tx, id, domain.HistoryActionDeleted,
			map[string]any{"title": task.Title}, nil, actor); err != nil {
			return err
		}

		return txTasks.Delete(ctx, id)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for delete", slog.String("task_id", id.String()))
			return NewTaskServiceError("delete", "task not found", err)
		}
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return NewTaskServiceError("delete", "failed to delete task", err)
	}

	log.Info("task deleted",
		slog.String("task_id", id.String()),
		slog.String("actor", actorOrSystem(actor)))
	return nil
}

// GetTaskHistory implements TaskService.GetTaskHistory
func (s *taskServiceImpl) GetTaskHistory(
	ctx context.Context,
	id uuid.UUID,
) ([]*domain.TaskHistory, error) {
	records, err := s.history.ListByTaskID(ctx, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list task history",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, NewTaskServiceError("history", "failed to list task history", err)
	}

	if len(records) == 0 {
		return nil, NewTaskServiceError("history", "no history for task", store.ErrTaskHistoryNotFound)
	}

	return records, nil
}

func (s *taskServiceImpl) recordHistory(
	ctx context.Context,
	tx *sql.Tx,
	taskID uuid.UUID,
	action domain.HistoryAction,
	oldValue, newValue map[string]any,
	actor string,
) error {
	record, err := domain.NewTaskHistory(taskID, action, oldValue, newValue, actor)
	if err != nil {
		return err
	}
	return s.history.WithTx(tx).Create(ctx, record)
}

func (s *taskServiceImpl) wrapLookupError(
	ctx context.Context,
	operation string,
	id uuid.UUID,
	err error,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if store.IsNotFoundError(err) {
		log.Debug("task not found", slog.String("task_id", id.String()))
		return NewTaskServiceError(operation, "task not found", err)
	}
	log.Error("failed to get task",
		slog.String("error", err.Error()),
		slog.String("task_id", id.String()))
	return NewTaskServiceError(operation, "failed to get task", err)
}

func actorOrSystem(actor string) string {
	if strings.TrimSpace(actor) == "" {
		return domain.SystemActor
	}
	return actor
}
