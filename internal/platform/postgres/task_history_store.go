package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/smartsite/task-api/internal/domain"
	"github.com/smartsite/task-api/internal/platform/logger"
	"github.com/smartsite/task-api/internal/store"
)

// PostgresTaskHistoryStore implements the store.TaskHistoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskHistoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskHistoryStore creates a new PostgreSQL implementation of the TaskHistoryStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTaskHistoryStore(db store.DBTX, logger *slog.Logger) *PostgresTaskHistoryStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskHistoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_history_store")),
	}
}

// Ensure PostgresTaskHistoryStore implements store.TaskHistoryStore interface
var _ store.TaskHistoryStore = (*PostgresTaskHistoryStore)(nil)

// WithTx implements store.TaskHistoryStore.WithTx
func (s *PostgresTaskHistoryStore) WithTx(tx *sql.Tx) store.TaskHistoryStore {
	return &PostgresTaskHistoryStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskHistoryStore.Create
func (s *PostgresTaskHistoryStore) Create(ctx context.Context, history *domain.TaskHistory) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := history.Validate(); err != nil {
		log.Warn("task history validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", history.TaskID.String()))
		return err
	}

	oldValue, err := jsonParam(history.OldValue)
	if err != nil {
		return err
	}
	newValue, err := jsonParam(history.NewValue)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO task_history (id, task_id, action, old_value, new_value, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		history.ID,
		history.TaskID,
		string(history.Action),
		oldValue,
		newValue,
		history.ChangedBy,
		history.ChangedAt,
	)
	if err != nil {
		log.Error("failed to create task history",
			slog.String("error", err.Error()),
			slog.String("task_id", history.TaskID.String()),
			slog.String("action", string(history.Action)))
		return store.NewStoreError("task_history", "create", "failed to insert history", MapError(err))
	}

	log.Debug("task history recorded",
		slog.String("task_id", history.TaskID.String()),
		slog.String("action", string(history.Action)),
		slog.String("changed_by", history.ChangedBy))
	return nil
}

// ListByTaskID implements store.TaskHistoryStore.ListByTaskID
func (s *PostgresTaskHistoryStore) ListByTaskID(
	ctx context.Context,
	taskID uuid.UUID,
) ([]*domain.TaskHistory, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, task_id, action, old_value, new_value, changed_by, changed_at
		FROM task_history
		WHERE task_id = $1
		ORDER BY changed_at DESC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, taskID)
	if err != nil {
		log.Error("failed to query task history",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, store.NewStoreError("task_history", "list", "failed to query history", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	records := []*domain.TaskHistory{}
	for rows.Next() {
		var (
			h        domain.TaskHistory
			action   string
			oldValue []byte
			newValue []byte
		)
		if err := rows.Scan(
			&h.ID,
			&h.TaskID,
			&action,
			&oldValue,
			&newValue,
			&h.ChangedBy,
			&h.ChangedAt,
		); err != nil {
			log.Error("failed to scan task history row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("task_history", "list", "failed to scan history", err)
		}

		h.Action = domain.HistoryAction(action)
		h.ChangedAt = h.ChangedAt.UTC()
		if err := decodeJSON(oldValue, &h.OldValue); err != nil {
			return nil, err
		}
		if err := decodeJSON(newValue, &h.NewValue); err != nil {
			return nil, err
		}

		records = append(records, &h)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task_history", "list", "failed to read history", err)
	}

	return records, nil
}
