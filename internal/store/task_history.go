package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/smartsite/task-api/internal/domain"
)

// TaskHistoryStore defines the interface for the append-only task audit log.
// There is deliberately no update or delete: records outlive the task they
// describe.
type TaskHistoryStore interface {
	// Create appends a history record.
	Create(ctx context.Context, history *domain.TaskHistory) error

	// ListByTaskID returns every record for the task, newest first.
	// Returns an empty slice if there are none.
	ListByTaskID(ctx context.Context, taskID uuid.UUID) ([]*domain.TaskHistory, error)

	// WithTx returns a new TaskHistoryStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskHistoryStore
}
