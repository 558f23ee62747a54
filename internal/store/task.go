package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/smartsite/task-api/internal/domain"
)

// DefaultListLimit is the page size used when a caller does not supply one.
const DefaultListLimit = 10

// MaxListLimit caps the page size of a single List call.
const MaxListLimit = 100

// TaskFilter narrows a task listing. Nil fields do not filter.
type TaskFilter struct {
	Status   *domain.TaskStatus
	Category *domain.Category
	Priority *domain.Priority
	Limit    int
	Offset   int
}

// Normalize clamps Limit and Offset into range, applying the default limit.
func (f TaskFilter) Normalize() TaskFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// List returns tasks matching the filter, newest first.
	// Returns an empty slice if no tasks match.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// Update saves every mutable field of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) TaskStore
}
