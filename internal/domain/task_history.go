package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// HistoryAction names the kind of mutation a history record describes.
type HistoryAction string

// Possible history actions
const (
	HistoryActionCreated HistoryAction = "created"
	HistoryActionUpdated HistoryAction = "updated"
	HistoryActionDeleted HistoryAction = "deleted"
)

// IsValid reports whether a is a known history action.
func (a HistoryAction) IsValid() bool {
	switch a {
	case HistoryActionCreated, HistoryActionUpdated, HistoryActionDeleted:
		return true
	default:
		return false
	}
}

// TaskHistory is an append-only audit record of one task mutation.
// OldValue and NewValue are snapshots of the fields involved and may be nil.
type TaskHistory struct {
	ID        uuid.UUID      `json:"id"`
	TaskID    uuid.UUID      `json:"task_id"`
	Action    HistoryAction  `json:"action"`
	OldValue  map[string]any `json:"old_value"`
	NewValue  map[string]any `json:"new_value"`
	ChangedBy string         `json:"changed_by"`
	ChangedAt time.Time      `json:"changed_at"`
}

// NewTaskHistory creates a history record for the given task and action.
// An empty changedBy is recorded as SystemActor.
func NewTaskHistory(
	taskID uuid.UUID,
	action HistoryAction,
	oldValue, newValue map[string]any,
	changedBy string,
) (*TaskHistory, error) {
	if strings.TrimSpace(changedBy) == "" {
		changedBy = SystemActor
	}

	history := &TaskHistory{
		ID:        uuid.New(),
		TaskID:    taskID,
		Action:    action,
		OldValue:  oldValue,
		NewValue:  newValue,
		ChangedBy: changedBy,
		ChangedAt: time.Now().UTC(),
	}

	if err := history.Validate(); err != nil {
		return nil, err
	}

	return history, nil
}

// Validate checks if the TaskHistory has valid data.
func (h *TaskHistory) Validate() error {
	if h.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}

	if h.TaskID == uuid.Nil {
		return NewValidationError("task_id", "cannot be empty", ErrInvalidID)
	}

	if !h.Action.IsValid() {
		return NewValidationError("action", "is not a known action", ErrInvalidHistoryAction)
	}

	if h.ChangedBy == "" {
		return NewValidationError("changed_by", "cannot be empty", ErrEmptyContent)
	}

	return nil
}
