package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// IsValid reports whether s is a known task status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

// Category is the triage bucket a task is sorted into.
type Category string

// Possible category values
const (
	CategoryScheduling Category = "scheduling"
	CategoryTechnical  Category = "technical"
	CategoryFinance    Category = "finance"
	CategoryGeneral    Category = "general"
)

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	switch c {
	case CategoryScheduling, CategoryTechnical, CategoryFinance, CategoryGeneral:
		return true
	default:
		return false
	}
}

// Priority is the urgency assigned to a task.
type Priority string

// Possible priority values
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// SystemActor is recorded as the author of a change when no caller identity
// is known.
const SystemActor = "system"

// Task is a unit of work tracked by the system.
// Category and Priority are nullable: they are filled in by classification
// on create, and a caller may later clear them.
type Task struct {
	ID                uuid.UUID      `json:"id"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Category          *Category      `json:"category"`
	Priority          *Priority      `json:"priority"`
	Status            TaskStatus     `json:"status"`
	AssignedTo        *string        `json:"assigned_to"`
	DueDate           *time.Time     `json:"due_date"`
	ExtractedEntities map[string]any `json:"extracted_entities"`
	SuggestedActions  []string       `json:"suggested_actions"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// TaskDraft carries the caller-supplied fields of a new task.
type TaskDraft struct {
	Title       string
	Description string
	AssignedTo  *string
	DueDate     *time.Time
}

// NewTask creates a pending Task from a draft and the classification of its
// description. It generates a new ID and stamps both timestamps.
// Returns an error if validation fails.
func NewTask(draft TaskDraft, category Category, priority Priority, actions []string) (*Task, error) {
	now := time.Now().UTC()

	if actions == nil {
		actions = []string{}
	}

	var dueDate *time.Time
	if draft.DueDate != nil {
		d := draft.DueDate.UTC()
		dueDate = &d
	}

	task := &Task{
		ID:                uuid.New(),
		Title:             draft.Title,
		Description:       draft.Description,
		Category:          &category,
		Priority:          &priority,
		Status:            TaskStatusPending,
		AssignedTo:        draft.AssignedTo,
		DueDate:           dueDate,
		ExtractedEntities: map[string]any{},
		SuggestedActions:  actions,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}

	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyContent)
	}

	if strings.TrimSpace(t.Description) == "" {
		return NewValidationError("description", "cannot be empty", ErrEmptyContent)
	}

	if !t.Status.IsValid() {
		return NewValidationError("status", "is not a known status", ErrInvalidTaskStatus)
	}

	if t.Category != nil && !t.Category.IsValid() {
		return NewValidationError("category", "is not a known category", ErrInvalidCategory)
	}

	if t.Priority != nil && !t.Priority.IsValid() {
		return NewValidationError("priority", "is not a known priority", ErrInvalidPriority)
	}

	return nil
}

// Snapshot returns the current values of every field a caller can update,
// in the shape stored as a history record's old value.
func (t *Task) Snapshot() map[string]any {
	snapshot := map[string]any{
		"title":       t.Title,
		"description": t.Description,
		"status":      string(t.Status),
		"category":    nil,
		"priority":    nil,
		"assigned_to": nil,
		"due_date":    nil,
	}

	if t.Category != nil {
		snapshot["category"] = string(*t.Category)
	}
	if t.Priority != nil {
		snapshot["priority"] = string(*t.Priority)
	}
	if t.AssignedTo != nil {
		snapshot["assigned_to"] = *t.AssignedTo
	}
	if t.DueDate != nil {
		snapshot["due_date"] = t.DueDate.UTC().Format(time.RFC3339Nano)
	}

	return snapshot
}
