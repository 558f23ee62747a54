package api

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/smartsite/task-api/internal/domain"
)

// maxFieldLength matches the VARCHAR(255) title and assigned_to columns,
// counted in characters.
const maxFieldLength = 255

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string            `json:"title"                 validate:"required,max=255"`
	Description string            `json:"description"           validate:"required"`
	AssignedTo  *string           `json:"assigned_to,omitempty" validate:"omitempty,max=255"`
	DueDate     *domain.Timestamp `json:"due_date,omitempty"`
}

// Validate rejects titles and descriptions that are only whitespace.
func (r CreateTaskRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return domain.NewValidationError("title", "cannot be empty", domain.ErrEmptyContent)
	}
	if strings.TrimSpace(r.Description) == "" {
		return domain.NewValidationError("description", "cannot be empty", domain.ErrEmptyContent)
	}
	return nil
}

// ToDraft converts the request to the service input.
func (r CreateTaskRequest) ToDraft() domain.TaskDraft {
	return domain.TaskDraft{
		Title:       r.Title,
		Description: r.Description,
		AssignedTo:  r.AssignedTo,
		DueDate:     r.DueDate.TimePtr(),
	}
}

// UpdateTaskRequest defines the payload for a partial task update.
// Absent keys are left alone; an explicit null clears a nullable field.
type UpdateTaskRequest struct {
	Title       domain.Optional[string]            `json:"title"`
	Description domain.Optional[string]            `json:"description"`
	Status      domain.Optional[domain.TaskStatus] `json:"status"`
	Category    domain.Optional[domain.Category]   `json:"category"`
	Priority    domain.Optional[domain.Priority]   `json:"priority"`
	AssignedTo  domain.Optional[string]            `json:"assigned_to"`
	DueDate     domain.Optional[domain.Timestamp]  `json:"due_date"`
}

// Validate checks the supplied fields.
func (r UpdateTaskRequest) Validate() error {
	if r.Title.Set && utf8.RuneCountInString(r.Title.Value) > maxFieldLength {
		return domain.NewValidationError("title", "is too long", domain.ErrValidation)
	}
	if r.AssignedTo.Set && utf8.RuneCountInString(r.AssignedTo.Value) > maxFieldLength {
		return domain.NewValidationError("assigned_to", "is too long", domain.ErrValidation)
	}
	return r.ToPatch().Validate()
}

// ToPatch converts the request to the service input.
func (r UpdateTaskRequest) ToPatch() domain.TaskPatch {
	dueDate := domain.Optional[time.Time]{Set: r.DueDate.Set, Null: r.DueDate.Null}
	if r.DueDate.Set && !r.DueDate.Null {
		dueDate.Value = r.DueDate.Value.Time
	}

	return domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Category:    r.Category,
		Priority:    r.Priority,
		AssignedTo:  r.AssignedTo,
		DueDate:     dueDate,
	}
}

// TaskResponse is the JSON shape of a task.
type TaskResponse struct {
	ID                uuid.UUID      `json:"id"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Category          *string        `json:"category"`
	Priority          *string        `json:"priority"`
	Status            string         `json:"status"`
	AssignedTo        *string        `json:"assigned_to"`
	DueDate           *time.Time     `json:"due_date"`
	ExtractedEntities map[string]any `json:"extracted_entities"`
	SuggestedActions  []string       `json:"suggested_actions"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// HistoryResponse is the JSON shape of a task history record.
type HistoryResponse struct {
	ID        uuid.UUID      `json:"id"`
	TaskID    uuid.UUID      `json:"task_id"`
	Action    string         `json:"action"`
	OldValue  map[string]any `json:"old_value"`
	NewValue  map[string]any `json:"new_value"`
	ChangedBy string         `json:"changed_by"`
	ChangedAt time.Time      `json:"changed_at"`
}

// TaskDetailResponse is returned by GET /api/tasks/{id}.
type TaskDetailResponse struct {
	Task    TaskResponse      `json:"task"`
	History []HistoryResponse `json:"history"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusResponse is returned by the root liveness endpoint.
type StatusResponse struct {
	Status string `json:"status"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:                task.ID,
		Title:             task.Title,
		Description:       task.Description,
		Status:            string(task.Status),
		AssignedTo:        task.AssignedTo,
		DueDate:           task.DueDate,
		ExtractedEntities: task.ExtractedEntities,
		SuggestedActions:  task.SuggestedActions,
		CreatedAt:         task.CreatedAt,
		UpdatedAt:         task.UpdatedAt,
	}

	if task.Category != nil {
		c := string(*task.Category)
		resp.Category = &c
	}
	if task.Priority != nil {
		p := string(*task.Priority)
		resp.Priority = &p
	}
	if resp.ExtractedEntities == nil {
		resp.ExtractedEntities = map[string]any{}
	}
	if resp.SuggestedActions == nil {
		resp.SuggestedActions = []string{}
	}

	return resp
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	resp := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		resp = append(resp, taskToResponse(task))
	}
	return resp
}

func historyToResponse(records []*domain.TaskHistory) []HistoryResponse {
	resp := make([]HistoryResponse, 0, len(records))
	for _, h := range records {
		resp = append(resp, HistoryResponse{
			ID:        h.ID,
			TaskID:    h.TaskID,
			Action:    string(h.Action),
			OldValue:  h.OldValue,
			NewValue:  h.NewValue,
			ChangedBy: h.ChangedBy,
			ChangedAt: h.ChangedAt,
		})
	}
	return resp
}
