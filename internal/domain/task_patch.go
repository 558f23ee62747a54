package domain

import (
	"strings"
	"time"
)

// TaskPatch is a partial update of a Task. Only fields that are Set are
// applied; a Set field that is Null clears a nullable column.
type TaskPatch struct {
	Title       Optional[string]
	Description Optional[string]
	Status      Optional[TaskStatus]
	Category    Optional[Category]
	Priority    Optional[Priority]
	AssignedTo  Optional[string]
	DueDate     Optional[time.Time]
}

// Validate checks the supplied fields.
// Title, description and status cannot be cleared.
func (p TaskPatch) Validate() error {
	if p.Title.Set && (p.Title.Null || strings.TrimSpace(p.Title.Value) == "") {
		return NewValidationError("title", "cannot be empty", ErrEmptyContent)
	}

	if p.Description.Set && (p.Description.Null || strings.TrimSpace(p.Description.Value) == "") {
		return NewValidationError("description", "cannot be empty", ErrEmptyContent)
	}

	if p.Status.Set && (p.Status.Null || !p.Status.Value.IsValid()) {
		return NewValidationError("status", "is not a known status", ErrInvalidTaskStatus)
	}

	if p.Category.Set && !p.Category.Null && !p.Category.Value.IsValid() {
		return NewValidationError("category", "is not a known category", ErrInvalidCategory)
	}

	if p.Priority.Set && !p.Priority.Null && !p.Priority.Value.IsValid() {
		return NewValidationError("priority", "is not a known priority", ErrInvalidPriority)
	}

	return nil
}

// Changes returns exactly the supplied fields, keyed by their JSON names,
// in the shape stored as a history record's new value.
func (p TaskPatch) Changes() map[string]any {
	changes := map[string]any{}

	if p.Title.Set {
		changes["title"] = p.Title.Value
	}
	if p.Description.Set {
		changes["description"] = p.Description.Value
	}
	if p.Status.Set {
		changes["status"] = string(p.Status.Value)
	}
	if p.Category.Set {
		changes["category"] = nullableString(p.Category.Null, string(p.Category.Value))
	}
	if p.Priority.Set {
		changes["priority"] = nullableString(p.Priority.Null, string(p.Priority.Value))
	}
	if p.AssignedTo.Set {
		changes["assigned_to"] = nullableString(p.AssignedTo.Null, p.AssignedTo.Value)
	}
	if p.DueDate.Set {
		if p.DueDate.Null {
			changes["due_date"] = nil
		} else {
			changes["due_date"] = p.DueDate.Value.UTC().Format(time.RFC3339Nano)
		}
	}

	return changes
}

// ApplyTo copies the supplied fields onto t and stamps UpdatedAt with now.
// Classification is deliberately left alone: changing the description does
// not re-derive category, priority or suggested actions.
func (p TaskPatch) ApplyTo(t *Task, now time.Time) {
	if p.Title.Set {
		t.Title = p.Title.Value
	}
	if p.Description.Set {
		t.Description = p.Description.Value
	}
	if p.Status.Set {
		t.Status = p.Status.Value
	}
	if p.Category.Set {
		t.Category = p.Category.Ptr()
	}
	if p.Priority.Set {
		t.Priority = p.Priority.Ptr()
	}
	if p.AssignedTo.Set {
		t.AssignedTo = p.AssignedTo.Ptr()
	}
	if p.DueDate.Set {
		t.DueDate = p.DueDate.Ptr()
		if t.DueDate != nil {
			d := t.DueDate.UTC()
			t.DueDate = &d
		}
	}

	t.UpdatedAt = now.UTC()
}

func nullableString(isNull bool, v string) any {
	if isNull {
		return nil
	}
	return v
}
