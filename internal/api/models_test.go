package api

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/smartsite/task-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateTaskRequest_NullVersusAbsent(t *testing.T) {
	var req UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"assigned_to":null,"priority":"low"}`), &req))

	assert.True(t, req.AssignedTo.Set)
	assert.True(t, req.AssignedTo.Null)

	assert.True(t, req.Priority.Set)
	assert.False(t, req.Priority.Null)
	assert.Equal(t, domain.PriorityLow, req.Priority.Value)

	assert.False(t, req.Title.Set)
	assert.False(t, req.DueDate.Set)
	require.NoError(t, req.Validate())

	changes := req.ToPatch().Changes()
	assert.Equal(t, map[string]any{"assigned_to": nil, "priority": "low"}, changes)
}

func TestUpdateTaskRequest_Validate(t *testing.T) {
	long := strings.Repeat("a", 256)
	accented := strings.Repeat("é", 200)

	tests := []struct {
		name    string
		req     UpdateTaskRequest
		wantErr bool
	}{
		{"empty patch", UpdateTaskRequest{}, false},
		{"title", UpdateTaskRequest{Title: domain.Some("New")}, false},
		{"title too long", UpdateTaskRequest{Title: domain.Some(long)}, true},
		{"multibyte title within limit", UpdateTaskRequest{Title: domain.Some(accented)}, false},
		{"multibyte assignee within limit", UpdateTaskRequest{AssignedTo: domain.Some(accented)}, false},
		{"assignee too long", UpdateTaskRequest{AssignedTo: domain.Some(long)}, true},
		{"clear due date", UpdateTaskRequest{DueDate: domain.Null[domain.Timestamp]()}, false},
		{"clear description", UpdateTaskRequest{Description: domain.Null[string]()}, true},
		{"unknown priority", UpdateTaskRequest{Priority: domain.Some(domain.Priority("urgent"))}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateTaskRequest_ToDraft(t *testing.T) {
	due := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	assignee := "kim"
	req := CreateTaskRequest{
		Title:       "Invoice",
		Description: "pay the bill",
		AssignedTo:  &assignee,
		DueDate:     &domain.Timestamp{Time: due},
	}

	draft := req.ToDraft()
	assert.Equal(t, "Invoice", draft.Title)
	assert.Equal(t, "pay the bill", draft.Description)
	assert.Equal(t, &assignee, draft.AssignedTo)
	assert.Equal(t, &due, draft.DueDate)
}

func TestTaskToResponse_FillsEmptyCollections(t *testing.T) {
	task := sampleTask(t, "x", "y")
	task.ExtractedEntities = nil
	task.SuggestedActions = nil
	task.Category = nil

	resp := taskToResponse(task)
	assert.NotNil(t, resp.ExtractedEntities)
	assert.Equal(t, []string{}, resp.SuggestedActions)
	assert.Nil(t, resp.Category)
	require.NotNil(t, resp.Priority)
	assert.Equal(t, "high", *resp.Priority)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"category":null`)
	assert.Contains(t, string(body), `"suggested_actions":[]`)
	assert.Contains(t, string(body), `"extracted_entities":{}`)
}

func TestUpdateTaskRequest_DueDateFormats(t *testing.T) {
	var req UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"due_date":"2025-01-01T10:00:00"}`), &req))

	patch := req.ToPatch()
	require.True(t, patch.DueDate.Set)
	assert.False(t, patch.DueDate.Null)
	assert.Equal(t, time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), patch.DueDate.Value)

	req = UpdateTaskRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"due_date":null}`), &req))
	patch = req.ToPatch()
	assert.True(t, patch.DueDate.Set)
	assert.True(t, patch.DueDate.Null)
	assert.Nil(t, patch.DueDate.Ptr())
}
