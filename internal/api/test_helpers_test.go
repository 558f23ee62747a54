package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/smartsite/task-api/internal/api/shared"
	"github.com/smartsite/task-api/internal/domain"
	"github.com/smartsite/task-api/internal/service"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc service.TaskService) http.Handler {
	h := NewTaskHandler(svc, nil)
	r := chi.NewRouter()
	r.Route("/api/tasks", func(r chi.Router) {
		r.Post("/", h.CreateTask)
		r.Get("/", h.ListTasks)
		r.Get("/{id}", h.GetTask)
		r.Patch("/{id}", h.UpdateTask)
		r.Delete("/{id}", h.DeleteTask)
		r.Get("/{id}/history", h.GetTaskHistory)
	})
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = req.WithContext(shared.SetTraceID(req.Context()))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func sampleTask(t *testing.T, title, description string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(
		domain.TaskDraft{Title: title, Description: description},
		domain.CategoryScheduling,
		domain.PriorityHigh,
		[]string{"Block calendar", "Send invite"},
	)
	require.NoError(t, err)
	return task
}
