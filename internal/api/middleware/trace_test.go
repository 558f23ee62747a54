package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartsite/task-api/internal/api/shared"
	"github.com/smartsite/task-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	logBuf, base := logger.SetupTestLogger(t)

	var traceID string
	handler := TraceMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, traceID, 32)

	entries, err := logBuf.GetLogEntries()
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for _, entry := range entries {
		assert.Equal(t, traceID, entry["trace_id"])
	}
}
