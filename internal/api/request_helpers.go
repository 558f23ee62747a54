package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/smartsite/task-api/internal/domain"
	"github.com/smartsite/task-api/internal/store"
)

// getPathUUID extracts a UUID from the URL path parameters.
// Missing or malformed values are returned as validation errors.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// parseTaskFilter reads the list filters and paging parameters from the query string.
func parseTaskFilter(query url.Values) (store.TaskFilter, error) {
	filter := store.TaskFilter{Limit: store.DefaultListLimit}

	if v := query.Get("status"); v != "" {
		status := domain.TaskStatus(v)
		if !status.IsValid() {
			return filter, domain.NewValidationError("status", "is not a known status", domain.ErrInvalidTaskStatus)
		}
		filter.Status = &status
	}

	if v := query.Get("category"); v != "" {
		category := domain.Category(v)
		if !category.IsValid() {
			return filter, domain.NewValidationError("category", "is not a known category", domain.ErrInvalidCategory)
		}
		filter.Category = &category
	}

	if v := query.Get("priority"); v != "" {
		priority := domain.Priority(v)
		if !priority.IsValid() {
			return filter, domain.NewValidationError("priority", "is not a known priority", domain.ErrInvalidPriority)
		}
		filter.Priority = &priority
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > store.MaxListLimit {
			return filter, domain.NewValidationError("limit", "must be between 1 and 100", domain.ErrValidation)
		}
		filter.Limit = limit
	}

	if v := query.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return filter, domain.NewValidationError("offset", "must be a non-negative integer", domain.ErrValidation)
		}
		filter.Offset = offset
	}

	return filter, nil
}
