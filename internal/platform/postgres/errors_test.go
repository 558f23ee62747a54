package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/smartsite/task-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: uniqueViolationCode}, store.ErrDuplicate},
		{
			"foreign key violation",
			&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "fk"},
			store.ErrInvalidEntity,
		},
		{
			"check violation",
			&pgconn.PgError{Code: checkViolationCode, ConstraintName: "tasks_status_check"},
			store.ErrInvalidEntity,
		},
		{
			"not null violation",
			&pgconn.PgError{Code: notNullViolationCode, ColumnName: "title"},
			store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := MapError(tt.err)
			assert.ErrorIs(t, mapped, tt.target)
		})
	}

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, MapError(nil))
	})

	t.Run("unmapped error passes through", func(t *testing.T) {
		orig := errors.New("connection reset")
		assert.Equal(t, orig, MapError(orig))
	})
}

func TestCheckRowsAffected(t *testing.T) {
	assert.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), store.ErrTaskNotFound))
	assert.ErrorIs(t,
		CheckRowsAffected(sqlmock.NewResult(0, 0), store.ErrTaskNotFound),
		store.ErrTaskNotFound)
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), nil), store.ErrNotFound)
	assert.Error(t, CheckRowsAffected(nil, nil))
	assert.Error(t, CheckRowsAffected(
		sqlmock.NewErrorResult(errors.New("driver does not support")), nil))
}
