//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/smartsite/task-api/internal/domain"
	"github.com/smartsite/task-api/internal/platform/postgres"
	"github.com/smartsite/task-api/internal/store"
	"github.com/smartsite/task-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestTask(
	t *testing.T,
	s store.TaskStore,
	title string,
	category domain.Category,
	priority domain.Priority,
) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(
		domain.TaskDraft{Title: title, Description: title + " description"},
		category,
		priority,
		[]string{"Review"},
	)
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), task))
	return task
}

func TestPostgresTaskStore_Integration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		s := postgres.NewPostgresTaskStore(tx, nil)

		task := createTestTask(t, s, "Schedule review", domain.CategoryScheduling, domain.PriorityHigh)

		got, err := s.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.Title, got.Title)
		assert.Equal(t, domain.TaskStatusPending, got.Status)
		assert.Equal(t, []string{"Review"}, got.SuggestedActions)
		assert.Empty(t, got.ExtractedEntities)

		assignee := "carol"
		due := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
		got.AssignedTo = &assignee
		got.DueDate = &due
		got.Category = nil
		got.Status = domain.TaskStatusCompleted
		got.UpdatedAt = time.Now().UTC()
		require.NoError(t, s.Update(ctx, got))

		reloaded, err := s.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Nil(t, reloaded.Category)
		require.NotNil(t, reloaded.AssignedTo)
		assert.Equal(t, "carol", *reloaded.AssignedTo)
		require.NotNil(t, reloaded.DueDate)
		assert.True(t, due.Equal(*reloaded.DueDate))
		assert.Equal(t, domain.TaskStatusCompleted, reloaded.Status)

		require.NoError(t, s.Delete(ctx, task.ID))
		_, err = s.GetByID(ctx, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.ErrorIs(t, s.Delete(ctx, task.ID), store.ErrTaskNotFound)
	})
}

func TestPostgresTaskStore_ListIntegration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		s := postgres.NewPostgresTaskStore(tx, nil)

		_, err := tx.ExecContext(ctx, "DELETE FROM tasks")
		require.NoError(t, err)

		first := createTestTask(t, s, "First", domain.CategoryFinance, domain.PriorityLow)
		second := createTestTask(t, s, "Second", domain.CategoryFinance, domain.PriorityHigh)
		createTestTask(t, s, "Third", domain.CategoryTechnical, domain.PriorityHigh)

		finance := domain.CategoryFinance
		tasks, err := s.List(ctx, store.TaskFilter{Category: &finance})
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		ids := []uuid.UUID{tasks[0].ID, tasks[1].ID}
		assert.ElementsMatch(t, []uuid.UUID{first.ID, second.ID}, ids)

		high := domain.PriorityHigh
		tasks, err = s.List(ctx, store.TaskFilter{Category: &finance, Priority: &high})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, second.ID, tasks[0].ID)

		page, err := s.List(ctx, store.TaskFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Len(t, page, 1)

		empty, err := s.List(ctx, store.TaskFilter{Offset: 50})
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}

func TestPostgresTaskHistoryStore_Integration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		tasks := postgres.NewPostgresTaskStore(tx, nil)
		history := postgres.NewPostgresTaskHistoryStore(tx, nil)

		task := createTestTask(t, tasks, "Audit me", domain.CategoryGeneral, domain.PriorityMedium)

		created, err := domain.NewTaskHistory(task.ID, domain.HistoryActionCreated,
			nil, task.Snapshot(), "alice")
		require.NoError(t, err)
		require.NoError(t, history.Create(ctx, created))

		require.NoError(t, tasks.Delete(ctx, task.ID))

		deleted, err := domain.NewTaskHistory(task.ID, domain.HistoryActionDeleted,
			task.Snapshot(), nil, "")
		require.NoError(t, err)
		deleted.ChangedAt = created.ChangedAt.Add(time.Second)
		require.NoError(t, history.Create(ctx, deleted))

		records, err := history.ListByTaskID(ctx, task.ID)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, domain.HistoryActionDeleted, records[0].Action)
		assert.Equal(t, domain.SystemActor, records[0].ChangedBy)
		assert.Nil(t, records[0].NewValue)
		assert.Equal(t, "Audit me", records[0].OldValue["title"])
		assert.Equal(t, domain.HistoryActionCreated, records[1].Action)
		assert.Equal(t, "alice", records[1].ChangedBy)

		none, err := history.ListByTaskID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}
