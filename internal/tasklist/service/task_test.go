package service

import (
	"context"
	"testing"
	"time"

	"github.com/tidylabs/tasklist/internal/tasklist/store"
	"github.com/stretchr/testify/require"
)

func TestAddTaskDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	todos := &TodoService{Store: st}
	tasks := &TaskService{Store: st}
	user := createTestUser(t, st, "dave")

	list, err := todos.CreateList(ctx, "Inbox", user.ID)
	require.NoError(t, err)

	deadline := time.Now().In(time.FixedZone("UTC-3", -3*60*60)).Add(48 * time.Hour)
	task, err := tasks.AddTask(ctx, list.ID, "Milk", "two liters", timePtr(deadline))
	require.NoError(t, err)
	require.Equal(t, time.UTC, task.DeadlineDate.Location())

	got, err := tasks.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.False(t, got.IsComplete)
	require.Nil(t, got.CompletedAt)
	require.NotNil(t, got.DeadlineDate)
	require.True(t, got.DeadlineDate.Equal(deadline))
	require.Equal(t, "two liters", got.Description)
}

func TestAddTaskValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	tasks := &TaskService{Store: st}

	_, err := tasks.AddTask(ctx, "some-list", "  ", "", nil)
	require.ErrorIs(t, err, ErrTitleRequired)

	_, err = tasks.AddTask(ctx, "missing-list", "Milk", "", nil)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCompletedAtDerivation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	todos := &TodoService{Store: st}
	user := createTestUser(t, st, "erin")

	list, err := todos.CreateList(ctx, "Derivation", user.ID)
	require.NoError(t, err)

	t1 := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(2 * time.Hour)
	clock := t1
	tasks := &TaskService{Store: st, Now: func() time.Time { return clock }}

	task, err := tasks.AddTask(ctx, list.ID, "Write report", "", nil)
	require.NoError(t, err)
	require.Nil(t, task.CompletedAt)

	// Toggling to complete stamps completed_at with the current time.
	task, err = tasks.ToggleCompletion(ctx, task.ID)
	require.NoError(t, err)
	require.True(t, task.IsComplete)
	require.NotNil(t, task.CompletedAt)
	require.True(t, task.CompletedAt.Equal(t1))

	// An unrelated edit later re-derives but must not move the timestamp.
	clock = t2
	task, err = tasks.UpdateTask(ctx, task.ID, "Write the report", "with charts")
	require.NoError(t, err)
	require.True(t, task.IsComplete)
	require.NotNil(t, task.CompletedAt)
	require.True(t, task.CompletedAt.Equal(t1), "completed_at moved on unrelated edit")

	// Toggling back to incomplete clears it.
	task, err = tasks.ToggleCompletion(ctx, task.ID)
	require.NoError(t, err)
	require.False(t, task.IsComplete)
	require.Nil(t, task.CompletedAt)

	// And an edit while incomplete keeps it cleared.
	task, err = tasks.UpdateTask(ctx, task.ID, "Write the report", "")
	require.NoError(t, err)
	require.Nil(t, task.CompletedAt)

	// The persisted row agrees with the returned value.
	got, err := tasks.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.False(t, got.IsComplete)
	require.Nil(t, got.CompletedAt)
}

func TestTaskOperationsReportNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	tasks := &TaskService{Store: st}

	_, err := tasks.GetTask(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = tasks.ToggleCompletion(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = tasks.UpdateTask(ctx, "missing", "title", "desc")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, tasks.DeleteTask(ctx, "missing"), store.ErrNotFound)
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	todos := &TodoService{Store: st}
	tasks := &TaskService{Store: st}
	user := createTestUser(t, st, "frank")

	list, err := todos.CreateList(ctx, "Cleanup", user.ID)
	require.NoError(t, err)

	task, err := tasks.AddTask(ctx, list.ID, "old chore", "", nil)
	require.NoError(t, err)

	require.NoError(t, tasks.DeleteTask(ctx, task.ID))
	_, err = tasks.GetTask(ctx, task.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	counts, err := todos.CountTasks(ctx, list.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, counts.Total)
}
