package service

import (
	"context"
	"testing"
	"time"

	"github.com/tidylabs/tasklist/internal/tasklist/store"
	"github.com/stretchr/testify/require"
)

func TestRefreshStatsUnknownUser(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	stats := &StatsService{Store: st}

	_, err := stats.RefreshStats(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRefreshStatsZeroTasks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	stats := &StatsService{Store: st}
	user := createTestUser(t, st, "gina")

	snapshot, err := stats.RefreshStats(ctx, user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, snapshot.TotalLists)
	require.EqualValues(t, 0, snapshot.TotalTasks)
	require.Zero(t, snapshot.CompletionPercentage)
}

func TestRefreshStatsQuarterComplete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	todos := &TodoService{Store: st}
	tasks := &TaskService{Store: st}
	stats := &StatsService{Store: st}
	user := createTestUser(t, st, "henry")

	list, err := todos.CreateList(ctx, "Quarter", user.ID)
	require.NoError(t, err)

	for _, title := range []string{"one", "two", "three", "four"} {
		_, err := tasks.AddTask(ctx, list.ID, title, "", nil)
		require.NoError(t, err)
	}
	all, err := todos.ListTasks(ctx, list.ID)
	require.NoError(t, err)
	_, err = tasks.ToggleCompletion(ctx, all[0].ID)
	require.NoError(t, err)

	snapshot, err := stats.RefreshStats(ctx, user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, snapshot.TotalLists)
	require.EqualValues(t, 4, snapshot.TotalTasks)
	require.EqualValues(t, 1, snapshot.CompletedTasks)
	require.InDelta(t, 25.0, snapshot.CompletionPercentage, 1e-9)
}

func TestRefreshStatsBucketsAcrossLists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	todos := &TodoService{Store: st}
	user := createTestUser(t, st, "iris")

	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	tasks := &TaskService{Store: st, Now: func() time.Time { return now }}
	stats := &StatsService{Store: st, Now: func() time.Time { return now }}

	// List A: one overdue incomplete, one future incomplete.
	listA, err := todos.CreateList(ctx, "A", user.ID)
	require.NoError(t, err)
	_, err = tasks.AddTask(ctx, listA.ID, "overdue", "", timePtr(now.Add(-24*time.Hour)))
	require.NoError(t, err)
	_, err = tasks.AddTask(ctx, listA.ID, "upcoming", "", timePtr(now.Add(24*time.Hour)))
	require.NoError(t, err)

	// List B: one completed task.
	listB, err := todos.CreateList(ctx, "B", user.ID)
	require.NoError(t, err)
	done, err := tasks.AddTask(ctx, listB.ID, "done", "", nil)
	require.NoError(t, err)
	_, err = tasks.ToggleCompletion(ctx, done.ID)
	require.NoError(t, err)

	snapshot, err := stats.RefreshStats(ctx, user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, snapshot.TotalLists)
	require.EqualValues(t, 3, snapshot.TotalTasks)
	require.EqualValues(t, 1, snapshot.ActiveTasks)
	require.EqualValues(t, 1, snapshot.IncompleteTasks)
	require.EqualValues(t, 1, snapshot.CompletedTasks)
	require.InDelta(t, 33.33, snapshot.CompletionPercentage, 1e-9)
}

func TestRefreshStatsDeadlineEdgeCases(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	todos := &TodoService{Store: st}
	user := createTestUser(t, st, "jack")

	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	tasks := &TaskService{Store: st, Now: func() time.Time { return now }}
	stats := &StatsService{Store: st, Now: func() time.Time { return now }}

	list, err := todos.CreateList(ctx, "Edges", user.ID)
	require.NoError(t, err)

	// No deadline: counted in totals, in neither bucket.
	_, err = tasks.AddTask(ctx, list.ID, "undated", "", nil)
	require.NoError(t, err)

	// Deadline exactly now: strictly-past/strictly-future both exclude it.
	_, err = tasks.AddTask(ctx, list.ID, "due right now", "", timePtr(now))
	require.NoError(t, err)

	snapshot, err := stats.RefreshStats(ctx, user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, snapshot.TotalTasks)
	require.EqualValues(t, 0, snapshot.ActiveTasks)
	require.EqualValues(t, 0, snapshot.IncompleteTasks)
	require.EqualValues(t, 0, snapshot.CompletedTasks)

	// The bucket split deliberately does not partition the totals.
	sum := snapshot.ActiveTasks + snapshot.IncompleteTasks + snapshot.CompletedTasks
	require.Less(t, sum, snapshot.TotalTasks)
}

func TestRefreshStatsBucketsDeadlinesInAnyZone(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	todos := &TodoService{Store: st}
	user := createTestUser(t, st, "nora")

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	tasks := &TaskService{Store: st, Now: func() time.Time { return now }}
	stats := &StatsService{Store: st, Now: func() time.Time { return now }}

	list, err := todos.CreateList(ctx, "Zones", user.ID)
	require.NoError(t, err)

	// Deadlines expressed in a client zone must classify by instant, not by
	// local wall-clock text.
	offset := time.FixedZone("UTC+5", 5*60*60)
	past := now.Add(-time.Hour).In(offset)
	future := now.Add(time.Hour).In(offset)

	_, err = tasks.AddTask(ctx, list.ID, "an hour overdue", "", &past)
	require.NoError(t, err)
	_, err = tasks.AddTask(ctx, list.ID, "an hour out", "", &future)
	require.NoError(t, err)

	snapshot, err := stats.RefreshStats(ctx, user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, snapshot.TotalTasks)
	require.EqualValues(t, 1, snapshot.IncompleteTasks, "one-hour-past deadline must be overdue")
	require.EqualValues(t, 1, snapshot.ActiveTasks, "one-hour-future deadline must be active")
}

func TestRefreshStatsIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	todos := &TodoService{Store: st}
	user := createTestUser(t, st, "kate")

	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	tasks := &TaskService{Store: st, Now: func() time.Time { return now }}
	stats := &StatsService{Store: st, Now: func() time.Time { return now }}

	list, err := todos.CreateList(ctx, "Stable", user.ID)
	require.NoError(t, err)
	task, err := tasks.AddTask(ctx, list.ID, "only", "", timePtr(now.Add(time.Hour)))
	require.NoError(t, err)
	_, err = tasks.ToggleCompletion(ctx, task.ID)
	require.NoError(t, err)

	first, err := stats.RefreshStats(ctx, user.ID)
	require.NoError(t, err)
	second, err := stats.RefreshStats(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, first, second)

	// The snapshot is a single overwritten row, not a ledger.
	stored, err := stats.GetStats(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, second.TotalTasks, stored.TotalTasks)
	require.Equal(t, second.CompletionPercentage, stored.CompletionPercentage)
}

func TestRefreshStatsOverwritesSnapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	todos := &TodoService{Store: st}
	tasks := &TaskService{Store: st}
	stats := &StatsService{Store: st}
	user := createTestUser(t, st, "liam")

	list, err := todos.CreateList(ctx, "Groceries", user.ID)
	require.NoError(t, err)
	task, err := tasks.AddTask(ctx, list.ID, "Milk", "", nil)
	require.NoError(t, err)

	snapshot, err := stats.RefreshStats(ctx, user.ID)
	require.NoError(t, err)
	require.Zero(t, snapshot.CompletionPercentage)

	_, err = tasks.ToggleCompletion(ctx, task.ID)
	require.NoError(t, err)

	snapshot, err = stats.RefreshStats(ctx, user.ID)
	require.NoError(t, err)
	require.InDelta(t, 100.0, snapshot.CompletionPercentage, 1e-9)
	require.EqualValues(t, 1, snapshot.CompletedTasks)
}

func TestCompletionPercentageRounding(t *testing.T) {
	t.Parallel()

	cases := []struct {
		completed, total int64
		want             float64
	}{
		{0, 0, 0},
		{0, 7, 0},
		{1, 4, 25},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{7, 7, 100},
	}
	for _, tc := range cases {
		require.InDelta(t, tc.want, completionPercentage(tc.completed, tc.total), 1e-9,
			"%d/%d", tc.completed, tc.total)
	}
}
