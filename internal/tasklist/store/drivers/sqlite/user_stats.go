package sqlite

import (
	"context"
	"time"

	"github.com/tidylabs/tasklist/internal/tasklist/domain"
)

type userStatsRepo struct {
	db dbtx
}

func (r *userStatsRepo) GetStatsByUserID(ctx context.Context, userID string) (domain.UserStats, error) {
	var s domain.UserStats
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, total_lists, total_tasks, active_tasks, completed_tasks,
		       incomplete_tasks, completion_percentage, updated_at
		FROM user_stats WHERE user_id = ?`, userID,
	).Scan(&s.UserID, &s.TotalLists, &s.TotalTasks, &s.ActiveTasks, &s.CompletedTasks,
		&s.IncompleteTasks, &s.CompletionPercentage, &s.UpdatedAt)
	if err != nil {
		return domain.UserStats{}, mapNotFound(err)
	}
	return s, nil
}

func (r *userStatsRepo) UpsertStats(ctx context.Context, stats domain.UserStats) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_stats (user_id, total_lists, total_tasks, active_tasks,
		                        completed_tasks, incomplete_tasks, completion_percentage, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			total_lists = excluded.total_lists,
			total_tasks = excluded.total_tasks,
			active_tasks = excluded.active_tasks,
			completed_tasks = excluded.completed_tasks,
			incomplete_tasks = excluded.incomplete_tasks,
			completion_percentage = excluded.completion_percentage,
			updated_at = excluded.updated_at`,
		stats.UserID, stats.TotalLists, stats.TotalTasks, stats.ActiveTasks,
		stats.CompletedTasks, stats.IncompleteTasks, stats.CompletionPercentage, stats.UpdatedAt,
	)
	return err
}

func (r *userStatsRepo) CountListsByUser(ctx context.Context, userID string) (int64, error) {
	return r.countOne(ctx,
		`SELECT COUNT(*) FROM todo_lists WHERE user_id = ?`, userID)
}

func (r *userStatsRepo) CountTasksByUser(ctx context.Context, userID string) (int64, error) {
	return r.countOne(ctx, `
		SELECT COUNT(*)
		FROM tasks t JOIN todo_lists l ON l.id = t.todo_id
		WHERE l.user_id = ?`, userID)
}

func (r *userStatsRepo) CountActiveTasksByUser(ctx context.Context, userID string, now time.Time) (int64, error) {
	return r.countOne(ctx, `
		SELECT COUNT(*)
		FROM tasks t JOIN todo_lists l ON l.id = t.todo_id
		WHERE l.user_id = ? AND NOT t.is_complete
		  AND t.deadline_date IS NOT NULL AND t.deadline_date > ?`, userID, now)
}

func (r *userStatsRepo) CountCompletedTasksByUser(ctx context.Context, userID string) (int64, error) {
	return r.countOne(ctx, `
		SELECT COUNT(*)
		FROM tasks t JOIN todo_lists l ON l.id = t.todo_id
		WHERE l.user_id = ? AND t.is_complete`, userID)
}

func (r *userStatsRepo) CountOverdueTasksByUser(ctx context.Context, userID string, now time.Time) (int64, error) {
	return r.countOne(ctx, `
		SELECT COUNT(*)
		FROM tasks t JOIN todo_lists l ON l.id = t.todo_id
		WHERE l.user_id = ? AND NOT t.is_complete
		  AND t.deadline_date IS NOT NULL AND t.deadline_date < ?`, userID, now)
}

func (r *userStatsRepo) countOne(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
