package sqlite

import (
	"context"
	"database/sql"

	"github.com/tidylabs/tasklist/internal/tasklist/domain"
)

type tasksRepo struct {
	db dbtx
}

const taskColumns = `id, todo_id, title, description, is_complete, created_at, deadline_date, completed_at`

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, todo_id, title, description, is_complete, created_at, deadline_date, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.TodoID, t.Title, mapStringNull(t.Description), t.IsComplete,
		t.CreatedAt, mapOptionalTime(t.DeadlineDate), mapOptionalTime(t.CompletedAt),
	)
	return err
}

func (r *tasksRepo) GetTaskByID(ctx context.Context, id string) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row.Scan)
}

func (r *tasksRepo) ListByList(ctx context.Context, todoID string) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE todo_id = ? ORDER BY created_at, id`, todoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, is_complete = ?, completed_at = ?
		WHERE id = ?`,
		t.Title, mapStringNull(t.Description), t.IsComplete, mapOptionalTime(t.CompletedAt), t.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *tasksRepo) DeleteByList(ctx context.Context, todoID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE todo_id = ?`, todoID)
	return err
}

func (r *tasksRepo) CountByList(ctx context.Context, todoID string) (domain.TaskCounts, error) {
	var c domain.TaskCounts
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN is_complete THEN 1 ELSE 0 END), 0)
		FROM tasks WHERE todo_id = ?`, todoID,
	).Scan(&c.Total, &c.Completed)
	if err != nil {
		return domain.TaskCounts{}, err
	}
	c.Active = c.Total - c.Completed
	return c, nil
}

func scanTask(scan func(dest ...any) error) (domain.Task, error) {
	var t domain.Task
	var description sql.NullString
	var deadline, completed sql.NullTime

	err := scan(&t.ID, &t.TodoID, &t.Title, &description, &t.IsComplete,
		&t.CreatedAt, &deadline, &completed)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}

	t.Description = mapNullString(description)
	t.DeadlineDate = mapNullTimePtr(deadline)
	t.CompletedAt = mapNullTimePtr(completed)
	return t, nil
}
