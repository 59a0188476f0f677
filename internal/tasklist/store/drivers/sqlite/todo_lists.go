package sqlite

import (
	"context"
	"time"

	"github.com/tidylabs/tasklist/internal/tasklist/domain"
)

type todoListsRepo struct {
	db dbtx
}

func (r *todoListsRepo) CreateList(ctx context.Context, l domain.TodoList) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO todo_lists (id, user_id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		l.ID, l.UserID, l.Title, l.CreatedAt, l.UpdatedAt,
	)
	return err
}

func (r *todoListsRepo) GetListByID(ctx context.Context, id string) (domain.TodoList, error) {
	var l domain.TodoList
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, created_at, updated_at
		FROM todo_lists WHERE id = ?`, id,
	).Scan(&l.ID, &l.UserID, &l.Title, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return domain.TodoList{}, mapNotFound(err)
	}
	return l, nil
}

func (r *todoListsRepo) ListByUser(ctx context.Context, userID string) ([]domain.TodoList, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, title, created_at, updated_at
		FROM todo_lists WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []domain.TodoList
	for rows.Next() {
		var l domain.TodoList
		if err := rows.Scan(&l.ID, &l.UserID, &l.Title, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

func (r *todoListsRepo) RenameList(ctx context.Context, id string, title string, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE todo_lists SET title = ?, updated_at = ? WHERE id = ?`,
		title, updatedAt, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *todoListsRepo) DeleteList(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todo_lists WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
