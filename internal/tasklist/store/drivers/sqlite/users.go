package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/tidylabs/tasklist/internal/tasklist/domain"
	"github.com/tidylabs/tasklist/internal/tasklist/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, username, password_hash, notification_settings, created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	settings, err := marshalSettings(u.NotificationSettings)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, username, password_hash, notification_settings, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Username, u.PasswordHash, settings, u.CreatedAt, u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, updatedAt, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) UpdateNotificationSettings(ctx context.Context, userID string, settings map[string]any, updatedAt time.Time) error {
	raw, err := marshalSettings(settings)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET notification_settings = ?, updated_at = ? WHERE id = ?`,
		raw, updatedAt, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var settings string
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &settings, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.NotificationSettings, err = unmarshalSettings(settings)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// requireRow maps a zero-rows-affected update/delete to ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
