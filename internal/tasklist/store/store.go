package store

import (
	"context"
	"errors"
	"time"

	"github.com/tidylabs/tasklist/internal/tasklist/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and is the sole owner of entity lifetimes: services hold no
// state beyond a single in-flight operation.
type Store interface {
	Users() Users
	UserStats() UserStats
	TodoLists() TodoLists
	Tasks() Tasks

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to run multi-step operations that must be atomic
	// (e.g. the list/task cascade delete).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists if the username or email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// UpdatePasswordHash sets the password_hash (argon2id) and stamps
	// updated_at with the given time.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string, updatedAt time.Time) error

	// UpdateNotificationSettings replaces the notification_settings mapping
	// and stamps updated_at with the given time.
	UpdateNotificationSettings(ctx context.Context, userID string, settings map[string]any, updatedAt time.Time) error
}

type UserStats interface {
	// GetStatsByUserID returns the stats snapshot for a user.
	GetStatsByUserID(ctx context.Context, userID string) (domain.UserStats, error)

	// UpsertStats inserts the snapshot row for a user or overwrites all
	// fields of the existing one. No history is kept.
	UpsertStats(ctx context.Context, stats domain.UserStats) error

	// CountListsByUser returns the number of lists owned by a user.
	CountListsByUser(ctx context.Context, userID string) (int64, error)

	// CountTasksByUser returns the number of tasks across all of a user's
	// lists.
	CountTasksByUser(ctx context.Context, userID string) (int64, error)

	// CountActiveTasksByUser counts incomplete tasks whose deadline is
	// strictly after now.
	CountActiveTasksByUser(ctx context.Context, userID string, now time.Time) (int64, error)

	// CountCompletedTasksByUser counts tasks with is_complete set.
	CountCompletedTasksByUser(ctx context.Context, userID string) (int64, error)

	// CountOverdueTasksByUser counts incomplete tasks whose deadline is
	// strictly before now.
	CountOverdueTasksByUser(ctx context.Context, userID string, now time.Time) (int64, error)
}

type TodoLists interface {
	// CreateList inserts a new list. Titles are not unique.
	CreateList(ctx context.Context, l domain.TodoList) error

	// GetListByID returns a list by id.
	GetListByID(ctx context.Context, id string) (domain.TodoList, error)

	// ListByUser returns all lists owned by a user, oldest first.
	ListByUser(ctx context.Context, userID string) ([]domain.TodoList, error)

	// RenameList overwrites the title and stamps updated_at with the given
	// time. Returns ErrNotFound if no row matches.
	RenameList(ctx context.Context, id string, title string, updatedAt time.Time) error

	// DeleteList removes the list row. Task rows are removed explicitly by
	// the service inside the same transaction; the schema's ON DELETE
	// CASCADE is a declared backstop. Returns ErrNotFound if no row matches.
	DeleteList(ctx context.Context, id string) error
}

type Tasks interface {
	// CreateTask inserts a new task.
	CreateTask(ctx context.Context, t domain.Task) error

	// GetTaskByID returns a task by id.
	GetTaskByID(ctx context.Context, id string) (domain.Task, error)

	// ListByList returns all tasks of a list, oldest first.
	ListByList(ctx context.Context, todoID string) ([]domain.Task, error)

	// UpdateTask overwrites title, description, is_complete and completed_at.
	// Returns ErrNotFound if no row matches.
	UpdateTask(ctx context.Context, t domain.Task) error

	// DeleteTask removes the row. Returns ErrNotFound if no row matches.
	DeleteTask(ctx context.Context, id string) error

	// DeleteByList removes every task belonging to a list.
	DeleteByList(ctx context.Context, todoID string) error

	// CountByList returns total/active/completed counts for one list.
	CountByList(ctx context.Context, todoID string) (domain.TaskCounts, error)
}
