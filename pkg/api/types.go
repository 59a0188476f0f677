// Package api holds the request and response types of the tasklist HTTP API.
// Handlers and client code share these so the wire shapes live in one place.
package api

import "time"

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse confirms the created account.
type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// LoginRequest exchanges credentials for a session token.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer session token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ChangePasswordRequest rotates the account password. CurrentPassword must
// verify against the stored hash.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UpdateNotificationsRequest replaces the notification settings mapping.
type UpdateNotificationsRequest struct {
	Settings map[string]any `json:"settings"`
}

// UserResponse is the public shape of an account.
type UserResponse struct {
	ID                   string         `json:"id"`
	Email                string         `json:"email"`
	Username             string         `json:"username"`
	NotificationSettings map[string]any `json:"notification_settings"`
	CreatedAt            time.Time      `json:"created_at"`
}

// StatsResponse is the aggregate snapshot for one user.
type StatsResponse struct {
	TotalLists           int64     `json:"total_lists"`
	TotalTasks           int64     `json:"total_tasks"`
	ActiveTasks          int64     `json:"active_tasks"`
	CompletedTasks       int64     `json:"completed_tasks"`
	IncompleteTasks      int64     `json:"incomplete_tasks"`
	CompletionPercentage float64   `json:"completion_percentage"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ProfileResponse bundles the account with a freshly recomputed snapshot.
type ProfileResponse struct {
	User  UserResponse  `json:"user"`
	Stats StatsResponse `json:"stats"`
}

// CreateListRequest names a new list. RenameListRequest reuses the shape.
type CreateListRequest struct {
	Title string `json:"title"`
}

// RenameListRequest overwrites a list title.
type RenameListRequest struct {
	Title string `json:"title"`
}

// ListResponse is one todo list, optionally with its task counts.
type ListResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Counts    *CountsResponse `json:"counts,omitempty"`
}

// CountsResponse is the per-list task aggregate; total = active + completed.
type CountsResponse struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
}

// ListsResponse wraps the list collection.
type ListsResponse struct {
	Lists []ListResponse `json:"lists"`
}

// CreateTaskRequest adds a task to a list. DeadlineDate is optional.
type CreateTaskRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	DeadlineDate *time.Time `json:"deadline_date,omitempty"`
}

// UpdateTaskRequest overwrites a task's title and description.
type UpdateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TaskResponse is one task. CompletedAt is present only while the task is
// complete.
type TaskResponse struct {
	ID           string     `json:"id"`
	TodoID       string     `json:"todo_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	IsComplete   bool       `json:"is_complete"`
	CreatedAt    time.Time  `json:"created_at"`
	DeadlineDate *time.Time `json:"deadline_date,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// TasksResponse wraps a list's task collection.
type TasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
}
