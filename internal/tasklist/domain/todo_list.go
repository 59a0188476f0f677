package domain

import "time"

// TodoList is a named container of tasks owned by exactly one user. Titles
// are not unique, even within one owner. Deleting a list deletes all of its
// tasks in the same transaction.
type TodoList struct {
	ID        string
	UserID    string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskCounts is the per-list aggregate returned by CountTasks.
// Total == Active + Completed always holds.
type TaskCounts struct {
	Total     int64
	Active    int64
	Completed int64
}
