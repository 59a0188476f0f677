package domain

import "time"

// UserStats is a denormalized snapshot of one user's aggregate counts. At
// most one row exists per user; it is overwritten in place on every refresh
// and keeps no history.
//
// ActiveTasks + IncompleteTasks + CompletedTasks does not have to equal
// TotalTasks: tasks without a deadline, or whose deadline is exactly the
// evaluation instant, fall in neither the active nor the overdue bucket.
type UserStats struct {
	UserID               string
	TotalLists           int64
	TotalTasks           int64
	ActiveTasks          int64 // incomplete, deadline strictly in the future
	CompletedTasks       int64
	IncompleteTasks      int64   // overdue: incomplete, deadline strictly in the past
	CompletionPercentage float64 // 0..100, rounded to 2 decimals
	UpdatedAt            time.Time
}
