package domain

import "time"

// Task is a unit of work belonging to one list.
//
// CompletedAt is derived, never set directly by callers: every mutation path
// runs NormalizeCompletion before writing, so an incomplete task always has
// a nil CompletedAt and a complete task keeps the timestamp of the write
// that first saw it complete.
type Task struct {
	ID           string
	TodoID       string
	Title        string
	Description  string
	IsComplete   bool
	CreatedAt    time.Time
	DeadlineDate *time.Time
	CompletedAt  *time.Time
}

// NormalizeCompletion applies the completed_at derivation rule ahead of a
// write: a task that is complete and has no completion timestamp gets one,
// and a task that is not complete has it cleared regardless of prior value.
// Re-normalizing an already-complete task leaves its timestamp untouched.
func (t *Task) NormalizeCompletion(now time.Time) {
	switch {
	case t.IsComplete && t.CompletedAt == nil:
		ts := now
		t.CompletedAt = &ts
	case !t.IsComplete:
		t.CompletedAt = nil
	}
}
