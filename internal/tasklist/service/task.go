package service

import (
	"context"
	"strings"
	"time"

	"github.com/tidylabs/tasklist/internal/tasklist/domain"
	"github.com/tidylabs/tasklist/internal/tasklist/store"
	"github.com/tidylabs/tasklist/pkg/idx"
)

// TaskService implements task CRUD. Every mutation path normalizes the
// completed_at derivation before writing, so the rule holds no matter which
// operation touched the row.
type TaskService struct {
	Store store.Store

	// Now overrides the clock in tests. Nil means time.Now.
	Now func() time.Time
}

func (s *TaskService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// AddTask inserts a new incomplete task into a list. Fails with ErrNotFound
// when the list does not exist.
func (s *TaskService) AddTask(ctx context.Context, listID, title, description string, deadline *time.Time) (domain.Task, error) {
	if strings.TrimSpace(title) == "" {
		return domain.Task{}, ErrTitleRequired
	}
	if _, err := s.Store.TodoLists().GetListByID(ctx, listID); err != nil {
		return domain.Task{}, err
	}

	// Deadlines arrive in the client's zone; the deadline comparisons in the
	// stats queries assume every stored timestamp is UTC.
	if deadline != nil {
		utc := deadline.UTC()
		deadline = &utc
	}

	task := domain.Task{
		ID:           idx.New().String(),
		TodoID:       listID,
		Title:        title,
		Description:  description,
		IsComplete:   false,
		CreatedAt:    s.now(),
		DeadlineDate: deadline,
	}

	if err := s.Store.Tasks().CreateTask(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// GetTask fetches a task by id.
func (s *TaskService) GetTask(ctx context.Context, id string) (domain.Task, error) {
	return s.Store.Tasks().GetTaskByID(ctx, id)
}

// ToggleCompletion flips is_complete and re-derives completed_at.
func (s *TaskService) ToggleCompletion(ctx context.Context, taskID string) (domain.Task, error) {
	task, err := s.Store.Tasks().GetTaskByID(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}

	task.IsComplete = !task.IsComplete
	task.NormalizeCompletion(s.now())

	if err := s.Store.Tasks().UpdateTask(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// UpdateTask overwrites title and description. The completion derivation
// runs here too: an already-complete task keeps (or regains) its
// completed_at, and an incomplete one stays cleared, even though neither
// field was edited.
func (s *TaskService) UpdateTask(ctx context.Context, id, title, description string) (domain.Task, error) {
	if strings.TrimSpace(title) == "" {
		return domain.Task{}, ErrTitleRequired
	}

	task, err := s.Store.Tasks().GetTaskByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	task.Title = title
	task.Description = description
	task.NormalizeCompletion(s.now())

	if err := s.Store.Tasks().UpdateTask(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// DeleteTask removes a task. Fails with ErrNotFound when it does not exist.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	return s.Store.Tasks().DeleteTask(ctx, id)
}
