package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/tidylabs/tasklist/internal/tasklist/domain"
	"github.com/tidylabs/tasklist/internal/tasklist/store"
	"github.com/tidylabs/tasklist/pkg/idx"
	"github.com/tidylabs/tasklist/pkg/slogx"
)

var ErrTitleRequired = errors.New("title must not be empty")

// TodoService implements list CRUD. It performs no ownership checks; callers
// supply an authenticated owner id and the request layer is responsible for
// verifying that it matches the list being mutated.
type TodoService struct {
	Store store.Store

	// Now overrides the clock in tests. Nil means time.Now.
	Now func() time.Time
}

func (s *TodoService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// CreateList inserts a new list for the owner. Duplicate titles are allowed,
// even for the same owner.
func (s *TodoService) CreateList(ctx context.Context, title, ownerID string) (domain.TodoList, error) {
	if strings.TrimSpace(title) == "" {
		return domain.TodoList{}, ErrTitleRequired
	}

	now := s.now()
	list := domain.TodoList{
		ID:        idx.New().String(),
		UserID:    ownerID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.TodoLists().CreateList(ctx, list); err != nil {
		return domain.TodoList{}, err
	}

	slogx.FromContext(ctx).Debug("list created",
		slog.String("list_id", list.ID),
		slog.String("user_id", ownerID),
	)
	return list, nil
}

// GetList fetches a list by id.
func (s *TodoService) GetList(ctx context.Context, id string) (domain.TodoList, error) {
	return s.Store.TodoLists().GetListByID(ctx, id)
}

// ListLists returns all lists owned by a user.
func (s *TodoService) ListLists(ctx context.Context, ownerID string) ([]domain.TodoList, error) {
	return s.Store.TodoLists().ListByUser(ctx, ownerID)
}

// RenameList overwrites the list title.
func (s *TodoService) RenameList(ctx context.Context, id, title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	return s.Store.TodoLists().RenameList(ctx, id, title, s.now())
}

// DeleteList removes a list and all of its tasks in one transaction. Either
// both the list and its tasks go, or neither does.
func (s *TodoService) DeleteList(ctx context.Context, id string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Tasks().DeleteByList(ctx, id); err != nil {
			return err
		}
		// DeleteList reports ErrNotFound for a missing list, which rolls the
		// task deletion back as well.
		return tx.TodoLists().DeleteList(ctx, id)
	})
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to delete list", slog.String("list_id", id), slog.Any("error", err))
		}
		return err
	}

	log.Debug("list deleted", slog.String("list_id", id))
	return nil
}

// CountTasks returns (total, active, completed) for one list, where
// total = active + completed. Fails with ErrNotFound for a missing list.
func (s *TodoService) CountTasks(ctx context.Context, listID string) (domain.TaskCounts, error) {
	if _, err := s.Store.TodoLists().GetListByID(ctx, listID); err != nil {
		return domain.TaskCounts{}, err
	}
	return s.Store.Tasks().CountByList(ctx, listID)
}

// ListTasks returns all tasks of a list. Fails with ErrNotFound for a
// missing list.
func (s *TodoService) ListTasks(ctx context.Context, listID string) ([]domain.Task, error) {
	if _, err := s.Store.TodoLists().GetListByID(ctx, listID); err != nil {
		return nil, err
	}
	return s.Store.Tasks().ListByList(ctx, listID)
}
