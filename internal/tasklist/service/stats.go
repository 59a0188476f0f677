package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/tidylabs/tasklist/internal/tasklist/domain"
	"github.com/tidylabs/tasklist/internal/tasklist/store"
	"github.com/tidylabs/tasklist/pkg/slogx"
)

// StatsService recomputes the per-user aggregate snapshot. It has no state
// of its own: RefreshStats is a deterministic, idempotent function of the
// store contents at call time.
type StatsService struct {
	Store store.Store

	// Now overrides the evaluation instant in tests. Nil means time.Now.
	Now func() time.Time
}

func (s *StatsService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// RefreshStats recomputes all aggregate fields for a user and upserts the
// snapshot row. Fails with store.ErrNotFound when the user does not exist.
//
// Active and overdue buckets both require a deadline on the task, so tasks
// without one (and tasks whose deadline is exactly the evaluation instant)
// count toward the totals but toward neither bucket.
func (s *StatsService) RefreshStats(ctx context.Context, userID string) (domain.UserStats, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate the user exists; stats rows never outlive an account.
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserStats{}, err
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.UserStats{}, err
	}

	now := s.now()
	repo := s.Store.UserStats()

	// 2. Gather the raw counts at a single evaluation instant.
	totalLists, err := repo.CountListsByUser(ctx, userID)
	if err != nil {
		return domain.UserStats{}, err
	}
	totalTasks, err := repo.CountTasksByUser(ctx, userID)
	if err != nil {
		return domain.UserStats{}, err
	}
	activeTasks, err := repo.CountActiveTasksByUser(ctx, userID, now)
	if err != nil {
		return domain.UserStats{}, err
	}
	completedTasks, err := repo.CountCompletedTasksByUser(ctx, userID)
	if err != nil {
		return domain.UserStats{}, err
	}
	overdueTasks, err := repo.CountOverdueTasksByUser(ctx, userID, now)
	if err != nil {
		return domain.UserStats{}, err
	}

	stats := domain.UserStats{
		UserID:               userID,
		TotalLists:           totalLists,
		TotalTasks:           totalTasks,
		ActiveTasks:          activeTasks,
		CompletedTasks:       completedTasks,
		IncompleteTasks:      overdueTasks,
		CompletionPercentage: completionPercentage(completedTasks, totalTasks),
		UpdatedAt:            now,
	}

	// 3. Overwrite the snapshot in place; no history is kept.
	if err := repo.UpsertStats(ctx, stats); err != nil {
		log.Error("failed to upsert user stats", slog.String("user_id", userID), slog.Any("error", err))
		return domain.UserStats{}, err
	}

	log.Debug("user stats refreshed",
		slog.String("user_id", userID),
		slog.Int64("total_tasks", stats.TotalTasks),
		slog.Float64("completion_percentage", stats.CompletionPercentage),
	)
	return stats, nil
}

// GetStats returns the stored snapshot without recomputing it.
func (s *StatsService) GetStats(ctx context.Context, userID string) (domain.UserStats, error) {
	return s.Store.UserStats().GetStatsByUserID(ctx, userID)
}

// completionPercentage is round(100 * completed / total, 2); zero tasks
// yield 0 rather than a division error.
func completionPercentage(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*100*100) / 100
}
