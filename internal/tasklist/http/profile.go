package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tidylabs/tasklist/internal/tasklist/domain"
	"github.com/tidylabs/tasklist/internal/tasklist/service"
	"github.com/tidylabs/tasklist/internal/tasklist/store"
	"github.com/tidylabs/tasklist/pkg/api"
	"github.com/tidylabs/tasklist/pkg/httpx"
	"github.com/tidylabs/tasklist/pkg/slogx"
)

// ProfileHandler serves the authenticated account endpoints.
type ProfileHandler struct {
	AccountService *service.AccountService
	StatsService   *service.StatsService
}

// HandleGet handles GET /v1/profile. Viewing the profile recomputes the
// stats snapshot, so the returned numbers are never stale.
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	user, err := h.AccountService.FindByID(ctx, userID)
	if err != nil {
		log.Error("failed to load profile", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to load profile")
		return
	}

	stats, err := h.StatsService.RefreshStats(ctx, userID)
	if err != nil {
		log.Error("failed to refresh stats", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to compute statistics")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, api.ProfileResponse{
		User:  toUserResponse(user),
		Stats: toStatsResponse(stats),
	})
}

// HandleChangePassword handles POST /v1/profile/password.
func (h *ProfileHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	var req api.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}

	err := h.AccountService.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			httpx.WriteError(w, http.StatusForbidden, "invalid_credentials", "Current password is incorrect")
		case errors.Is(err, service.ErrInvalidRegistration):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "New password must not be empty")
		default:
			log.Error("failed to change password", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to change password")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdateNotifications handles PATCH /v1/profile/notifications.
func (h *ProfileHandler) HandleUpdateNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	var req api.UpdateNotificationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}

	if err := h.AccountService.UpdateNotificationSettings(ctx, userID, req.Settings); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "Account not found")
			return
		}
		log.Error("failed to update notification settings", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to update settings")
		return
	}

	user, err := h.AccountService.FindByID(ctx, userID)
	if err != nil {
		log.Error("failed to reload profile", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to load profile")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func toUserResponse(u domain.User) api.UserResponse {
	return api.UserResponse{
		ID:                   u.ID,
		Email:                u.Email,
		Username:             u.Username,
		NotificationSettings: u.NotificationSettings,
		CreatedAt:            u.CreatedAt,
	}
}

func toStatsResponse(s domain.UserStats) api.StatsResponse {
	return api.StatsResponse{
		TotalLists:           s.TotalLists,
		TotalTasks:           s.TotalTasks,
		ActiveTasks:          s.ActiveTasks,
		CompletedTasks:       s.CompletedTasks,
		IncompleteTasks:      s.IncompleteTasks,
		CompletionPercentage: s.CompletionPercentage,
		UpdatedAt:            s.UpdatedAt,
	}
}
