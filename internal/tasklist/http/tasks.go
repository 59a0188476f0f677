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

// TasksHandler handles the task endpoints addressed by task id.
type TasksHandler struct {
	TodoService *service.TodoService
	TaskService *service.TaskService
}

// resolveOwnedTask loads a task and walks up to its list to verify ownership.
// Tasks carry no owner of their own; the list does.
func (h *TasksHandler) resolveOwnedTask(w http.ResponseWriter, r *http.Request) (domain.Task, bool) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	task, err := h.TaskService.GetTask(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "Task not found")
			return domain.Task{}, false
		}
		slogx.FromContext(ctx).Error("failed to load task", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to load task")
		return domain.Task{}, false
	}

	list, err := h.TodoService.GetList(ctx, task.TodoID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to load task's list", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to load task")
		return domain.Task{}, false
	}
	if list.UserID != userID {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Task not found")
		return domain.Task{}, false
	}
	return task, true
}

// HandleUpdate handles PATCH /v1/tasks/{id}.
func (h *TasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	task, ok := h.resolveOwnedTask(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	var req api.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}

	updated, err := h.TaskService.UpdateTask(ctx, task.ID, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Title is required")
			return
		}
		slogx.FromContext(ctx).Error("failed to update task", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to update task")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTaskResponse(updated))
}

// HandleToggle handles POST /v1/tasks/{id}/toggle.
func (h *TasksHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	task, ok := h.resolveOwnedTask(w, r)
	if !ok {
		return
	}

	toggled, err := h.TaskService.ToggleCompletion(r.Context(), task.ID)
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to toggle task", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to toggle task")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTaskResponse(toggled))
}

// HandleDelete handles DELETE /v1/tasks/{id}.
func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	task, ok := h.resolveOwnedTask(w, r)
	if !ok {
		return
	}

	if err := h.TaskService.DeleteTask(r.Context(), task.ID); err != nil {
		slogx.FromContext(r.Context()).Error("failed to delete task", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to delete task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
