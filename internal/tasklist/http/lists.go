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

// ListsHandler handles all list management endpoints.
type ListsHandler struct {
	TodoService *service.TodoService
	TaskService *service.TaskService
}

// resolveOwnedList loads a list and verifies the authenticated user owns it.
// Missing and foreign lists both produce a 404 so ids cannot be probed.
func (h *ListsHandler) resolveOwnedList(w http.ResponseWriter, r *http.Request) (domain.TodoList, bool) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	list, err := h.TodoService.GetList(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "List not found")
			return domain.TodoList{}, false
		}
		slogx.FromContext(ctx).Error("failed to load list", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to load list")
		return domain.TodoList{}, false
	}
	if list.UserID != userID {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "List not found")
		return domain.TodoList{}, false
	}
	return list, true
}

// HandleList handles GET /v1/lists. Each list carries its task counts.
func (h *ListsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	lists, err := h.TodoService.ListLists(ctx, userID)
	if err != nil {
		log.Error("failed to list lists", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to list lists")
		return
	}

	resp := api.ListsResponse{Lists: make([]api.ListResponse, 0, len(lists))}
	for _, list := range lists {
		counts, err := h.TodoService.CountTasks(ctx, list.ID)
		if err != nil {
			log.Error("failed to count tasks", "list_id", list.ID, "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to count tasks")
			return
		}
		resp.Lists = append(resp.Lists, toListResponse(list, &counts))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCreate handles POST /v1/lists.
func (h *ListsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	var req api.CreateListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}

	list, err := h.TodoService.CreateList(ctx, req.Title, userID)
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Title is required")
			return
		}
		slogx.FromContext(ctx).Error("failed to create list", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to create list")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toListResponse(list, nil))
}

// HandleGet handles GET /v1/lists/{id}.
func (h *ListsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	list, ok := h.resolveOwnedList(w, r)
	if !ok {
		return
	}

	counts, err := h.TodoService.CountTasks(r.Context(), list.ID)
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to count tasks", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to count tasks")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toListResponse(list, &counts))
}

// HandleRename handles PATCH /v1/lists/{id}.
func (h *ListsHandler) HandleRename(w http.ResponseWriter, r *http.Request) {
	list, ok := h.resolveOwnedList(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	var req api.RenameListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}

	if err := h.TodoService.RenameList(ctx, list.ID, req.Title); err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Title is required")
			return
		}
		slogx.FromContext(ctx).Error("failed to rename list", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to rename list")
		return
	}

	list.Title = req.Title
	httpx.WriteJSON(w, http.StatusOK, toListResponse(list, nil))
}

// HandleDelete handles DELETE /v1/lists/{id}. The list's tasks go with it.
func (h *ListsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	list, ok := h.resolveOwnedList(w, r)
	if !ok {
		return
	}

	if err := h.TodoService.DeleteList(r.Context(), list.ID); err != nil {
		slogx.FromContext(r.Context()).Error("failed to delete list", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to delete list")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListTasks handles GET /v1/lists/{id}/tasks.
func (h *ListsHandler) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	list, ok := h.resolveOwnedList(w, r)
	if !ok {
		return
	}

	tasks, err := h.TodoService.ListTasks(r.Context(), list.ID)
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to list tasks", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to list tasks")
		return
	}

	resp := api.TasksResponse{Tasks: make([]api.TaskResponse, 0, len(tasks))}
	for _, task := range tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(task))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCreateTask handles POST /v1/lists/{id}/tasks.
func (h *ListsHandler) HandleCreateTask(w http.ResponseWriter, r *http.Request) {
	list, ok := h.resolveOwnedList(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	var req api.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}

	task, err := h.TaskService.AddTask(ctx, list.ID, req.Title, req.Description, req.DeadlineDate)
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Title is required")
			return
		}
		slogx.FromContext(ctx).Error("failed to create task", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to create task")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toTaskResponse(task))
}

func toListResponse(l domain.TodoList, counts *domain.TaskCounts) api.ListResponse {
	resp := api.ListResponse{
		ID:        l.ID,
		Title:     l.Title,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
	if counts != nil {
		resp.Counts = &api.CountsResponse{
			Total:     counts.Total,
			Active:    counts.Active,
			Completed: counts.Completed,
		}
	}
	return resp
}

func toTaskResponse(t domain.Task) api.TaskResponse {
	return api.TaskResponse{
		ID:           t.ID,
		TodoID:       t.TodoID,
		Title:        t.Title,
		Description:  t.Description,
		IsComplete:   t.IsComplete,
		CreatedAt:    t.CreatedAt,
		DeadlineDate: t.DeadlineDate,
		CompletedAt:  t.CompletedAt,
	}
}
