package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tidylabs/tasklist/internal/tasklist/service"
	"github.com/tidylabs/tasklist/pkg/api"
	"github.com/tidylabs/tasklist/pkg/httpx"
	"github.com/tidylabs/tasklist/pkg/sessionx"
	"github.com/tidylabs/tasklist/pkg/slogx"
)

// AuthHandler handles the unauthenticated account endpoints.
type AuthHandler struct {
	AccountService *service.AccountService
	Sessions       *sessionx.Manager
}

// HandleRegister handles POST /v1/auth/register.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}

	user, err := h.AccountService.Register(ctx, req.Email, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRegistration):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Email, username and password are required")
		case errors.Is(err, service.ErrUsernameTaken):
			httpx.WriteError(w, http.StatusConflict, "conflict", "Username is already taken")
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteError(w, http.StatusConflict, "conflict", "Email is already registered")
		default:
			log.Error("failed to register user", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to register user")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, api.RegisterResponse{
		UserID:   user.ID,
		Username: user.Username,
	})
}

// HandleLogin handles POST /v1/auth/login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Username and password are required")
		return
	}

	user, err := h.AccountService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// One answer for bad username and bad password.
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid username or password")
			return
		}
		log.Error("failed to authenticate user", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to authenticate")
		return
	}

	token, err := h.Sessions.Issue(user.ID)
	if err != nil {
		log.Error("failed to issue session token", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to issue session")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, api.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.Sessions.TTL().Seconds()),
	})
}
