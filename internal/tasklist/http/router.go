package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/tidylabs/tasklist/internal/tasklist/service"
	"github.com/tidylabs/tasklist/internal/tasklist/store"
	"github.com/tidylabs/tasklist/pkg/httpx"
	"github.com/tidylabs/tasklist/pkg/sessionx"
	"github.com/tidylabs/tasklist/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers. Ownership enforcement
// lives here: handlers resolve the resource, compare its owner against the
// authenticated user id, and answer 404 on a mismatch so foreign resource ids
// are indistinguishable from absent ones.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	sessions     *sessionx.Manager
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	AccountService *service.AccountService
	TodoService    *service.TodoService
	TaskService    *service.TaskService
	StatsService   *service.StatsService
}

func NewRouter(
	sessions *sessionx.Manager,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		sessions:     sessions,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProfile()
	r.registerLists()
	r.registerTasks()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AccountService: r.AccountService,
		Sessions:       r.sessions,
	}

	// Credential endpoints are rate limited strictly by IP to slow down
	// brute-force and mass-registration attempts.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{
		AccountService: r.AccountService,
		StatsService:   r.StatsService,
	}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.sessions),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /v1/profile", secured(h.HandleGet))
	r.Mux.Handle("POST /v1/profile/password", secured(h.HandleChangePassword))
	r.Mux.Handle("PATCH /v1/profile/notifications", secured(h.HandleUpdateNotifications))
}

func (r *Router) registerLists() {
	h := &ListsHandler{
		TodoService: r.TodoService,
		TaskService: r.TaskService,
	}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.sessions),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /v1/lists", secured(h.HandleList))
	r.Mux.Handle("POST /v1/lists", secured(h.HandleCreate))
	r.Mux.Handle("GET /v1/lists/{id}", secured(h.HandleGet))
	r.Mux.Handle("PATCH /v1/lists/{id}", secured(h.HandleRename))
	r.Mux.Handle("DELETE /v1/lists/{id}", secured(h.HandleDelete))
	r.Mux.Handle("GET /v1/lists/{id}/tasks", secured(h.HandleListTasks))
	r.Mux.Handle("POST /v1/lists/{id}/tasks", secured(h.HandleCreateTask))
}

func (r *Router) registerTasks() {
	h := &TasksHandler{
		TodoService: r.TodoService,
		TaskService: r.TaskService,
	}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.sessions),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("PATCH /v1/tasks/{id}", secured(h.HandleUpdate))
	r.Mux.Handle("POST /v1/tasks/{id}/toggle", secured(h.HandleToggle))
	r.Mux.Handle("DELETE /v1/tasks/{id}", secured(h.HandleDelete))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may
	// poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
