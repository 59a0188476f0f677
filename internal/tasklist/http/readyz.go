package http

import (
	"net/http"
	"time"

	"github.com/tidylabs/tasklist/internal/tasklist/store"
	"github.com/tidylabs/tasklist/pkg/api"
	"github.com/tidylabs/tasklist/pkg/httpx"
)

// ReadyzHandler is the readiness probe. It answers 503 while the database is
// unreachable so load balancers stop routing traffic here.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &api.HealthChecks{Database: "ok"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, api.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
