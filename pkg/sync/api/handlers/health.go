package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/lfurzewaddock/spaced-backend/pkg/sync/store"
)

// HealthCheckTimeout bounds how long a readiness probe waits on the store.
const HealthCheckTimeout = 5 * time.Second

// HealthHandler serves the unauthenticated liveness/readiness endpoints.
type HealthHandler struct {
	store store.Store
}

func NewHealthHandler(s store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

// Liveness handles GET /health - always 200 while the process is up.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	WriteJSONOK(w, map[string]string{"status": "ok", "service": "spacedsync"})
}

// Ready handles GET /health/ready - 503 if the store cannot be reached.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), HealthCheckTimeout)
	defer cancel()

	if err := h.store.Healthcheck(ctx); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	WriteJSONOK(w, map[string]string{"status": "ok"})
}
