// Package api wires the chi router, middleware stack, and handlers that
// expose pkg/sync/core over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lfurzewaddock/spaced-backend/internal/logger"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/api/auth"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/api/handlers"
	apimw "github.com/lfurzewaddock/spaced-backend/pkg/sync/api/middleware"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/core"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/metrics"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/store"
)

// NewRouter builds the HTTP handler for the sync ingestion service.
//
// Routes:
//   - GET  /health       - liveness probe, unauthenticated
//   - GET  /health/ready - readiness probe, unauthenticated
//   - GET  /metrics      - Prometheus scrape target, unauthenticated
//   - POST /api/v1/sync/batch - the ingestion core's only write path
func NewRouter(s store.Store, dispatcher *core.Dispatcher, bv *core.BatchValidator, jwtService *auth.JWTService, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	healthHandler := handlers.NewHealthHandler(s)
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Ready)
	})

	r.Handle("/metrics", promhttp.Handler())

	ingestHandler := handlers.NewIngestHandler(dispatcher, bv, m)
	r.Route("/api/v1/sync", func(r chi.Router) {
		r.Use(apimw.JWTAuth(jwtService))
		r.Post("/batch", ingestHandler.Batch)
	})

	return r
}

// requestID assigns every request a random UUID rather than chi's default
// process-local counter, so IDs stay unique across restarts and across the
// multiple replicas a production deployment runs behind a load balancer.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		ctx := context.WithValue(r.Context(), chimw.RequestIDKey, id)
		w.Header().Set(chimw.RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func isHealthPath(path string) bool {
	return path == "/health" || path == "/health/" || path == "/health/ready" || path == "/metrics"
}

// requestLogger logs every request through the structured logger, at
// DEBUG for health/metrics scrapes to avoid drowning real traffic.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := chimw.GetReqID(r.Context())

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logArgs := []any{
			logger.KeyRequestID, reqID,
			logger.KeyMethod, r.Method,
			logger.KeyPath, r.URL.Path,
			logger.KeyStatus, ww.Status(),
			logger.KeyDuration, time.Since(start).String(),
		}

		if isHealthPath(r.URL.Path) {
			logger.Debug("API request completed", logArgs...)
		} else {
			logger.Info("API request completed", logArgs...)
		}
	})
}
