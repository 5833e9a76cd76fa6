package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/lfurzewaddock/spaced-backend/internal/logger"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/api/auth"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/core"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/metrics"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/store"
)

// ServerConfig carries the HTTP listener settings needed to build a Server.
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Server wraps the ingestion service's HTTP listener with graceful shutdown.
type Server struct {
	server       *http.Server
	port         int
	shutdownOnce sync.Once
}

// NewServer builds a Server bound to the given port, serving the router
// produced by NewRouter. The server is created stopped; call Start to begin
// serving requests.
func NewServer(config ServerConfig, s store.Store, dispatcher *core.Dispatcher, bv *core.BatchValidator, jwtService *auth.JWTService, m *metrics.Metrics) *Server {
	router := NewRouter(s, dispatcher, bv, jwtService, m)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", config.Port),
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
		port: config.Port,
	}
}

// Start serves requests until ctx is cancelled, then gracefully shuts down.
// It returns nil on a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("sync API listening", "port", s.port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			select {
			case errChan <- err:
			default:
			}
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("sync API shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("sync API failed: %w", err)
	}
}

// Stop initiates graceful shutdown. Safe to call multiple times.
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if err := s.server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("sync API shutdown error: %w", err)
			logger.Error("sync API shutdown error", "error", err)
			return
		}
		logger.Info("sync API stopped gracefully")
	})
	return shutdownErr
}
