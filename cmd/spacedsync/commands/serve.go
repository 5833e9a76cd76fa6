package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lfurzewaddock/spaced-backend/internal/config"
	"github.com/lfurzewaddock/spaced-backend/internal/logger"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/api"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/api/auth"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/core"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/metrics"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sync ingestion HTTP server",
	Long: `serve loads configuration, opens the store, and listens for batch
ingestion requests until interrupted.

Examples:
  # Serve with environment variables and built-in defaults (no config file)
  spacedsync serve

  # Serve with a custom config file
  spacedsync serve --config /etc/spacedsync/config.yaml

  # Override settings with environment variables
  SPACEDSYNC_SERVER_PORT=9090 spacedsync serve`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.New(), GetConfigFile())
	if err != nil {
		return err
	}

	logger.Info("configuration loaded", "source", getConfigSource(GetConfigFile()))

	dbStore, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer func() {
		if err := dbStore.Close(); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
	})
	if err != nil {
		return fmt.Errorf("failed to create JWT service: %w", err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	batchValidator := core.NewBatchValidator(cfg.Batch.MaxOps)
	dispatcher := core.NewDispatcher(dbStore, core.WithMetrics(m))

	server := api.NewServer(api.ServerConfig{
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}, dbStore, dispatcher, batchValidator, jwtService, m)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- server.Start(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("spacedsync is running", "port", cfg.Server.Port)

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("shutdown signal received, initiating graceful shutdown")
		cancel()

		if err := <-serverDone; err != nil {
			logger.Error("server shutdown error", "error", err)
			return err
		}
		logger.Info("server stopped gracefully")

	case err := <-serverDone:
		signal.Stop(sigChan)
		if err != nil {
			logger.Error("server error", "error", err)
			return err
		}
		logger.Info("server stopped")
	}

	return nil
}

// getConfigSource returns a description of where the config was loaded from.
func getConfigSource(configFile string) string {
	if configFile != "" {
		return configFile
	}
	return "environment/defaults"
}
