// eventsctl is the command-line client for the events platform.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ErlanBelekov/events-client/config"
	"github.com/ErlanBelekov/events-client/internal/cli"
	"github.com/ErlanBelekov/events-client/internal/health"
	"github.com/ErlanBelekov/events-client/internal/infrastructure/httpapi"
	"github.com/ErlanBelekov/events-client/internal/infrastructure/localstore"
	"github.com/ErlanBelekov/events-client/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/events-client/internal/log"
	"github.com/ErlanBelekov/events-client/internal/metrics"
	"github.com/ErlanBelekov/events-client/internal/repository"
	"github.com/ErlanBelekov/events-client/internal/scheduler"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("config error: %v", err)
		return 2
	}

	logger := ctxlog.NewLogger(cfg.Env, cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := map[string]health.Pinger{}
	store, closeStore, err := newCredentialStore(ctx, cfg, deps)
	if err != nil {
		logger.Error("credential store", "error", err)
		return 1
	}
	defer closeStore()

	transport := httpapi.NewTransport(store, logger)
	api, err := httpapi.New(cfg.APIBaseURL, transport)
	if err != nil {
		logger.Error("api client", "error", err)
		return 2
	}
	deps["api"] = health.PingerFunc(func(ctx context.Context) error {
		return transport.Reachable(ctx, cfg.APIBaseURL)
	})

	schedule, err := scheduler.ParseSchedule(cfg.SessionCheckSchedule)
	if err != nil {
		logger.Error("session watcher", "error", err)
		return 2
	}

	args := os.Args[1:]
	if len(args) > 0 && args[0] == "watch" {
		shutdown := serveMetrics(cfg, deps, logger)
		defer shutdown()
	}

	app := cli.NewApp(cli.Deps{
		API:      api,
		Store:    store,
		Logger:   logger,
		Schedule: schedule,
		In:       os.Stdin,
		Out:      os.Stdout,
		Err:      os.Stderr,
		StdinFD:  int(os.Stdin.Fd()),
	})

	err = app.Run(ctx, args)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, cli.ErrUsage):
		if err != cli.ErrUsage {
			fmt.Fprintln(os.Stderr, err)
		}
		return 2
	case errors.Is(err, cli.ErrNotLoggedIn):
		return 3
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
}

// newCredentialStore opens the configured slot. Postgres is registered as a
// health dependency.
func newCredentialStore(ctx context.Context, cfg *config.Config, deps map[string]health.Pinger) (repository.CredentialStore, func(), error) {
	switch cfg.CredentialStore {
	case config.StoreMemory:
		return localstore.NewMemoryStore(), func() {}, nil
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		deps["postgres"] = pool
		return postgres.NewCredentialStore(pool, cfg.CredentialKey), pool.Close, nil
	default:
		path := cfg.CredentialFile
		if home, err := os.UserHomeDir(); err == nil && !filepath.IsAbs(path) {
			path = filepath.Join(home, path)
		}
		return localstore.NewFileStore(path, cfg.CredentialKey), func() {}, nil
	}
}

// serveMetrics exposes /metrics and health endpoints while watch runs.
func serveMetrics(cfg *config.Config, deps map[string]health.Pinger, logger *slog.Logger) func() {
	metrics.Register()
	checker := health.NewChecker(deps, logger, prometheus.DefaultRegisterer)
	srv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown", "error", err)
		}
	}
}
