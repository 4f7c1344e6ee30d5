// apiserver is an in-memory implementation of the events API for local
// development and for exercising the client end to end.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/events-client/config"
	"github.com/ErlanBelekov/events-client/internal/email"
	"github.com/ErlanBelekov/events-client/internal/health"
	"github.com/ErlanBelekov/events-client/internal/infrastructure/memory"
	ctxlog "github.com/ErlanBelekov/events-client/internal/log"
	"github.com/ErlanBelekov/events-client/internal/metrics"
	httptransport "github.com/ErlanBelekov/events-client/internal/transport/http"
	"github.com/ErlanBelekov/events-client/internal/transport/http/handler"
	"github.com/ErlanBelekov/events-client/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("config error: JWT_SECRET is required for the api server")
	}

	logger := ctxlog.NewLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := memory.NewStore()
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	accounts := usecase.NewAccountUsecase(store, sender, []byte(cfg.JWTSecret), logger)

	handlers := httptransport.Handlers{
		Auth:   handler.NewAuthHandler(accounts, logger),
		Events: handler.NewEventHandler(store, logger),
		Users:  handler.NewUserHandler(store, accounts, logger),
	}

	metrics.Register()
	checker := health.NewChecker(map[string]health.Pinger{}, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httptransport.NewRouter(logger, handlers, []byte(cfg.JWTSecret), cfg.LoginRatePerMin),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("api server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}
