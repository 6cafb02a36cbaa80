package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"kudos/internal/domain/directory"
	"kudos/internal/domain/recognition"
	"kudos/internal/domain/reports"
	"kudos/internal/platform/config"
	"kudos/internal/platform/metrics"
	"kudos/internal/platform/webhook"
	"kudos/internal/transport/http/api"
	directoryhandler "kudos/internal/transport/http/handlers/directory"
	recognitionhandler "kudos/internal/transport/http/handlers/recognition"
	reportshandler "kudos/internal/transport/http/handlers/reports"
	"kudos/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dir := directory.NewStore()
	directory.Seed(dir)

	recStore := recognition.NewStore()
	hub := recognition.NewHub(cfg.SubscriberBuffer)

	var settings webhook.Settings
	if cfg.WebhookConfigPath != "" {
		loaded, err := webhook.LoadSettings(cfg.WebhookConfigPath)
		if err != nil {
			log.Fatalf("webhook settings failed: %v", err)
		}
		settings = loaded
	}
	dispatcher := webhook.NewDispatcher(settings, logger)
	if cfg.WebhookConfigPath != "" {
		if err := dispatcher.Watch(ctx, cfg.WebhookConfigPath); err != nil {
			log.Fatalf("webhook settings watcher failed: %v", err)
		}
	}

	svc := recognition.NewService(dir, recStore, hub, dispatcher, logger)
	reportSvc := reports.NewService(dir, recStore)
	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger, collector))
	router.Use(chimw.Recoverer)
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		directoryhandler.NewHandler(dir).RegisterRoutes(r)
		recognitionhandler.NewHandler(svc, dir, collector, logger).RegisterRoutes(r)
		reportshandler.NewHandler(reportSvc, dir).RegisterRoutes(r)

		if cfg.MetricsEnabled {
			adminOnly := middleware.RequireRole(dir, directory.RoleAdmin, directory.RoleHR)
			r.With(adminOnly).Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
				api.Success(w, collector.Snapshot(hub.Subscribers()), middleware.GetRequestID(r.Context()))
			})
		}
	})

	server := &http.Server{Addr: cfg.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown failed", "err", err)
		}
		hub.Close()
	}()

	logger.Info("recognition server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server failed: %v", err)
	}
}
