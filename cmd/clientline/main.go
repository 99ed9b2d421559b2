package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SuDelk/ClientLine-Backend/pkg/api"
	"github.com/SuDelk/ClientLine-Backend/pkg/auth"
	"github.com/SuDelk/ClientLine-Backend/pkg/config"
	"github.com/SuDelk/ClientLine-Backend/pkg/observability"
	"github.com/SuDelk/ClientLine-Backend/pkg/organizations"
	"github.com/SuDelk/ClientLine-Backend/pkg/storage/postgres"
	"github.com/SuDelk/ClientLine-Backend/pkg/users"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		// No logger yet; the bootstrap logger reports config failures.
		observability.NewLogger(observability.ErrorLevel, os.Stderr).
			WithError(err).Error("failed to load configuration")
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout).
		WithField("service", api.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, postgres.Config{
		URL:             cfg.Database.URL(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnectTimeout:  cfg.Database.ConnectTimeout,
	})
	if err != nil {
		logger.WithError(err).Error("failed to connect to database")
		os.Exit(1)
	}
	defer db.Close()
	logger.WithFields(map[string]interface{}{
		"host": cfg.Database.Host,
		"name": cfg.Database.Name,
	}).Info("connected to database")

	if err := postgres.RunMigrations(ctx, db); err != nil {
		logger.WithError(err).Error("failed to run migrations")
		os.Exit(1)
	}
	logger.Info("migrations applied")

	var metrics *observability.Metrics
	registry := prometheus.NewRegistry()
	if cfg.Observability.MetricsEnabled {
		registry.MustRegister(collectors.NewGoCollector())
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics = observability.NewMetrics(registry)
		go pollDBStats(ctx, db, metrics)
	}

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	orgService := organizations.NewPostgresService(db, logger, metrics)
	userService := users.NewPostgresService(db, hasher, logger, metrics)

	apiServer := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      api.NewServer(orgService, userService, logger, metrics),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	healthServer := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.HealthPort,
		Handler: healthMux(db, registry),
	}

	errCh := make(chan error, 2)
	go func() {
		logger.WithField("addr", apiServer.Addr).Info("api server listening")
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	go func() {
		logger.WithField("addr", healthServer.Addr).Info("health server listening")
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.WithError(err).Error("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("api server shutdown failed")
	}
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("health server shutdown failed")
	}
	logger.Info("shutdown complete")
}

// healthMux serves the probe endpoints and metrics on the health port so they
// stay reachable without going through the API middleware chain.
func healthMux(db *sql.DB, registry *prometheus.Registry) http.Handler {
	checker := observability.NewHealthChecker(db)
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz/live", checker.Liveness)
	mux.HandleFunc("/healthz/ready", checker.Readiness)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return mux
}

// pollDBStats feeds connection pool gauges on a fixed interval.
func pollDBStats(ctx context.Context, db *sql.DB, metrics *observability.Metrics) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.UpdateDBStats(db.Stats())
		}
	}
}
