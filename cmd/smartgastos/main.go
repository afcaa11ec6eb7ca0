package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boddenberg/smart-gastos-api/internal/config"
	"github.com/boddenberg/smart-gastos-api/internal/handler"
	"github.com/boddenberg/smart-gastos-api/internal/infra/memstore"
	"github.com/boddenberg/smart-gastos-api/internal/infra/observability"
	"github.com/boddenberg/smart-gastos-api/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("env", cfg.Env),
		zap.String("log_level", cfg.LogLevel),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.Int("max_concurrency", cfg.MaxConcurrency),
		zap.Bool("seed_data", cfg.ShouldSeed()),
		zap.Bool("strict_subscription_scope", cfg.StrictSubscriptionScope),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Store ---
	store := memstore.New()
	if cfg.ShouldSeed() {
		if err := memstore.Seed(context.Background(), store, logger); err != nil {
			logger.Fatal("failed to seed data", zap.Error(err))
		}
	}
	metrics.SetRecordCounts(store.Counts(context.Background()))

	// --- Services ---
	financeSvc := service.NewFinanceService(store, metrics, logger,
		service.WithStrictSubscriptionScope(cfg.StrictSubscriptionScope),
	)

	// --- Router ---
	router := handler.NewRouter(financeSvc, handler.Options{
		FrontendURL:    cfg.FrontendURL,
		Development:    cfg.IsDevelopment(),
		MaxConcurrency: cfg.MaxConcurrency,
	}, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting",
			zap.Int("port", cfg.Port),
			zap.String("health", fmt.Sprintf("http://localhost:%d/health", cfg.Port)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
