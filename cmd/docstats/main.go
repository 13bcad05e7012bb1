package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docstats/internal/bootstrap"
	"github.com/kailas-cloud/docstats/internal/config"
	"github.com/kailas-cloud/docstats/internal/domain"
	logpkg "github.com/kailas-cloud/docstats/internal/logger"
	"github.com/kailas-cloud/docstats/internal/metrics"
	documentrepo "github.com/kailas-cloud/docstats/internal/repository/document"
	chiTransport "github.com/kailas-cloud/docstats/internal/transport/chi"
	"github.com/kailas-cloud/docstats/internal/usecase/analytics"
	healthuc "github.com/kailas-cloud/docstats/internal/usecase/health"
	"github.com/kailas-cloud/docstats/internal/usecase/seed"
	"github.com/kailas-cloud/docstats/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting docstats API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := bootstrap.OpenStore(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register store metrics explicitly (no init())
	metrics.RegisterStoreMetrics()

	repos := bootstrap.NewRepos(store, cfg.Storage)

	if cfg.Seed.OnStartup {
		opts, err := bootstrap.SeedOptions(cfg.Seed)
		if err != nil {
			logger.Fatal("Invalid seed options", zap.Error(err))
		}
		if _, err := seed.New(repos.Documents, repos.Params, logger).Run(ctx, opts); err != nil {
			logger.Fatal("Seeding failed", zap.Error(err))
		}
	}

	analyticsSvc, err := analytics.New(ctx, repos.Params, documentrepo.NewInstrumented(repos.Documents, logger))
	if err != nil {
		var mpe *domain.MissingParameterError
		if errors.As(err, &mpe) {
			logger.Fatal("Parameter store is not seeded",
				zap.String("parameter", mpe.Name),
				zap.String("params_index", cfg.Storage.ParamsIndex),
			)
		}
		logger.Fatal("Failed to load parameters", zap.Error(err))
	}
	analyticsSvc.WithConcurrency(cfg.Analytics.CountConcurrency).WithPageSize(cfg.Analytics.PageSize)

	params := analyticsSvc.Params()
	logger.Info("Parameters loaded",
		zap.Int("doc_count", params.DocCount),
		zap.Int("authors_count", params.AuthorsCount),
		zap.String("index_name", params.IndexName),
	)

	healthSvc := healthuc.New(store, store, params.IndexName)

	server := chiTransport.NewServer(analyticsSvc, healthSvc, logger)
	router := chiTransport.NewRouter(server, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
