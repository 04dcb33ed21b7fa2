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

	"github.com/jafarshop/storemigrate/internal/api"
	"github.com/jafarshop/storemigrate/internal/config"
	"github.com/jafarshop/storemigrate/internal/connector"
	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/internal/jobs"
	"github.com/jafarshop/storemigrate/internal/logger"
	"github.com/jafarshop/storemigrate/internal/mapper"
	"github.com/jafarshop/storemigrate/internal/normalize"
	"github.com/jafarshop/storemigrate/internal/reconcile"
	"github.com/jafarshop/storemigrate/internal/repository/postgres"
	redisstore "github.com/jafarshop/storemigrate/internal/repository/redis"
	"github.com/jafarshop/storemigrate/internal/service"
	"github.com/jafarshop/storemigrate/internal/shopify"
	"github.com/jafarshop/storemigrate/internal/validator"
	"github.com/jafarshop/storemigrate/internal/woocommerce"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openJobStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open job store", zap.String("job_store", cfg.JobStore), zap.Error(err))
	}
	defer closeStore()

	if cfg.API.KeyHash == "" {
		log.Warn("API_KEY_HASH is empty, every /v1 request will be rejected")
	}

	connectors := connector.Set{
		domain.PlatformWooCommerce: woocommerce.NewClient(cfg.WooCommerce, cfg.Fetch, log),
		domain.PlatformShopify:     shopify.NewClient(cfg.Shopify, cfg.Fetch, log),
	}
	registry := normalize.NewRegistry(woocommerce.Normalizer{}, shopify.Normalizer{})
	m := mapper.New(registry, log)
	runner := jobs.NewRunner(store, connectors, m, validator.New(), log)

	router := api.NewRouter(cfg, api.Services{
		Migration: service.NewMigrationService(connectors, m, runner, store, log),
		Compare:   service.NewCompareService(connectors, registry, reconcile.NewEngine(registry, log), log),
	}, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server starting",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("job_store", cfg.JobStore),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}

	done := make(chan struct{})
	go func() {
		runner.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warn("Jobs still processing at shutdown; they stay in processing state")
	}
}

// openJobStore picks the backend named by JOB_STORE
func openJobStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (jobs.Store, func(), error) {
	switch cfg.JobStore {
	case config.JobStorePostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		repo := postgres.NewJobRepository(db, log)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, func() { db.Close() }, nil

	case config.JobStoreRedis:
		store, err := redisstore.NewJobStore(ctx, redisstore.Config{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
			TTL:       cfg.Redis.JobTTL,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil

	case config.JobStoreMemory, "":
		log.Warn("Using in-memory job store; jobs are lost on restart")
		return jobs.NewMemoryStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown JOB_STORE %q", cfg.JobStore)
	}
}
