// Command check-storage verifies that the configured record store backend is
// reachable with the current environment before deploying the backend proper.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/healthlens/backend/internal/config"
	"github.com/healthlens/backend/internal/repository"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("=== Checking record store backend ===",
		zap.String("backend", cfg.Storage.Backend),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, cleanup, err := buildStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize record store", zap.Error(err))
	}
	defer cleanup()

	data, err := store.LoadAll(ctx)
	if err != nil {
		logger.Fatal("Failed to read health document", zap.Error(err))
	}

	logger.Info("Record store is reachable",
		zap.Int("health_records", len(data.HealthRecords)),
		zap.Float64("overall_score", data.Summary.OverallScore),
		zap.String("last_updated", data.Summary.LastUpdated),
	)

	for category, score := range data.Summary.CategoryScores {
		logger.Info("Category score", zap.String("category", category), zap.Float64("score", score))
	}

	logger.Info("=== Check completed ===")
}

func buildStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.RecordStore, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case config.BackendJSONBlob:
		store, err := repository.NewJSONBlobStore(
			cfg.Storage.JSONBlob.BaseURL,
			cfg.Storage.JSONBlob.BlobID,
			cfg.Storage.JSONBlob.RequestTimeout,
			logger,
		)
		return store, noop, err

	case config.BackendAzure:
		store, err := repository.NewAzureBlobStore(
			cfg.Storage.Azure.AccountName,
			cfg.Storage.Azure.AccountKey,
			cfg.Storage.Azure.Container,
			cfg.Storage.Azure.BlobName,
			logger,
		)
		return store, noop, err

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.Storage.Postgres.URL)
		if err != nil {
			return nil, noop, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		store := repository.NewPostgresStore(pool, logger)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return store, pool.Close, nil
	}

	return nil, noop, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
}
