package main

import (
	"context"
	"fmt"

	"krisik-bazar/internal/config"
	"krisik-bazar/internal/database"
	"krisik-bazar/internal/store"

	"github.com/rs/zerolog"
)

// openStore builds the backend named by cfg.Store.Backend. The returned close
// func releases whatever the backend holds and is never nil.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (store.Store, func(), error) {
	noop := func() {}

	switch cfg.Store.Backend {
	case config.BackendMemory:
		logger.Warn().Msg("using in-memory store, sessions and user products will not survive a restart")
		return store.NewMemory(), noop, nil

	case config.BackendSQLite:
		s, err := store.NewSQLite(ctx, cfg.Store.SQLitePath, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return s, func() {
			if err := s.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close sqlite store")
			}
		}, nil

	case config.BackendPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to initialize database: %w", err)
		}
		s, err := store.NewPostgres(ctx, pool, logger)
		if err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return s, pool.Close, nil

	case config.BackendS3:
		s, err := store.NewS3(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open s3 store: %w", err)
		}
		return s, noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}
