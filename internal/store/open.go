package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trentd187/lychee-cup/internal/config"
	"github.com/trentd187/lychee-cup/internal/database"
)

// Open returns the blob store selected by cfg.StoreBackend. The postgres backend applies
// pending migrations before returning.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (Blob, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err := database.Connect(cfg.DatabaseURL, cfg.LogLevel == "debug")
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		return NewPostgres(db), nil

	case config.BackendS3:
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required for the %s backend", config.BackendS3)
		}
		client, err := NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("configure s3: %w", err)
		}
		return NewS3(client, cfg.S3.Bucket), nil

	case config.BackendMemory:
		log.Warn("using the in-memory store; data is lost on restart")
		return NewMemory(), nil

	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}
