package store

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trentd187/lychee-cup/internal/config"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	blobs, err := Open(ctx, &config.Config{StoreBackend: config.BackendMemory}, log)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, blobs)

	_, err = Open(ctx, &config.Config{StoreBackend: config.BackendS3}, log)
	assert.ErrorContains(t, err, "S3_BUCKET")

	_, err = Open(ctx, &config.Config{StoreBackend: config.BackendPostgres}, log)
	assert.ErrorContains(t, err, "DATABASE_URL")

	_, err = Open(ctx, &config.Config{StoreBackend: "redis"}, log)
	assert.ErrorContains(t, err, "unknown STORE_BACKEND")
}
