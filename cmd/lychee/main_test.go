package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trentd187/lychee-cup/internal/config"
	"github.com/trentd187/lychee-cup/internal/middleware"
	"github.com/trentd187/lychee-cup/internal/tournament"
)

func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := newApp(cfg, log, &out).RunContext(context.Background(), append([]string{"lychee"}, args...))
	return out.String(), err
}

func TestToken(t *testing.T) {
	cfg := &config.Config{AdminJWTSecret: "s3cret"}

	out, err := run(t, cfg, "token", "--subject", "ops", "--ttl", "1h")
	require.NoError(t, err)

	claims, err := middleware.ParseToken("s3cret", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.Equal(t, middleware.RoleAdmin, claims.Role)

	_, err = run(t, &config.Config{}, "token")
	assert.ErrorContains(t, err, "ADMIN_JWT_SECRET")
}

func TestExportEmpty(t *testing.T) {
	cfg := &config.Config{StoreBackend: config.BackendMemory, TournamentKey: "cup"}

	out, err := run(t, cfg, "export")
	require.NoError(t, err)
	var s tournament.State
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Empty(t, s.Players)
	assert.Empty(t, s.Matches)
}

func TestImport(t *testing.T) {
	cfg := &config.Config{StoreBackend: config.BackendMemory, TournamentKey: "cup"}
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"players":[{"id":"p1","name":"Alice","status":"normal"}],"matches":[]}`), 0o600))
	_, err := run(t, cfg, "import", good)
	require.NoError(t, err)

	missing := filepath.Join(dir, "missing.json")
	require.NoError(t, os.WriteFile(missing, []byte(`{"players":[]}`), 0o600))
	_, err = run(t, cfg, "import", missing)
	assert.ErrorIs(t, err, tournament.ErrInvalidState)

	_, err = run(t, cfg, "import")
	assert.Error(t, err)
}

func TestResetNeedsConfirmation(t *testing.T) {
	cfg := &config.Config{StoreBackend: config.BackendMemory, TournamentKey: "cup"}

	_, err := run(t, cfg, "reset")
	assert.ErrorContains(t, err, "--yes")

	_, err = run(t, cfg, "reset", "--yes")
	assert.NoError(t, err)
}

func TestMigrateNeedsDatabase(t *testing.T) {
	_, err := run(t, &config.Config{MigrationsPath: "migrations"}, "migrate", "version")
	assert.ErrorContains(t, err, "DATABASE_URL")
}
