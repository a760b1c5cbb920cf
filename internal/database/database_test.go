package database

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Connecting to a real server is left to deployment; these cover the configuration guards.
func TestRequiresDSN(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := Connect("", false)
	assert.ErrorContains(t, err, "DATABASE_URL")

	assert.ErrorContains(t, RunMigrations("", "migrations", log), "DATABASE_URL")
	assert.ErrorContains(t, RollbackMigration("", "migrations", log), "DATABASE_URL")

	_, _, _, err = MigrationVersion("", "migrations")
	assert.ErrorContains(t, err, "DATABASE_URL")
}
