// Package config handles loading runtime configuration for the Lychee Cup API.
// Values are read from environment variables (optionally seeded from a .env file) so the same
// binary runs locally against the in-memory store and in production against Postgres or R2.
package config

import (
	"os"
	"strings"
	"time"

	// godotenv reads a .env file and loads its key=value pairs into the process environment.
	"github.com/joho/godotenv"
	// slug turns the tournament's display name into a stable storage key.
	"github.com/gosimple/slug"
)

// Storage backends for the tournament document.
const (
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendMemory   = "memory"
)

// Config holds all runtime configuration values for the application.
type Config struct {
	Port     string // TCP port the HTTP server listens on (e.g. "8080")
	Env      string // "development", "staging", or "production"
	LogLevel string // debug, info, warn, error

	StoreBackend   string // One of the Backend* constants
	DatabaseURL    string // PostgreSQL connection string; required for the postgres backend
	MigrationsPath string // Directory holding golang-migrate SQL files

	TournamentName string // Display name; the document key is derived from it
	TournamentKey  string // Key the whole tournament document is stored under

	AllowedOrigins string        // Comma-separated CORS origins; "*" allows any
	AdminJWTSecret string        // HS256 secret for admin tokens; empty disables the admin guard
	SyncInterval   time.Duration // How often the sync worker re-reads the stored document

	S3 S3Config
}

// S3Config describes an S3-compatible bucket (AWS S3 or Cloudflare R2).
type S3Config struct {
	Endpoint        string // Custom endpoint, e.g. https://<account>.r2.cloudflarestorage.com
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

// Load reads configuration from environment variables and returns a populated Config.
// A missing .env file is fine: in production the platform sets real environment variables.
func Load() *Config {
	_ = godotenv.Load()

	name := getenv("TOURNAMENT_NAME", "Guiwei Cup")

	return &Config{
		Port:     getenv("PORT", "8080"),
		Env:      getenv("ENV", "development"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		StoreBackend:   strings.ToLower(getenv("STORE_BACKEND", BackendPostgres)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: getenv("MIGRATIONS_PATH", "migrations"),

		TournamentName: name,
		TournamentKey:  DocumentKey(name),

		AllowedOrigins: getenv("ALLOWED_ORIGINS", "*"),
		AdminJWTSecret: os.Getenv("ADMIN_JWT_SECRET"),
		SyncInterval:   getDuration("SYNC_INTERVAL", 3*time.Second),

		S3: S3Config{
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			Region:          getenv("S3_REGION", "auto"),
			Bucket:          os.Getenv("S3_BUCKET"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		},
	}
}

// DocumentKey derives the storage key for a tournament name:
// "Guiwei Cup" → "guiwei-cup-tournament-data".
func DocumentKey(name string) string {
	s := slug.Make(name)
	if s == "" {
		s = "tournament"
	}
	return s + "-tournament-data"
}

// IsProduction reports whether the server runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Origins returns the CORS origins as a trimmed, comma-joined list, the format Fiber's cors
// middleware expects.
func (c *Config) Origins() string {
	parts := strings.Split(c.AllowedOrigins, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ",")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration parses a Go duration ("5s", "1m"); unparsable or non-positive values fall back.
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
