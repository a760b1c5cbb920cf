// cmd/lychee/main.go
// Operator CLI for the Lychee Cup tournament document. It reads the same environment as the
// server, so it talks to whichever store STORE_BACKEND selects.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/trentd187/lychee-cup/internal/config"
	"github.com/trentd187/lychee-cup/internal/database"
	"github.com/trentd187/lychee-cup/internal/logging"
	"github.com/trentd187/lychee-cup/internal/middleware"
	"github.com/trentd187/lychee-cup/internal/store"
	"github.com/trentd187/lychee-cup/internal/tournament"
)

func main() {
	cfg := config.Load()
	log := logging.New(os.Stderr, cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(cfg, log, os.Stdout).RunContext(ctx, os.Args); err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newApp(cfg *config.Config, log *slog.Logger, out io.Writer) *cli.App {
	openRepo := func(ctx context.Context) (*store.Tournaments, error) {
		blobs, err := store.Open(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return store.NewTournaments(blobs, cfg.TournamentKey), nil
	}

	return &cli.App{
		Name:      "lychee",
		Usage:     "manage the Lychee Cup tournament document",
		Writer:    out,
		ErrWriter: os.Stderr,
		Commands: []*cli.Command{
			{
				Name:  "token",
				Usage: "print an admin token for the replace and reset endpoints",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "subject", Value: "organiser", Usage: "token subject"},
					&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour, Usage: "token lifetime (0 for no expiry)"},
				},
				Action: func(c *cli.Context) error {
					if cfg.AdminJWTSecret == "" {
						return errors.New("ADMIN_JWT_SECRET is not set")
					}
					token, err := middleware.IssueToken(cfg.AdminJWTSecret, c.String("subject"), middleware.RoleAdmin, c.Duration("ttl"))
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(c.App.Writer, token)
					return err
				},
			},
			{
				Name:  "export",
				Usage: "print the stored tournament as JSON",
				Action: func(c *cli.Context) error {
					repo, err := openRepo(c.Context)
					if err != nil {
						return err
					}
					s, err := repo.Load(c.Context)
					if err != nil {
						return err
					}
					enc := json.NewEncoder(c.App.Writer)
					enc.SetIndent("", "  ")
					return enc.Encode(s)
				},
			},
			{
				Name:      "import",
				Usage:     "replace the stored tournament with a JSON document",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						return errors.New("import needs a file argument")
					}
					raw, err := os.ReadFile(path)
					if err != nil {
						return err
					}
					var doc tournament.State
					if err := json.Unmarshal(raw, &doc); err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					repo, err := openRepo(c.Context)
					if err != nil {
						return err
					}
					s, err := repo.Replace(c.Context, doc)
					if err != nil {
						return err
					}
					log.Info("tournament imported", "key", repo.Key(), "players", len(s.Players), "matches", len(s.Matches), "champions", s.ChampionCount)
					return nil
				},
			},
			{
				Name:  "reset",
				Usage: "delete the stored tournament",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Usage: "confirm the reset"},
				},
				Action: func(c *cli.Context) error {
					if !c.Bool("yes") {
						return fmt.Errorf("refusing to reset %q without --yes", cfg.TournamentKey)
					}
					repo, err := openRepo(c.Context)
					if err != nil {
						return err
					}
					if err := repo.Reset(c.Context); err != nil {
						return err
					}
					log.Warn("tournament reset", "key", repo.Key())
					return nil
				},
			},
			{
				Name:  "migrate",
				Usage: "manage the Postgres schema",
				Subcommands: []*cli.Command{
					{
						Name:  "up",
						Usage: "apply pending migrations",
						Action: func(c *cli.Context) error {
							return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log)
						},
					},
					{
						Name:  "down",
						Usage: "roll back the last migration",
						Action: func(c *cli.Context) error {
							return database.RollbackMigration(cfg.DatabaseURL, cfg.MigrationsPath, log)
						},
					},
					{
						Name:  "version",
						Usage: "print the applied schema version",
						Action: func(c *cli.Context) error {
							version, dirty, ok, err := database.MigrationVersion(cfg.DatabaseURL, cfg.MigrationsPath)
							if err != nil {
								return err
							}
							if !ok {
								_, err = fmt.Fprintln(c.App.Writer, "no migrations applied")
								return err
							}
							_, err = fmt.Fprintf(c.App.Writer, "version %d (dirty: %t)\n", version, dirty)
							return err
						},
					},
				},
			},
		},
	}
}
