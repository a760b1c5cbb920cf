// cmd/server/main.go
// Entry point for the Lychee Cup API server: it loads configuration, opens the configured
// document store, starts the live update hub and the sync worker, and serves the HTTP API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trentd187/lychee-cup/internal/config"
	"github.com/trentd187/lychee-cup/internal/handlers"
	"github.com/trentd187/lychee-cup/internal/live"
	"github.com/trentd187/lychee-cup/internal/logging"
	"github.com/trentd187/lychee-cup/internal/metrics"
	"github.com/trentd187/lychee-cup/internal/store"
	"github.com/trentd187/lychee-cup/internal/tournament"
	"github.com/trentd187/lychee-cup/internal/workers"
)

func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	blobs, err := store.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	repo := store.NewTournaments(blobs, cfg.TournamentKey)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Streams end when the hub stops, which happens as soon as shutdown begins.
	hub := live.NewHub()
	go hub.Run(ctx)

	deps := &handlers.Deps{
		Tournaments: repo,
		Reducer:     tournament.NewReducer(),
		Hub:         hub,
		Metrics:     m,
		Log:         log,
	}

	syncer := workers.NewStateSync(repo, func(s tournament.State, payload []byte) {
		m.Observe(s)
		hub.Broadcast(repo.Key(), payload)
	}, log)
	deps.Sync = syncer
	if err := syncer.Tick(ctx); err != nil {
		return fmt.Errorf("load tournament %q: %w", repo.Key(), err)
	}
	sched, err := syncer.Start(ctx, cfg.SyncInterval)
	if err != nil {
		return fmt.Errorf("start sync worker: %w", err)
	}
	defer func() {
		if err := sched.Shutdown(); err != nil {
			log.Warn("stop sync worker", "error", err)
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:               "Lychee Cup API",
		DisableStartupMessage: cfg.IsProduction(),
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Origins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	handlers.SetupRoutes(app, deps, cfg.AdminJWTSecret)

	if cfg.AdminJWTSecret == "" {
		log.Warn("ADMIN_JWT_SECRET is not set; replace and reset are open to everyone")
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("starting server", "port", cfg.Port, "store", cfg.StoreBackend, "key", repo.Key())
		errc <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	return app.ShutdownWithTimeout(10 * time.Second)
}
