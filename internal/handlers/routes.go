package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trentd187/lychee-cup/internal/middleware"
)

// SetupRoutes registers the health probes and every /api/tournament route on app.
// Only replacing and resetting the whole document sit behind the admin guard.
func SetupRoutes(app *fiber.App, d *Deps, adminSecret string) {
	app.Get("/health", HealthCheck)
	app.Get("/ready", ReadyCheck(d))

	admin := []fiber.Handler{middleware.AdminAuth(adminSecret), middleware.RequireRole(middleware.RoleAdmin)}

	api := app.Group("/api/tournament")
	api.Get("/", GetTournament(d))
	api.Post("/", append(admin, ReplaceTournament(d))...)
	api.Delete("/", append(admin, ResetTournament(d))...)

	api.Get("/leaderboard", GetLeaderboard(d))
	api.Get("/scoring", GetScoringTable)
	api.Get("/stream", StreamTournament(d))

	api.Post("/players", RegisterPlayer(d))
	api.Post("/matches", RecordMatch(d))
	api.Delete("/matches/:id", DeleteMatch(d))
}
