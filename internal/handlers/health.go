package handlers

import "github.com/gofiber/fiber/v2"

// HealthCheck handles GET /health.
// No storage access: it only tells probes the process is serving requests.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadyCheck handles GET /ready. It reports 503 until the tournament document can be read.
func ReadyCheck(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := d.Tournaments.Load(c.UserContext()); err != nil {
			d.Log.Warn("readiness check failed", "error", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
			})
		}
		return c.JSON(fiber.Map{"status": "ok", "tournament": d.Tournaments.Key()})
	}
}
