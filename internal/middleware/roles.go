package middleware

import "github.com/gofiber/fiber/v2"

// RequireRole returns a middleware that only lets through requests whose "userRole" local
// (set by AdminAuth) is one of roles. Anything else gets 403 Forbidden.
//
//	api.Delete("/tournament", middleware.AdminAuth(secret), middleware.RequireRole(middleware.RoleAdmin), handlers.ResetTournament(deps))
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole, ok := c.Locals("userRole").(string)
		if !ok || userRole == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "forbidden",
			})
		}

		for _, role := range roles {
			if userRole == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}
}
