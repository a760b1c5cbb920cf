// Package middleware contains HTTP middleware for the Lychee Cup API.
// Players register and record matches without signing in; the only protected routes are the
// ones that overwrite or wipe the whole tournament document, which require an admin token.
package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the role claim that unlocks destructive document routes.
const RoleAdmin = "admin"

// Claims is the payload of an admin token.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// AdminAuth returns a middleware that validates an HS256 bearer token signed with secret and
// stores its subject and role in c.Locals ("userID", "userRole") for RequireRole.
//
// An empty secret disables the check and marks every request as admin, which keeps local
// development and the original single-page front end working without tokens.
func AdminAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			c.Locals("userRole", RoleAdmin)
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing or invalid authorization header",
			})
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := ParseToken(secret, tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		c.Locals("userID", claims.Subject)
		c.Locals("userRole", claims.Role)
		return c.Next()
	}
}

// ParseToken verifies tokenStr against secret and returns its claims.
// Only HS256 is accepted; expiry is enforced when the token carries one.
func ParseToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}
	return claims, nil
}

// IssueToken signs a token for subject with role, valid for ttl (no expiry when ttl is 0).
func IssueToken(secret, subject, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Role: role,
	}
	if ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
