package auth

import (
	"strings"

	coreauth "stocktake/core/auth"

	"github.com/gofiber/fiber/v2"
)

// LocalKey is the Fiber locals key holding the authenticated auth.Actor.
const LocalKey = "actor"

// Config configures the bearer token middleware.
type Config struct {
	// Secret verifies HS256 signatures.
	Secret string
	// Skip lists path prefixes served without authentication.
	Skip []string
}

// New returns a middleware that requires a valid bearer token and stores the
// actor it identifies in the request locals.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, prefix := range cfg.Skip {
			if strings.HasPrefix(c.Path(), prefix) {
				return c.Next()
			}
		}

		header := c.Get(fiber.HeaderAuthorization)
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "bearer token required"})
		}

		actor, err := coreauth.Parse(cfg.Secret, strings.TrimSpace(parts[1]))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(LocalKey, actor)
		return c.Next()
	}
}

// ActorFrom returns the actor stored by New, or the zero Actor.
func ActorFrom(c *fiber.Ctx) coreauth.Actor {
	if a, ok := c.Locals(LocalKey).(coreauth.Actor); ok {
		return a
	}
	return coreauth.Actor{}
}
