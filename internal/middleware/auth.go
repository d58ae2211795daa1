package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/retailops/internal/authz"
	"github.com/example/retailops/internal/config"
	"github.com/example/retailops/internal/utils"
)

const actorContextKey = "currentActor"

// AuthMiddleware validates JWT tokens and loads the authenticated actor into context.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		claims, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(actorContextKey, authz.Actor{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  claims.Role,
		})
		return c.Next()
	}
}

// CurrentActor extracts the authenticated actor from context.
func CurrentActor(c *fiber.Ctx) (authz.Actor, bool) {
	value := c.Locals(actorContextKey)
	if value == nil {
		return authz.Actor{}, false
	}

	if actor, ok := value.(authz.Actor); ok {
		return actor, true
	}

	return authz.Actor{}, false
}
