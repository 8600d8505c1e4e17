package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/zkeq/Self-Cinema/modules/auth"
)

// AdminContextKey is the Locals key holding the authenticated admin's claims.
const AdminContextKey = "admin"

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Empty string means the header is missing, a different scheme, or
// carries no token.
func bearerToken(c *fiber.Ctx) string {
	scheme, token, ok := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}

// AuthMiddleware guards the admin routes. It resolves the bearer token
// through the auth module and stores the resulting claims under
// AdminContextKey for downstream handlers.
func AuthMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return unauthorized(c, "bearer token required")
		}

		claims, err := authPort.ValidateToken(c.UserContext(), token)
		if err != nil {
			return unauthorized(c, "invalid or expired token")
		}

		c.Locals(AdminContextKey, claims)
		return c.Next()
	}
}
