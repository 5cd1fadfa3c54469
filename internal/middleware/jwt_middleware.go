package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"styleshop/internal/services"
)

// AuthRequired is a Fiber middleware that checks for a valid JWT token and
// stores the caller's identity in the request context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals("user_id", claims["user_id"])
		c.Locals("email", claims["email"])
		return c.Next()
	}
}

// UserID extracts the authenticated user's id stored by AuthRequired. JWT
// numeric claims decode as float64.
func UserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("user_id").(float64)
	if !ok || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
