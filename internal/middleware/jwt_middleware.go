package middleware

import (
	"fmt"
	"log"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"

	"shopping/internal/services"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := bearerClaims(c, authService)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		storeClaims(c, claims)
		return c.Next()
	}
}

// AdminRequired checks for a valid JWT token whose is_admin claim is set.
// Authenticated non-admin callers get 403, everyone else 401.
func AdminRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := bearerClaims(c, authService)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": err.Error(),
			})
		}

		isAdmin, _ := claims["is_admin"].(bool)
		if !isAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin privileges required",
			})
		}

		storeClaims(c, claims)
		return c.Next()
	}
}

// bearerClaims extracts and validates the Bearer token from the request.
func bearerClaims(c *fiber.Ctx, authService *services.AuthService) (jwt.MapClaims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("Authorization header is required")
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return nil, fmt.Errorf("Authorization header format must be 'Bearer <token>'")
	}

	claims, err := authService.ValidateToken(parts[1])
	if err != nil {
		log.Printf("JWT validation failed: %v", err)
		return nil, fmt.Errorf("Invalid or expired token")
	}
	return claims, nil
}

func storeClaims(c *fiber.Ctx, claims jwt.MapClaims) {
	// Store claims in Fiber context for subsequent handlers
	c.Locals("user_id", claims["user_id"])
	c.Locals("username", claims["username"])
	c.Locals("is_admin", claims["is_admin"])
}
