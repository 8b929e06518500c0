package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"shopping/internal/middleware"
	"shopping/internal/repositories"
	"shopping/internal/services"
)

const testSecret = "test_jwt_secret"

func signToken(t *testing.T, isAdmin bool, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "64a000000000000000000001",
		"username": "someone",
		"is_admin": isAdmin,
		"exp":      time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return signed
}

func gateApp(gate fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", gate, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"username": c.Locals("username"),
			"is_admin": c.Locals("is_admin"),
		})
	})
	return app
}

func request(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func TestAuthRequired(t *testing.T) {
	authService := services.NewAuthService(repositories.NewMockUserRepository(), testSecret)
	app := gateApp(middleware.AuthRequired(authService))

	// No header
	resp := request(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Wrong scheme
	resp = request(t, app, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Garbage token
	resp = request(t, app, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Expired token
	resp = request(t, app, "Bearer "+signToken(t, false, -time.Hour))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Valid token passes through, admin or not
	resp = request(t, app, "Bearer "+signToken(t, false, time.Hour))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminRequired(t *testing.T) {
	authService := services.NewAuthService(repositories.NewMockUserRepository(), testSecret)
	app := gateApp(middleware.AdminRequired(authService))

	// No token: unauthorized, not forbidden
	resp := request(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Authenticated but not admin: forbidden
	resp = request(t, app, "Bearer "+signToken(t, false, time.Hour))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Admin passes
	resp = request(t, app, "Bearer "+signToken(t, true, time.Hour))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
