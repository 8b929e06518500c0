package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"shopping/internal/repositories"
)

func TestBuildApp(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	userRepo := repositories.NewMockUserRepository()

	app := buildApp(productRepo, userRepo, nil, "test_jwt_secret")

	t.Run("HealthCheck", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("ListingIsPublic", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("WritesAreGuarded", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})
}
