package auth_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	coreauth "stocktake/core/auth"
	"stocktake/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func buildApp() *fiber.App {
	app := fiber.New()
	app.Use(auth.New(auth.Config{Secret: testSecret, Skip: []string{"/swagger"}}))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(auth.ActorFrom(c))
	})
	app.Get("/swagger/index.html", func(c *fiber.Ctx) error {
		return c.SendString("docs")
	})
	return app
}

func TestMiddleware(t *testing.T) {
	app := buildApp()
	actor := coreauth.Actor{ID: "u-1", Name: "Jan", Role: coreauth.RoleAdmin}
	token, err := coreauth.Issue(testSecret, "stocktake", actor, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"Missing header", "/whoami", "", fiber.StatusUnauthorized},
		{"Wrong scheme", "/whoami", "Basic " + token, fiber.StatusUnauthorized},
		{"Bad token", "/whoami", "Bearer nope", fiber.StatusUnauthorized},
		{"Valid token", "/whoami", "Bearer " + token, fiber.StatusOK},
		{"Skipped prefix", "/swagger/index.html", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	var got coreauth.Actor
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, actor, got)
}
