package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ngondo96v1/NDV26V/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_RateLimitedResponseCarriesCORS(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg := &config.Config{
		AppMode:   "dev",
		RateLimit: config.RateLimitConfig{Max: 1},
	}
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	Setup(app, cfg, nil)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	send := func() *http.Response {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://example.com")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	first := send()
	assert.Equal(t, http.StatusOK, first.StatusCode)
	assert.Equal(t, "*", first.Header.Get("Access-Control-Allow-Origin"))

	second := send()
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.Equal(t, "*", second.Header.Get("Access-Control-Allow-Origin"))
}
