package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/RubenLpc/BucovinaStay-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupMiddleware_SecurityHeadersAndIDs(t *testing.T) {
	tests := []struct {
		name      string
		tracing   bool
		wantTrace bool
	}{
		{"tracing off", false, false},
		{"tracing on", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := middlewareApp(t, &config.Config{AllowedOrigins: frontend, TracingEnabled: tt.tracing})
			resp := send(t, app, http.MethodGet, "/api/listings", nil)

			require.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
			assert.NotEmpty(t, resp.Header.Get("X-Frame-Options"))
			assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
			assert.Equal(t, tt.wantTrace, resp.Header.Get("X-Trace-ID") != "")
		})
	}
}

func TestSetupMiddleware_RecoversFromPanic(t *testing.T) {
	app := middlewareApp(t, &config.Config{AllowedOrigins: frontend})
	app.Get("/api/boom", func(c *fiber.Ctx) error { panic("listing cache corrupted") })

	resp := send(t, app, http.MethodGet, "/api/boom", nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestLivenessCheck(t *testing.T) {
	s := &Server{}
	app := fiber.New()
	app.Get("/health/live", s.LivenessCheck)

	resp := send(t, app, http.MethodGet, "/health/live", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "up", body["status"])
}
