package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Manel-Mahdjoubi/novexa/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/private", JWTMiddleware, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": c.Locals("userId"),
			"role":   c.Locals("role"),
		})
	})
	return app
}

func TestJWTMiddleware(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	app := newJWTTestApp()

	token, err := GenerateJWT(42, "Ada Lovelace", "STUDENT", "ada@novexa.app")
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "valid token", authHeader: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "no bearer prefix", authHeader: token, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer not.a.jwt", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.authHeader != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.authHeader)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestJWTMiddlewareRejectsForeignSignature(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "first-secret"}
	token, err := GenerateJWT(42, "Ada Lovelace", "STUDENT", "ada@novexa.app")
	require.NoError(t, err)

	// Same token, different server key.
	config.AppConfig = &config.Config{JWTKey: "second-secret"}
	app := newJWTTestApp()

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
