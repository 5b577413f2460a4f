package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/clientbottle/clientbottle-api/internal/interfaces/http"
	"github.com/clientbottle/clientbottle-api/pkg/jwt"
	"github.com/clientbottle/clientbottle-api/pkg/logger"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp construye una aplicación Fiber mínima con el ErrorHandler real,
// una ruta protegida y una ruta solo-admin.
func buildTestApp() *fiber.App {
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})

	protected := app.Group("/", apphttp.AuthMiddleware(testJWTSecret))
	protected.Get("/protected", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"username": apphttp.Session(c).Username})
	})

	admin := protected.Group("/", apphttp.RequireAdmin())
	admin.Get("/admin-only", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func tokenFor(t *testing.T, role string, active bool, expiresAt time.Time) string {
	t.Helper()
	tok, err := jwt.Generate(testJWTSecret, jwt.UserSnapshot{
		IDUser:         42,
		Username:       "maria",
		Email:          "maria@example.com",
		FullName:       "Maria Souza",
		Role:           role,
		FlActive:       active,
		CreationUserID: 1,
		CreatedAt:      time.Now(),
	}, expiresAt)
	require.NoError(t, err)
	return tok
}

func doRequest(t *testing.T, app *fiber.App, path string, headers map[string]string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinToken_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/protected", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyOf(t, resp), "AUTHENTICATION_REQUIRED")
}

func TestAuthMiddleware_BearerValido_Pasa(t *testing.T) {
	app := buildTestApp()
	tok := tokenFor(t, "USER", true, time.Now().Add(time.Hour))
	resp := doRequest(t, app, "/protected", map[string]string{"Authorization": "Bearer " + tok})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyOf(t, resp), "maria")
}

func TestAuthMiddleware_XAPIKeyValido_Pasa(t *testing.T) {
	app := buildTestApp()
	tok := tokenFor(t, "USER", true, time.Now().Add(time.Hour))
	resp := doRequest(t, app, "/protected", map[string]string{"X-API-KEY": tok})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyOf(t, resp), "maria")
}

func TestAuthMiddleware_AuthorizationGanaSobreXAPIKey(t *testing.T) {
	app := buildTestApp()
	tok := tokenFor(t, "USER", true, time.Now().Add(time.Hour))
	resp := doRequest(t, app, "/protected", map[string]string{
		"Authorization": "Bearer " + tok,
		"X-API-KEY":     "token.invalido.aqui",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode, "Authorization válido debe ganar sobre un X-API-KEY basura")
	resp.Body.Close()
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	app := buildTestApp()
	tok := tokenFor(t, "USER", true, time.Now().Add(-time.Minute))
	resp := doRequest(t, app, "/protected", map[string]string{"Authorization": "Bearer " + tok})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyOf(t, resp), "SESSION_EXPIRED")
}

func TestAuthMiddleware_TokenMalformado_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/protected", map[string]string{"Authorization": "Bearer token.invalido.aqui"})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyOf(t, resp), "TOKEN_INVALID")
}

func TestAuthMiddleware_CuentaInactiva_Retorna403(t *testing.T) {
	app := buildTestApp()
	tok := tokenFor(t, "USER", false, time.Now().Add(time.Hour))
	resp := doRequest(t, app, "/protected", map[string]string{"Authorization": "Bearer " + tok})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyOf(t, resp), "USER_INACTIVE")
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAdmin_AdminPasa(t *testing.T) {
	app := buildTestApp()
	tok := tokenFor(t, "ADMINISTRATOR", true, time.Now().Add(time.Hour))
	resp := doRequest(t, app, "/admin-only", map[string]string{"Authorization": "Bearer " + tok})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestRequireAdmin_UserBloqueado(t *testing.T) {
	app := buildTestApp()
	tok := tokenFor(t, "USER", true, time.Now().Add(time.Hour))
	resp := doRequest(t, app, "/admin-only", map[string]string{"Authorization": "Bearer " + tok})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyOf(t, resp), "ACCESS_DENIED")
}
