package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientbottle/clientbottle-api/internal/application/dto"
	"github.com/clientbottle/clientbottle-api/internal/domain"
	apphttp "github.com/clientbottle/clientbottle-api/internal/interfaces/http"
	"github.com/clientbottle/clientbottle-api/pkg/logger"
)

func errorApp(handler fiber.Handler) *fiber.App {
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	app.Use(requestid.New())
	app.Get("/boom", handler)
	return app
}

func getBoom(t *testing.T, app *fiber.App) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestErrorHandler_ErrorDeDominio(t *testing.T) {
	app := errorApp(func(c *fiber.Ctx) error {
		return domain.Raise(domain.CodeAmbiguousSelector)
	})

	resp, body := getBoom(t, app)
	assert.Equal(t, 409, resp.StatusCode)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "AMBIGUOUS_SELECTOR", body.Errors[0].Code)
}

func TestErrorHandler_MensajeAdHoc(t *testing.T) {
	app := errorApp(func(c *fiber.Ctx) error {
		return domain.RaiseMsg(domain.CodeValidation, "Data inválida. Use o formato AAAA-MM-DD.")
	})

	resp, body := getBoom(t, app)
	assert.Equal(t, 400, resp.StatusCode)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "VALIDATION", body.Errors[0].Code)
	assert.Equal(t, "Data inválida. Use o formato AAAA-MM-DD.", body.Errors[0].Message)
}

func TestErrorHandler_ErrorNoManejado(t *testing.T) {
	app := errorApp(func(c *fiber.Ctx) error {
		return errors.New("falló algo interno")
	})

	resp, body := getBoom(t, app)
	assert.Equal(t, 500, resp.StatusCode)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "INTERNAL", body.Errors[0].Code)
	assert.NotContains(t, body.Errors[0].Message, "falló algo interno", "los detalles internos no se filtran")
}
