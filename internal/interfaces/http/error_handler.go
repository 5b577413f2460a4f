package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/clientbottle/clientbottle-api/internal/application/dto"
	"github.com/clientbottle/clientbottle-api/internal/domain"
	"github.com/clientbottle/clientbottle-api/pkg/logger"
)

// ErrorHandler traduce errores al sobre {"errors":[{code,message}]}. Los
// errores de dominio llevan su propio status y catálogo; cualquier otra cosa
// es un 500 opaco para el cliente y un log completo para nosotros.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var derr *domain.Error
		if errors.As(err, &derr) {
			items := make([]dto.ErrorItem, 0, len(derr.Items))
			for _, it := range derr.Items {
				items = append(items, dto.ErrorItem{Code: it.Code, Message: it.Message})
			}
			return c.Status(derr.Status).JSON(dto.ErrorResponse{Errors: items})
		}

		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			code := domain.CodeValidation
			switch {
			case ferr.Code == fiber.StatusNotFound:
				code = domain.CodeNotFound
			case ferr.Code >= 500:
				code = domain.CodeInternal
			}
			return c.Status(ferr.Code).JSON(dto.ErrorResponse{
				Errors: []dto.ErrorItem{{Code: code.Code, Message: code.Message}},
			})
		}

		l := log
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			l = l.WithRequest(rid)
		}
		l.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error no manejado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Errors: []dto.ErrorItem{{Code: domain.CodeInternal.Code, Message: domain.CodeInternal.Message}},
		})
	}
}
