package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clientbottle/clientbottle-api/internal/application/report"
)

// ReportHandler genera y sube el reporte mensual.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Generate POST /generate-report/ — PDF del mes en curso subido al bucket.
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	out, err := h.uc.Generate(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}
