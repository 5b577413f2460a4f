package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/clientbottle/clientbottle-api/internal/application/dto"
	"github.com/clientbottle/clientbottle-api/internal/application/transaction"
	"github.com/clientbottle/clientbottle-api/internal/domain"
)

// TransactionHandler maneja las transacciones de botellas.
type TransactionHandler struct {
	uc *transaction.UseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *transaction.UseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// List godoc
// @Summary      Listar transacciones activas
// @Tags         transaction
// @Produce      json
// @Security     BearerAuth
// @Param        page         query  int     false  "página (default 1)"
// @Param        size         query  int     false  "tamaño (default 50)"
// @Param        term         query  string  false  "búsqueda por nombre, teléfono, registrador o marca"
// @Param        date_filter  query  string  false  "fecha exacta YYYY-MM-DD"
// @Success      200  {object}  dto.TransactionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /transaction/ [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var in dto.ListTransactionsRequest
	if err := c.QueryParser(&in); err != nil {
		return domain.Raise(domain.CodeValidation)
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar transacción
// @Tags         transaction
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateTransactionRequest  true  "cliente + ítems"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /transaction/ [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return domain.Raise(domain.CodeValidation)
	}
	s := Session(c)
	out, err := h.uc.Create(c.Context(), s.IDUser, s.FullName, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /transaction/:id — actualización parcial.
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in dto.UpdateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return domain.Raise(domain.CodeValidation)
	}
	out, err := h.uc.Update(c.Context(), Session(c).IDUser, id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Deactivate DELETE /transaction/:id — borrado lógico, la fila queda para el reporte.
func (h *TransactionHandler) Deactivate(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Deactivate(c.Context(), Session(c).IDUser, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Raise(domain.CodeValidation)
	}
	return id, nil
}
