package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clientbottle/clientbottle-api/internal/application/brand"
	"github.com/clientbottle/clientbottle-api/internal/application/dto"
	"github.com/clientbottle/clientbottle-api/internal/domain"
)

// BottleBrandHandler maneja las marcas de botella.
type BottleBrandHandler struct {
	uc *brand.UseCase
}

// NewBottleBrandHandler construye el handler.
func NewBottleBrandHandler(uc *brand.UseCase) *BottleBrandHandler {
	return &BottleBrandHandler{uc: uc}
}

// Create POST /bottle-brand/
func (h *BottleBrandHandler) Create(c *fiber.Ctx) error {
	var in dto.BottleBrandRequest
	if err := c.BodyParser(&in); err != nil {
		return domain.Raise(domain.CodeValidation)
	}
	out, err := h.uc.Create(c.Context(), Session(c).IDUser, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /bottle-brand/
func (h *BottleBrandHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Search GET /bottle-brand/search?id|name — por id o nombre parcial, nunca los dos.
func (h *BottleBrandHandler) Search(c *fiber.Ctx) error {
	sel, err := querySelector(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.Context(), sel)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Rename PATCH /bottle-brand/ {id_bottle_brand|name, new_name}
func (h *BottleBrandHandler) Rename(c *fiber.Ctx) error {
	var in struct {
		dto.BottleBrandSelector
		NewName string `json:"new_name"`
	}
	if err := c.BodyParser(&in); err != nil {
		return domain.Raise(domain.CodeValidation)
	}
	b, err := h.uc.Get(c.Context(), in.BottleBrandSelector)
	if err != nil {
		return err
	}
	out, err := h.uc.Rename(c.Context(), Session(c).IDUser, b.IDBottleBrand, dto.BottleBrandRequest{Name: in.NewName})
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete DELETE /bottle-brand/?id|name — borrado físico.
func (h *BottleBrandHandler) Delete(c *fiber.Ctx) error {
	sel, err := querySelector(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), sel); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func querySelector(c *fiber.Ctx) (dto.BottleBrandSelector, error) {
	var sel struct {
		ID   *int64  `query:"id"`
		Name *string `query:"name"`
	}
	if err := c.QueryParser(&sel); err != nil {
		return dto.BottleBrandSelector{}, domain.Raise(domain.CodeValidation)
	}
	return dto.BottleBrandSelector{IDBottleBrand: sel.ID, Name: sel.Name}, nil
}
