package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clientbottle/clientbottle-api/internal/application/auth"
	"github.com/clientbottle/clientbottle-api/internal/application/dto"
	"github.com/clientbottle/clientbottle-api/internal/domain"
)

// AuthHandler maneja login, sesión y administración de usuarios.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email_or_username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /auth/login/ [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return domain.Raise(domain.CodeValidation)
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuario de la sesión
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Router       /auth/me/ [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	s := Session(c)
	return c.JSON(dto.UserResponse{
		IDUser:         s.IDUser,
		Username:       s.Username,
		Email:          s.Email,
		FullName:       s.FullName,
		Role:           s.Role,
		FlActive:       s.FlActive,
		CreationUserID: s.CreationUserID,
		CreatedAt:      s.CreatedAt,
		UpdateUserID:   s.UpdateUserID,
		UpdatedAt:      s.UpdatedAt,
	})
}

// ListUsers GET /auth/users/ (admin): todos los usuarios, activos e inactivos.
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeactivateUser PATCH /auth/users/deactivate?id|email|username (admin).
func (h *AuthHandler) DeactivateUser(c *fiber.Ctx) error {
	return h.setActive(c, false)
}

// ReactivateUser PATCH /auth/users/reactivate?id|email|username (admin).
func (h *AuthHandler) ReactivateUser(c *fiber.Ctx) error {
	return h.setActive(c, true)
}

func (h *AuthHandler) setActive(c *fiber.Ctx, active bool) error {
	var sel dto.UserSelectorRequest
	if err := c.QueryParser(&sel); err != nil {
		return domain.Raise(domain.CodeValidation)
	}
	out, err := h.uc.SetActive(c.Context(), Session(c).IDUser, sel, active)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeactivateSelf PATCH /auth/me/deactivate: la cuenta queda auto-desactivada
// y se reactiva sola en el próximo login.
func (h *AuthHandler) DeactivateSelf(c *fiber.Ctx) error {
	if err := h.uc.DeactivateSelf(c.Context(), Session(c).IDUser); err != nil {
		return err
	}
	return c.JSON(dto.StatusResponse{Detail: "Conta desativada."})
}

// DeleteSelf DELETE /auth/me/: borrado físico de la cuenta y sus tokens.
func (h *AuthHandler) DeleteSelf(c *fiber.Ctx) error {
	if err := h.uc.DeleteSelf(c.Context(), Session(c).IDUser); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
