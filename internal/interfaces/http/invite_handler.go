package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clientbottle/clientbottle-api/internal/application/dto"
	"github.com/clientbottle/clientbottle-api/internal/application/invite"
	"github.com/clientbottle/clientbottle-api/internal/domain"
)

// InviteHandler maneja convites, confirmación de registro y recuperación de
// contraseña.
type InviteHandler struct {
	uc *invite.UseCase
}

// NewInviteHandler construye el handler.
func NewInviteHandler(uc *invite.UseCase) *InviteHandler {
	return &InviteHandler{uc: uc}
}

// Create godoc
// @Summary      Enviar convite de registro
// @Tags         invite
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        role  query  string  false  "USER | ADMINISTRATOR"
// @Param        body  body   dto.CreateInviteRequest  true  "email"
// @Success      201   {object}  dto.CreateInviteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /invite/ [post]
func (h *InviteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInviteRequest
	if err := c.BodyParser(&in); err != nil {
		return domain.Raise(domain.CodeValidation)
	}
	in.Role = c.Query("role")
	out, err := h.uc.Create(c.Context(), Session(c).IDUser, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateInviteResponse{
		Message: "Convite enviado com sucesso.",
		Invite:  *out,
	})
}

// List GET /invite/ (admin): convites enviados por el usuario de la sesión.
func (h *InviteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), Session(c).IDUser)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete DELETE /invite/?token=|id_invite= (admin).
func (h *InviteHandler) Delete(c *fiber.Ctx) error {
	var sel dto.InviteSelector
	if err := c.QueryParser(&sel); err != nil {
		return domain.Raise(domain.CodeValidation)
	}
	if err := h.uc.Delete(c.Context(), sel); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ConfirmUser POST /user/confirm?token= (público): completa el registro
// creando el usuario y consumiendo el convite.
func (h *InviteHandler) ConfirmUser(c *fiber.Ctx) error {
	var in dto.ConfirmUserRequest
	if err := c.BodyParser(&in); err != nil {
		return domain.Raise(domain.CodeValidation)
	}
	in.Token = c.Query("token")
	out, err := h.uc.ConfirmUser(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RequestRecover POST /user/recover-password (público). La respuesta es
// neutra exista o no la cuenta.
func (h *InviteHandler) RequestRecover(c *fiber.Ctx) error {
	var in dto.RecoverPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return domain.Raise(domain.CodeValidation)
	}
	if err := h.uc.RequestRecover(c.Context(), in.Login); err != nil {
		return err
	}
	return c.JSON(dto.StatusResponse{Detail: "Se a conta existir, um email de recuperação foi enviado."})
}

// ResetPassword PATCH /user/recover-password?token= (público).
func (h *InviteHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return domain.Raise(domain.CodeValidation)
	}
	in.Token = c.Query("token")
	if err := h.uc.ResetPassword(c.Context(), in); err != nil {
		return err
	}
	return c.JSON(dto.StatusResponse{Detail: "Senha atualizada com sucesso."})
}
