package dto

// CreateInviteRequest entrada para enviar una invitación por email. El rol
// llega por query string.
type CreateInviteRequest struct {
	Email string `json:"email"`
	Role  string `query:"role"`
}

// InviteSelector selector token-o-id para borrar un convite.
type InviteSelector struct {
	Token    *string `query:"token"`
	IDInvite *int64  `query:"id_invite"`
}

// InviteResponse invitación en respuestas.
type InviteResponse struct {
	IDInvite  int64  `json:"id_invite"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"created_at"`
	ExpiresAt int64  `json:"expires_at"`
}

// CreateInviteResponse salida del envío de invitación.
type CreateInviteResponse struct {
	Message string         `json:"message"`
	Invite  InviteResponse `json:"invite"`
}

// ConfirmUserResponse salida del registro completado.
type ConfirmUserResponse struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	FlActive bool   `json:"fl_active"`
}

// RecoverPasswordRequest entrada para solicitar la recuperación de contraseña.
type RecoverPasswordRequest struct {
	Login string `json:"email_or_username"`
}

// ResetPasswordRequest entrada para fijar la nueva contraseña; el token llega
// por query string.
type ResetPasswordRequest struct {
	Token    string `query:"token"`
	Password string `json:"new_password"`
}
