package dto

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	IDUser         int64  `json:"id_user"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	Role           string `json:"role"`
	FlActive       bool   `json:"fl_active"`
	CreationUserID int64  `json:"creation_user_id"`
	CreatedAt      int64  `json:"created_at"`
	UpdateUserID   *int64 `json:"update_user_id"`
	UpdatedAt      *int64 `json:"updated_at"`
}

// UserSelectorRequest selector de usuario para operaciones de administración,
// por query string. Debe venir exactamente uno de los tres campos.
type UserSelectorRequest struct {
	IDUser   *int64  `query:"id"`
	Email    *string `query:"email"`
	Username *string `query:"username"`
}

// ConfirmUserRequest entrada para completar el registro desde una invitación.
// El token llega por query string.
type ConfirmUserRequest struct {
	Token    string `query:"token"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// StatusResponse respuesta simple de confirmación.
type StatusResponse struct {
	Detail string `json:"detail"`
}
