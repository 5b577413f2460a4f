package dto

// LoginRequest entrada para login: email o username más password.
type LoginRequest struct {
	Login    string `json:"email_or_username"`
	Password string `json:"password"`
}

// TokenResponse token de sesión emitido.
type TokenResponse struct {
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

// LoginResponse salida con el usuario autenticado y su token.
type LoginResponse struct {
	User  UserResponse  `json:"user"`
	Token TokenResponse `json:"token"`
}
