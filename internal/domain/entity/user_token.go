package entity

import "time"

// UserToken token de sesión emitido y persistido. ApiKey es el JWT completo;
// expires_at duplica la expiración del token para el barrido de expirados.
type UserToken struct {
	IDUserToken int64
	IDUser      int64
	ApiKey      string // único
	ExpiresAt   time.Time
	Audit
}
