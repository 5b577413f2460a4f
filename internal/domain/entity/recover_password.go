package entity

// RecoverPassword token de recuperación de contraseña, de uso único.
// Un nuevo pedido para el mismo email reemplaza al anterior.
type RecoverPassword struct {
	IDRecoverPassword int64
	IDUser            int64
	Token             string // uuid único
	Email             string // único mientras pendiente
	Audit
}
