package entity

// Roles válidos para User. Enum cerrado chequeado en el límite de autorización.
const (
	RoleUser          = "USER"
	RoleAdministrator = "ADMINISTRATOR"
)

// ValidRole indica si el rol pertenece al enum cerrado.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdministrator
}

// User representa un usuario del sistema.
type User struct {
	IDUser   int64
	Username string // único
	Email    string // único
	Password string // bcrypt hash, nunca plano después de persistir
	FullName string
	Role     string // USER | ADMINISTRATOR
	Audit
}
