package entity

// Client cliente del negocio de préstamo/devolución de botellas.
type Client struct {
	IDClient int64
	Name     string
	LastName string
	Phone    *string
	Audit
}
