package repository

import (
	"context"
	"time"

	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
)

// TransactionJoined fila de transacción con los datos del cliente ya unidos.
// TransactionData conserva los brand_id; el nombre de la marca se resuelve
// en la capa de aplicación.
type TransactionJoined struct {
	IDTransaction   int64
	ClientName      string
	ClientLastName  string
	ClientPhone     *string
	TransactionData []entity.TransactionItem
	TransactionDate time.Time
	RecordedBy      *string
}

// TransactionRepository persistencia de transacciones de botellas.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) (*entity.Transaction, error)
	GetJoined(ctx context.Context, id int64) (*TransactionJoined, error)
	// ListActive pagina las transacciones activas más recientes primero.
	// Devuelve la página y el total de filas activas que matchean.
	ListActive(ctx context.Context, page, size int) ([]*TransactionJoined, int64, error)
	// ListByTerm filtra por término case- y accent-insensitive sobre nombre y
	// teléfono del cliente, recorded_by y la lista de ítems serializada.
	ListByTerm(ctx context.Context, page, size int, term string) ([]*TransactionJoined, int64, error)
	ListByDate(ctx context.Context, page, size int, date time.Time) ([]*TransactionJoined, int64, error)
	Get(ctx context.Context, id int64) (*entity.Transaction, error)
	// UpdateItems reemplaza la lista de ítems de la transacción.
	UpdateItems(ctx context.Context, id int64, items []entity.TransactionItem, updateUserID int64) error
	// Deactivate marca fl_active=false sin borrar. Devuelve false si el id no existe.
	Deactivate(ctx context.Context, id int64, updateUserID int64) (bool, error)
	// ListByMonth devuelve las transacciones del mes con el fl_active pedido,
	// para el reporte mensual.
	ListByMonth(ctx context.Context, year int, month time.Month, active bool) ([]*entity.Transaction, error)
}
