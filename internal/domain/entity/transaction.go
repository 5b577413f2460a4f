package entity

import "time"

// TransactionItem línea de una transacción: marca + cantidad de botellas.
type TransactionItem struct {
	BrandID  int64 `json:"brand_id"`
	Quantity int   `json:"quantity"`
}

// Transaction registro fechado de botellas prestadas/devueltas por un cliente.
// La lista de ítems se persiste como documento JSONB y nunca puede ser vacía.
type Transaction struct {
	IDTransaction   int64
	IDClient        int64
	TransactionData []TransactionItem
	TransactionDate time.Time // solo fecha
	RecordedBy      *string   // nombre visible de quien registró
	Audit
}
