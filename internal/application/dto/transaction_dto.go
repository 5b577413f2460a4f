package dto

// TransactionItemRequest ítem de la transacción: la marca puede venir por id
// o por nombre, exactamente uno de los dos.
type TransactionItemRequest struct {
	BrandID   *int64  `json:"brand_id"`
	BrandName *string `json:"brand_name"`
	Quantity  int     `json:"quantity"`
}

// CreateTransactionRequest entrada para registrar una transacción. El cliente
// puede venir por id o por nombre/teléfono (get-or-create).
type CreateTransactionRequest struct {
	IDClient   *int64                   `json:"id_client"`
	ClientName *string                  `json:"client_name"`
	LastName   *string                  `json:"last_name"`
	Phone      *string                  `json:"client_phone"`
	Items      []TransactionItemRequest `json:"transaction_data"`
}

// UpdateTransactionRequest actualización parcial: campos del cliente y/o la
// lista de ítems de reemplazo. Al menos un campo debe venir.
type UpdateTransactionRequest struct {
	ClientName *string                  `json:"client_name"`
	LastName   *string                  `json:"last_name"`
	Phone      *string                  `json:"client_phone"`
	Items      []TransactionItemRequest `json:"transaction_data"`
}

// Empty indica si la actualización no trae ningún campo.
func (r UpdateTransactionRequest) Empty() bool {
	return r.ClientName == nil && r.LastName == nil && r.Phone == nil && len(r.Items) == 0
}

// ListTransactionsRequest filtros del listado: a lo sumo uno de term o date_filter.
type ListTransactionsRequest struct {
	PageRequest
	Term string `query:"term"`
	Date string `query:"date_filter"` // YYYY-MM-DD
}

// TransactionItemResponse ítem resuelto con el nombre de la marca.
type TransactionItemResponse struct {
	BrandID   int64  `json:"brand_id"`
	BrandName string `json:"brand_name"`
	Quantity  int    `json:"quantity"`
}

// TransactionResponse transacción con el cliente unido.
type TransactionResponse struct {
	IDTransaction   int64                     `json:"id_client_bottle_transaction"`
	ClientName      string                    `json:"client_name"`
	ClientLastName  string                    `json:"client_last_name"`
	ClientPhone     *string                   `json:"client_phone"`
	Items           []TransactionItemResponse `json:"transaction_data"`
	TransactionDate string                    `json:"transaction_date"`
	RecordedBy      string                    `json:"recorded_by"`
}

// TransactionListResponse página de transacciones.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	PageResponse
}
