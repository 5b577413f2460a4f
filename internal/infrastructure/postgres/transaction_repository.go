package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
	"github.com/clientbottle/clientbottle-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL (pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// joinedSelect columnas del listado: transacción + cliente unidos.
const joinedSelect = `
	SELECT cbt.id_client_bottle_transaction,
	       c.name,
	       c.last_name,
	       c.phone,
	       cbt.transaction_data,
	       cbt.transaction_date,
	       cbt.recorded_by
	FROM client_bottle_transaction cbt
	JOIN client c ON c.id_client = cbt.id_client`

func scanJoined(rows pgx.Rows) (*repository.TransactionJoined, error) {
	var t repository.TransactionJoined
	var raw []byte
	if err := rows.Scan(
		&t.IDTransaction, &t.ClientName, &t.ClientLastName, &t.ClientPhone,
		&raw, &t.TransactionDate, &t.RecordedBy,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &t.TransactionData); err != nil {
		return nil, fmt.Errorf("decode transaction_data: %w", err)
	}
	return &t, nil
}

func (r *TransactionRepo) queryJoined(ctx context.Context, where, countWhere string, page, size int, args ...any) ([]*repository.TransactionJoined, int64, error) {
	countQuery := `SELECT count(*) FROM client_bottle_transaction cbt
		JOIN client c ON c.id_client = cbt.id_client ` + countWhere
	var total int64
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	offset := (page - 1) * size
	query := joinedSelect + " " + where +
		fmt.Sprintf(" ORDER BY cbt.transaction_date DESC, cbt.id_client_bottle_transaction DESC LIMIT %d OFFSET %d", size, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []*repository.TransactionJoined
	for rows.Next() {
		t, err := scanJoined(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

// ListActive pagina las transacciones activas, más recientes primero.
func (r *TransactionRepo) ListActive(ctx context.Context, page, size int) ([]*repository.TransactionJoined, int64, error) {
	where := `WHERE cbt.fl_active = true`
	return r.queryJoined(ctx, where, where, page, size)
}

// ListByTerm filtra por término case- y accent-insensitive sobre nombre,
// teléfono, recorded_by y la lista de ítems serializada (como hace el
// ILIKE sobre el JSONB casteado a texto).
func (r *TransactionRepo) ListByTerm(ctx context.Context, page, size int, term string) ([]*repository.TransactionJoined, int64, error) {
	where := `
		WHERE cbt.fl_active = true
		  AND (normalize_client_text(c.name) LIKE normalize_client_text($1)
		    OR normalize_client_text(c.last_name) LIKE normalize_client_text($1)
		    OR c.phone LIKE $1
		    OR normalize_client_text(cbt.recorded_by) LIKE normalize_client_text($1)
		    OR normalize_client_text(cbt.transaction_data::text) LIKE normalize_client_text($1))`
	return r.queryJoined(ctx, where, where, page, size, "%"+term+"%")
}

// ListByDate filtra por fecha exacta de transacción.
func (r *TransactionRepo) ListByDate(ctx context.Context, page, size int, date time.Time) ([]*repository.TransactionJoined, int64, error) {
	where := `WHERE cbt.fl_active = true AND cbt.transaction_date = $1`
	return r.queryJoined(ctx, where, where, page, size, date)
}

// Create persiste una nueva transacción y devuelve la fila insertada.
func (r *TransactionRepo) Create(ctx context.Context, tx *entity.Transaction) (*entity.Transaction, error) {
	raw, err := json.Marshal(tx.TransactionData)
	if err != nil {
		return nil, fmt.Errorf("encode transaction_data: %w", err)
	}
	query := `
		INSERT INTO client_bottle_transaction (id_client, transaction_data, recorded_by, creation_user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id_client_bottle_transaction, transaction_date, fl_active, created_at`
	created := *tx
	err = r.q.QueryRow(ctx, query, tx.IDClient, raw, tx.RecordedBy, tx.CreationUserID).Scan(
		&created.IDTransaction, &created.TransactionDate, &created.FlActive, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	return &created, nil
}

// GetJoined obtiene una transacción con los datos del cliente unidos.
func (r *TransactionRepo) GetJoined(ctx context.Context, id int64) (*repository.TransactionJoined, error) {
	query := joinedSelect + ` WHERE cbt.id_client_bottle_transaction = $1`
	rows, err := r.q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get transaction joined: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	t, err := scanJoined(rows)
	if err != nil {
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}

// Get obtiene la transacción cruda por id.
func (r *TransactionRepo) Get(ctx context.Context, id int64) (*entity.Transaction, error) {
	query := `
		SELECT id_client_bottle_transaction, id_client, transaction_data, transaction_date,
		       recorded_by, fl_active, created_at, updated_at, creation_user_id, update_user_id
		FROM client_bottle_transaction
		WHERE id_client_bottle_transaction = $1`
	var t entity.Transaction
	var raw []byte
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.IDTransaction, &t.IDClient, &raw, &t.TransactionDate,
		&t.RecordedBy, &t.FlActive, &t.CreatedAt, &t.UpdatedAt, &t.CreationUserID, &t.UpdateUserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if err := json.Unmarshal(raw, &t.TransactionData); err != nil {
		return nil, fmt.Errorf("decode transaction_data: %w", err)
	}
	return &t, nil
}

// UpdateItems reemplaza la lista de ítems de la transacción.
func (r *TransactionRepo) UpdateItems(ctx context.Context, id int64, items []entity.TransactionItem, updateUserID int64) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode transaction_data: %w", err)
	}
	query := `
		UPDATE client_bottle_transaction
		SET transaction_data = $2, update_user_id = $3, updated_at = current_timestamp_brazil()
		WHERE id_client_bottle_transaction = $1`
	if _, err := r.q.Exec(ctx, query, id, raw, updateUserID); err != nil {
		return fmt.Errorf("update transaction items: %w", err)
	}
	return nil
}

// Deactivate marca fl_active=false sin borrar la fila. Devuelve false si el
// id no existe; repetir la desactivación es un no-op.
func (r *TransactionRepo) Deactivate(ctx context.Context, id int64, updateUserID int64) (bool, error) {
	query := `
		UPDATE client_bottle_transaction
		SET fl_active = false, update_user_id = $2, updated_at = current_timestamp_brazil()
		WHERE id_client_bottle_transaction = $1`
	tag, err := r.q.Exec(ctx, query, id, updateUserID)
	if err != nil {
		return false, fmt.Errorf("deactivate transaction: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByMonth devuelve las transacciones del mes con el fl_active pedido.
func (r *TransactionRepo) ListByMonth(ctx context.Context, year int, month time.Month, active bool) ([]*entity.Transaction, error) {
	query := `
		SELECT id_client_bottle_transaction, id_client, transaction_data, transaction_date,
		       recorded_by, fl_active, created_at, updated_at, creation_user_id, update_user_id
		FROM client_bottle_transaction
		WHERE fl_active = $1
		  AND date_part('year', transaction_date) = $2
		  AND date_part('month', transaction_date) = $3`
	rows, err := r.q.Query(ctx, query, active, year, int(month))
	if err != nil {
		return nil, fmt.Errorf("list month transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		var raw []byte
		if err := rows.Scan(
			&t.IDTransaction, &t.IDClient, &raw, &t.TransactionDate,
			&t.RecordedBy, &t.FlActive, &t.CreatedAt, &t.UpdatedAt, &t.CreationUserID, &t.UpdateUserID,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if err := json.Unmarshal(raw, &t.TransactionData); err != nil {
			return nil, fmt.Errorf("decode transaction_data: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
