package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
	"github.com/clientbottle/clientbottle-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id_client, name, last_name, phone,
	fl_active, created_at, updated_at, creation_user_id, update_user_id`

// ClientRepo implementación de ClientRepository sobre PostgreSQL (pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.IDClient, &c.Name, &c.LastName, &c.Phone,
		&c.FlActive, &c.CreatedAt, &c.UpdatedAt, &c.CreationUserID, &c.UpdateUserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) (*entity.Client, error) {
	query := `
		INSERT INTO client (name, last_name, phone, creation_user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + clientColumns
	created, err := scanClient(r.q.QueryRow(ctx, query,
		client.Name, client.LastName, client.Phone, client.CreationUserID,
	))
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return created, nil
}

// GetByID obtiene un cliente por id.
func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM client WHERE id_client = $1`
	c, err := scanClient(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// FindByNameOrPhone busca por nombre (parcial, accent-insensitive) o teléfono.
func (r *ClientRepo) FindByNameOrPhone(ctx context.Context, name string, phone *string) (*entity.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM client
		WHERE normalize_client_text(name) LIKE normalize_client_text($1)
		   OR ($2::text IS NOT NULL AND phone = $2)
		LIMIT 1`
	c, err := scanClient(r.q.QueryRow(ctx, query, "%"+name+"%", phone))
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	return c, nil
}

// Update actualiza nombre, apellido y teléfono del cliente.
func (r *ClientRepo) Update(ctx context.Context, client *entity.Client) error {
	query := `
		UPDATE client
		SET name = $2, last_name = $3, phone = $4, update_user_id = $5,
		    updated_at = current_timestamp_brazil()
		WHERE id_client = $1`
	_, err := r.q.Exec(ctx, query,
		client.IDClient, client.Name, client.LastName, client.Phone, client.UpdateUserID,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}
