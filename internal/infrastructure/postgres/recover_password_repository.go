package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
	"github.com/clientbottle/clientbottle-api/internal/domain/repository"
)

var _ repository.RecoverPasswordRepository = (*RecoverPasswordRepo)(nil)

const recoverColumns = `id_recover_password, id_user, token, email,
	fl_active, created_at, updated_at, creation_user_id, update_user_id`

// RecoverPasswordRepo implementación de RecoverPasswordRepository sobre PostgreSQL.
type RecoverPasswordRepo struct {
	q Querier
}

// NewRecoverPasswordRepository construye el adaptador.
func NewRecoverPasswordRepository(q Querier) *RecoverPasswordRepo {
	return &RecoverPasswordRepo{q: q}
}

func scanRecover(row pgx.Row) (*entity.RecoverPassword, error) {
	var rp entity.RecoverPassword
	err := row.Scan(
		&rp.IDRecoverPassword, &rp.IDUser, &rp.Token, &rp.Email,
		&rp.FlActive, &rp.CreatedAt, &rp.UpdatedAt, &rp.CreationUserID, &rp.UpdateUserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rp, nil
}

// Create persiste un pedido de recuperación.
func (r *RecoverPasswordRepo) Create(ctx context.Context, recover *entity.RecoverPassword) (*entity.RecoverPassword, error) {
	query := `
		INSERT INTO recover_password (id_user, token, email, creation_user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + recoverColumns
	created, err := scanRecover(r.q.QueryRow(ctx, query,
		recover.IDUser, recover.Token, recover.Email, recover.CreationUserID,
	))
	if err != nil {
		return nil, fmt.Errorf("insert recover_password: %w", err)
	}
	return created, nil
}

// GetByToken obtiene un pedido por token.
func (r *RecoverPasswordRepo) GetByToken(ctx context.Context, token string) (*entity.RecoverPassword, error) {
	query := `SELECT ` + recoverColumns + ` FROM recover_password WHERE token = $1`
	rp, err := scanRecover(r.q.QueryRow(ctx, query, token))
	if err != nil {
		return nil, fmt.Errorf("get recover_password by token: %w", err)
	}
	return rp, nil
}

// DeleteByEmail elimina cualquier pedido pendiente del email.
func (r *RecoverPasswordRepo) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM recover_password WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("delete recover_password by email: %w", err)
	}
	return nil
}

// Delete elimina un pedido por id (token consumido).
func (r *RecoverPasswordRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM recover_password WHERE id_recover_password = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recover_password: %w", err)
	}
	return nil
}
