package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
	"github.com/clientbottle/clientbottle-api/internal/domain/repository"
)

var _ repository.UserTokenRepository = (*UserTokenRepo)(nil)

// UserTokenRepo implementación de UserTokenRepository sobre PostgreSQL.
type UserTokenRepo struct {
	q Querier
}

// NewUserTokenRepository construye el adaptador.
func NewUserTokenRepository(q Querier) *UserTokenRepo {
	return &UserTokenRepo{q: q}
}

// Create persiste el token de sesión emitido.
func (r *UserTokenRepo) Create(ctx context.Context, token *entity.UserToken) error {
	query := `
		INSERT INTO user_token (id_user, api_key, expires_at, creation_user_id)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, token.IDUser, token.ApiKey, token.ExpiresAt, token.CreationUserID)
	if err != nil {
		return fmt.Errorf("insert user_token: %w", err)
	}
	return nil
}

// DeleteExpired elimina los tokens vencidos respecto a now.
func (r *UserTokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM user_token WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteByUser elimina todos los tokens de un usuario (auto-eliminación de cuenta).
func (r *UserTokenRepo) DeleteByUser(ctx context.Context, idUser int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM user_token WHERE id_user = $1`, idUser)
	if err != nil {
		return fmt.Errorf("delete user tokens: %w", err)
	}
	return nil
}
