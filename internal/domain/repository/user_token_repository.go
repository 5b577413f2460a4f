package repository

import (
	"context"
	"time"

	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
)

// UserTokenRepository persistencia de tokens de sesión emitidos.
type UserTokenRepository interface {
	Create(ctx context.Context, token *entity.UserToken) error
	// DeleteExpired elimina los tokens vencidos respecto a now; devuelve cuántos borró.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	DeleteByUser(ctx context.Context, idUser int64) error
}
