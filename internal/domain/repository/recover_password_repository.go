package repository

import (
	"context"

	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
)

// RecoverPasswordRepository persistencia de tokens de recuperación de contraseña.
type RecoverPasswordRepository interface {
	Create(ctx context.Context, recover *entity.RecoverPassword) (*entity.RecoverPassword, error)
	GetByToken(ctx context.Context, token string) (*entity.RecoverPassword, error)
	// DeleteByEmail elimina cualquier pedido pendiente del email (el nuevo lo reemplaza).
	DeleteByEmail(ctx context.Context, email string) error
	Delete(ctx context.Context, id int64) error
}
