package repository

import (
	"context"

	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetByEmailOrUsername busca por igualdad exacta en cualquiera de los dos campos.
	GetByEmailOrUsername(ctx context.Context, emailOrUsername string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	// SetActive cambia fl_active registrando quién hizo el cambio.
	SetActive(ctx context.Context, id int64, active bool, updateUserID int64) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string, updateUserID int64) error
	// Delete borra físicamente al usuario (auto-eliminación de cuenta).
	Delete(ctx context.Context, id int64) error
}
