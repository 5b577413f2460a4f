package repository

import (
	"context"

	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
)

// ClientRepository persistencia de clientes.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) (*entity.Client, error)
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	// FindByNameOrPhone busca por nombre (coincidencia parcial accent-insensitive)
	// o por teléfono exacto; cualquiera de los dos resuelve al cliente.
	FindByNameOrPhone(ctx context.Context, name string, phone *string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
}
