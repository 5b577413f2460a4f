package repository

import (
	"context"

	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
)

// BottleBrandRepository persistencia de marcas de botella.
type BottleBrandRepository interface {
	Create(ctx context.Context, creationUserID int64, name string) (*entity.BottleBrand, error)
	List(ctx context.Context) ([]*entity.BottleBrand, error)
	GetByID(ctx context.Context, id int64) (*entity.BottleBrand, error)
	// GetByName busca por coincidencia parcial, case- y accent-insensitive.
	GetByName(ctx context.Context, name string) (*entity.BottleBrand, error)
	// GetByExactName busca por igualdad del nombre normalizado (chequeo de unicidad).
	GetByExactName(ctx context.Context, name string) (*entity.BottleBrand, error)
	GetNameByID(ctx context.Context, id int64) (string, error)
	Rename(ctx context.Context, id int64, newName string, updateUserID int64) (*entity.BottleBrand, error)
	Delete(ctx context.Context, id int64) error
}
