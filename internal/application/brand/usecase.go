package brand

import (
	"context"

	"github.com/clientbottle/clientbottle-api/internal/application/dto"
	"github.com/clientbottle/clientbottle-api/internal/domain"
	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
	"github.com/clientbottle/clientbottle-api/internal/domain/repository"
)

// UseCase casos de uso de marcas de botella.
type UseCase struct {
	brandRepo repository.BottleBrandRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(brandRepo repository.BottleBrandRepository) *UseCase {
	return &UseCase{brandRepo: brandRepo}
}

// Create registra una marca nueva. El nombre es único de forma case- y
// accent-insensitive: "Skol" y "skól" son la misma marca.
func (uc *UseCase) Create(ctx context.Context, userID int64, in dto.BottleBrandRequest) (*dto.BottleBrandResponse, error) {
	if in.Name == "" {
		return nil, domain.Raise(domain.CodeValidation)
	}
	existing, err := uc.brandRepo.GetByExactName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Raise(domain.CodeBrandAlreadyExists)
	}
	created, err := uc.brandRepo.Create(ctx, userID, in.Name)
	if err != nil {
		return nil, err
	}
	return toBrandResponse(created), nil
}

// List devuelve todas las marcas registradas.
func (uc *UseCase) List(ctx context.Context) ([]dto.BottleBrandResponse, error) {
	brands, err := uc.brandRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BottleBrandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, *toBrandResponse(b))
	}
	return out, nil
}

// Get resuelve una marca por id o por nombre, exactamente uno de los dos.
func (uc *UseCase) Get(ctx context.Context, sel dto.BottleBrandSelector) (*dto.BottleBrandResponse, error) {
	b, err := uc.resolveSelector(ctx, sel)
	if err != nil {
		return nil, err
	}
	return toBrandResponse(b), nil
}

// Rename cambia el nombre de una marca respetando la unicidad normalizada.
func (uc *UseCase) Rename(ctx context.Context, userID, id int64, in dto.BottleBrandRequest) (*dto.BottleBrandResponse, error) {
	if in.Name == "" {
		return nil, domain.Raise(domain.CodeValidation)
	}
	b, err := uc.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.Raise(domain.CodeNotFound)
	}
	clash, err := uc.brandRepo.GetByExactName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if clash != nil && clash.IDBottleBrand != id {
		return nil, domain.Raise(domain.CodeBrandAlreadyExists)
	}
	renamed, err := uc.brandRepo.Rename(ctx, id, in.Name, userID)
	if err != nil {
		return nil, err
	}
	return toBrandResponse(renamed), nil
}

// Delete borra una marca resuelta por id o nombre.
func (uc *UseCase) Delete(ctx context.Context, sel dto.BottleBrandSelector) error {
	b, err := uc.resolveSelector(ctx, sel)
	if err != nil {
		return err
	}
	return uc.brandRepo.Delete(ctx, b.IDBottleBrand)
}

func (uc *UseCase) resolveSelector(ctx context.Context, sel dto.BottleBrandSelector) (*entity.BottleBrand, error) {
	if (sel.IDBottleBrand == nil) == (sel.Name == nil) {
		return nil, domain.Raise(domain.CodeValidation)
	}
	var b *entity.BottleBrand
	var err error
	if sel.IDBottleBrand != nil {
		b, err = uc.brandRepo.GetByID(ctx, *sel.IDBottleBrand)
	} else {
		b, err = uc.brandRepo.GetByName(ctx, *sel.Name)
	}
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.Raise(domain.CodeNotFound)
	}
	return b, nil
}

func toBrandResponse(b *entity.BottleBrand) *dto.BottleBrandResponse {
	return &dto.BottleBrandResponse{
		IDBottleBrand: b.IDBottleBrand,
		Name:          b.Name,
		CreatedAt:     b.CreatedAt.Unix(),
	}
}
