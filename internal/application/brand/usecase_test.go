package brand_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientbottle/clientbottle-api/internal/application/apptest"
	"github.com/clientbottle/clientbottle-api/internal/application/brand"
	"github.com/clientbottle/clientbottle-api/internal/application/dto"
	"github.com/clientbottle/clientbottle-api/internal/domain"
)

func newUseCase() (*brand.UseCase, *apptest.BrandRepo) {
	repo := apptest.NewBrandRepo()
	return brand.NewUseCase(repo), repo
}

func requireCode(t *testing.T, err error, code domain.Code) {
	t.Helper()
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.True(t, derr.HasCode(code.Code), "se esperaba %s, vino %v", code.Code, err)
}

func TestCreate_Marca(t *testing.T) {
	uc, _ := newUseCase()
	out, err := uc.Create(context.Background(), 1, dto.BottleBrandRequest{Name: "Brahma"})
	require.NoError(t, err)
	assert.Equal(t, "Brahma", out.Name)
	assert.NotZero(t, out.IDBottleBrand)
}

func TestCreate_NombreVacio(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Create(context.Background(), 1, dto.BottleBrandRequest{})
	requireCode(t, err, domain.CodeValidation)
}

func TestCreate_DuplicadoNormalizado(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, 1, dto.BottleBrandRequest{Name: "Skol"})
	require.NoError(t, err)

	// Mayúsculas y acentos no distinguen marcas.
	for _, name := range []string{"skol", "SKOL", "skól"} {
		_, err = uc.Create(ctx, 1, dto.BottleBrandRequest{Name: name})
		requireCode(t, err, domain.CodeBrandAlreadyExists)
	}
}

func TestGet_SelectorExactamenteUno(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.Get(ctx, dto.BottleBrandSelector{})
	requireCode(t, err, domain.CodeValidation)

	name := "Skol"
	id := int64(1)
	_, err = uc.Get(ctx, dto.BottleBrandSelector{IDBottleBrand: &id, Name: &name})
	requireCode(t, err, domain.CodeValidation)
}

func TestGet_PorIDYPorNombreParcial(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, 1, dto.BottleBrandRequest{Name: "Antárctica"})
	require.NoError(t, err)

	byID, err := uc.Get(ctx, dto.BottleBrandSelector{IDBottleBrand: &created.IDBottleBrand})
	require.NoError(t, err)
	assert.Equal(t, created.IDBottleBrand, byID.IDBottleBrand)

	// La búsqueda por nombre es parcial y sin acentos.
	partial := "antarc"
	byName, err := uc.Get(ctx, dto.BottleBrandSelector{Name: &partial})
	require.NoError(t, err)
	assert.Equal(t, created.IDBottleBrand, byName.IDBottleBrand)
}

func TestGet_Inexistente(t *testing.T) {
	uc, _ := newUseCase()
	id := int64(404)
	_, err := uc.Get(context.Background(), dto.BottleBrandSelector{IDBottleBrand: &id})
	requireCode(t, err, domain.CodeNotFound)
}

func TestRename(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, 1, dto.BottleBrandRequest{Name: "Bohemia"})
	require.NoError(t, err)

	out, err := uc.Rename(ctx, 2, created.IDBottleBrand, dto.BottleBrandRequest{Name: "Bohemia Pilsen"})
	require.NoError(t, err)
	assert.Equal(t, "Bohemia Pilsen", out.Name)
	assert.Equal(t, "Bohemia Pilsen", repo.Brands[created.IDBottleBrand].Name)
}

func TestRename_MismoNombreNormalizado_Permitido(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, 1, dto.BottleBrandRequest{Name: "brahma"})
	require.NoError(t, err)

	// Ajustar la capitalización de la propia marca no es un choque.
	out, err := uc.Rename(ctx, 1, created.IDBottleBrand, dto.BottleBrandRequest{Name: "Brahma"})
	require.NoError(t, err)
	assert.Equal(t, "Brahma", out.Name)
}

func TestRename_ChocaConOtraMarca(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, 1, dto.BottleBrandRequest{Name: "Skol"})
	require.NoError(t, err)
	other, err := uc.Create(ctx, 1, dto.BottleBrandRequest{Name: "Brahma"})
	require.NoError(t, err)

	_, err = uc.Rename(ctx, 1, other.IDBottleBrand, dto.BottleBrandRequest{Name: "skól"})
	requireCode(t, err, domain.CodeBrandAlreadyExists)
}

func TestRename_Inexistente(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Rename(context.Background(), 1, 404, dto.BottleBrandRequest{Name: "Nova"})
	requireCode(t, err, domain.CodeNotFound)
}

func TestDelete(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, 1, dto.BottleBrandRequest{Name: "Skol"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, dto.BottleBrandSelector{IDBottleBrand: &created.IDBottleBrand}))
	assert.Empty(t, repo.Brands)
}

func TestDelete_Inexistente(t *testing.T) {
	uc, _ := newUseCase()
	name := "nada"
	err := uc.Delete(context.Background(), dto.BottleBrandSelector{Name: &name})
	requireCode(t, err, domain.CodeNotFound)
}
