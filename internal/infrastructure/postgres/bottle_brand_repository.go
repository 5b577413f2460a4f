package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clientbottle/clientbottle-api/internal/domain"
	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
	"github.com/clientbottle/clientbottle-api/internal/domain/repository"
)

var _ repository.BottleBrandRepository = (*BottleBrandRepo)(nil)

const brandColumns = `id_bottle_brand, name,
	fl_active, created_at, updated_at, creation_user_id, update_user_id`

// BottleBrandRepo implementación de BottleBrandRepository sobre PostgreSQL (pool o tx).
type BottleBrandRepo struct {
	q Querier
}

// NewBottleBrandRepository construye el adaptador.
func NewBottleBrandRepository(q Querier) *BottleBrandRepo {
	return &BottleBrandRepo{q: q}
}

func scanBrand(row pgx.Row) (*entity.BottleBrand, error) {
	var b entity.BottleBrand
	err := row.Scan(
		&b.IDBottleBrand, &b.Name,
		&b.FlActive, &b.CreatedAt, &b.UpdatedAt, &b.CreationUserID, &b.UpdateUserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// Create persiste una nueva marca.
func (r *BottleBrandRepo) Create(ctx context.Context, creationUserID int64, name string) (*entity.BottleBrand, error) {
	query := `
		INSERT INTO bottle_brand (name, creation_user_id)
		VALUES ($1, $2)
		RETURNING ` + brandColumns
	created, err := scanBrand(r.q.QueryRow(ctx, query, name, creationUserID))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.Raise(domain.CodeBrandAlreadyExists)
		}
		return nil, fmt.Errorf("insert bottle_brand: %w", err)
	}
	return created, nil
}

// List devuelve todas las marcas ordenadas por nombre.
func (r *BottleBrandRepo) List(ctx context.Context) ([]*entity.BottleBrand, error) {
	query := `SELECT ` + brandColumns + ` FROM bottle_brand ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list bottle_brands: %w", err)
	}
	defer rows.Close()
	var list []*entity.BottleBrand
	for rows.Next() {
		var b entity.BottleBrand
		if err := rows.Scan(
			&b.IDBottleBrand, &b.Name,
			&b.FlActive, &b.CreatedAt, &b.UpdatedAt, &b.CreationUserID, &b.UpdateUserID,
		); err != nil {
			return nil, fmt.Errorf("scan bottle_brand: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// GetByID obtiene una marca por id.
func (r *BottleBrandRepo) GetByID(ctx context.Context, id int64) (*entity.BottleBrand, error) {
	query := `SELECT ` + brandColumns + ` FROM bottle_brand WHERE id_bottle_brand = $1`
	b, err := scanBrand(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get bottle_brand by id: %w", err)
	}
	return b, nil
}

// GetByName busca por coincidencia parcial, case- y accent-insensitive,
// usando la función SQL normalize_client_text (unaccent + LOWER).
func (r *BottleBrandRepo) GetByName(ctx context.Context, name string) (*entity.BottleBrand, error) {
	query := `
		SELECT ` + brandColumns + `
		FROM bottle_brand
		WHERE normalize_client_text(name) LIKE normalize_client_text($1)
		LIMIT 1`
	b, err := scanBrand(r.q.QueryRow(ctx, query, "%"+name+"%"))
	if err != nil {
		return nil, fmt.Errorf("get bottle_brand by name: %w", err)
	}
	return b, nil
}

// GetByExactName busca por igualdad del nombre normalizado (chequeo de unicidad).
func (r *BottleBrandRepo) GetByExactName(ctx context.Context, name string) (*entity.BottleBrand, error) {
	query := `
		SELECT ` + brandColumns + `
		FROM bottle_brand
		WHERE normalize_client_text(name) = normalize_client_text($1)
		LIMIT 1`
	b, err := scanBrand(r.q.QueryRow(ctx, query, name))
	if err != nil {
		return nil, fmt.Errorf("get bottle_brand by exact name: %w", err)
	}
	return b, nil
}

// GetNameByID devuelve solo el nombre de una marca ("" si no existe).
func (r *BottleBrandRepo) GetNameByID(ctx context.Context, id int64) (string, error) {
	var name string
	err := r.q.QueryRow(ctx, `SELECT name FROM bottle_brand WHERE id_bottle_brand = $1`, id).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get brand name: %w", err)
	}
	return name, nil
}

// Rename cambia el nombre de la marca y devuelve la fila actualizada.
func (r *BottleBrandRepo) Rename(ctx context.Context, id int64, newName string, updateUserID int64) (*entity.BottleBrand, error) {
	query := `
		UPDATE bottle_brand
		SET name = $2, update_user_id = $3, updated_at = current_timestamp_brazil()
		WHERE id_bottle_brand = $1
		RETURNING ` + brandColumns
	b, err := scanBrand(r.q.QueryRow(ctx, query, id, newName, updateUserID))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.Raise(domain.CodeBrandAlreadyExists)
		}
		return nil, fmt.Errorf("rename bottle_brand: %w", err)
	}
	return b, nil
}

// Delete elimina una marca por id.
func (r *BottleBrandRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM bottle_brand WHERE id_bottle_brand = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bottle_brand: %w", err)
	}
	return nil
}
