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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id_user, username, email, password, full_name, role,
	fl_active, created_at, updated_at, creation_user_id, update_user_id`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.IDUser, &u.Username, &u.Email, &u.Password, &u.FullName, &u.Role,
		&u.FlActive, &u.CreatedAt, &u.UpdatedAt, &u.CreationUserID, &u.UpdateUserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario y devuelve la fila insertada.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO "user" (username, email, password, full_name, role, creation_user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns
	created, err := scanUser(r.q.QueryRow(ctx, query,
		user.Username, user.Email, user.Password, user.FullName, user.Role, user.CreationUserID,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.Raise(domain.CodeEmailRegistered)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" WHERE id_user = $1`
	u, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email exacto.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" WHERE email = $1`
	u, err := scanUser(r.q.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// GetByUsername obtiene un usuario por username exacto.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" WHERE username = $1`
	u, err := scanUser(r.q.QueryRow(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// GetByEmailOrUsername busca por igualdad exacta en email o username (login).
func (r *UserRepo) GetByEmailOrUsername(ctx context.Context, emailOrUsername string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM "user" WHERE email = $1 OR username = $1 LIMIT 1`
	u, err := scanUser(r.q.QueryRow(ctx, query, emailOrUsername))
	if err != nil {
		return nil, fmt.Errorf("get user by email or username: %w", err)
	}
	return u, nil
}

// List devuelve todos los usuarios, activos e inactivos, más recientes primero.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(
			&u.IDUser, &u.Username, &u.Email, &u.Password, &u.FullName, &u.Role,
			&u.FlActive, &u.CreatedAt, &u.UpdatedAt, &u.CreationUserID, &u.UpdateUserID,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// SetActive cambia fl_active registrando quién hizo el cambio.
func (r *UserRepo) SetActive(ctx context.Context, id int64, active bool, updateUserID int64) error {
	query := `
		UPDATE "user"
		SET fl_active = $2, update_user_id = $3, updated_at = current_timestamp_brazil()
		WHERE id_user = $1`
	_, err := r.q.Exec(ctx, query, id, active, updateUserID)
	if err != nil {
		return fmt.Errorf("set user active: %w", err)
	}
	return nil
}

// UpdatePassword actualiza el hash de contraseña.
func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string, updateUserID int64) error {
	query := `
		UPDATE "user"
		SET password = $2, update_user_id = $3, updated_at = current_timestamp_brazil()
		WHERE id_user = $1`
	_, err := r.q.Exec(ctx, query, id, passwordHash, updateUserID)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// Delete borra físicamente al usuario.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM "user" WHERE id_user = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
