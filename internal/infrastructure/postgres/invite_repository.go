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

var _ repository.InviteRepository = (*InviteRepo)(nil)

const inviteColumns = `id_invite, sender_id, token, email, role, expires_at,
	fl_active, created_at, updated_at, creation_user_id, update_user_id`

// InviteRepo implementación de InviteRepository sobre PostgreSQL (pool o tx).
type InviteRepo struct {
	q Querier
}

// NewInviteRepository construye el adaptador.
func NewInviteRepository(q Querier) *InviteRepo {
	return &InviteRepo{q: q}
}

func scanInvite(row pgx.Row) (*entity.Invite, error) {
	var i entity.Invite
	err := row.Scan(
		&i.IDInvite, &i.SenderID, &i.Token, &i.Email, &i.Role, &i.ExpiresAt,
		&i.FlActive, &i.CreatedAt, &i.UpdatedAt, &i.CreationUserID, &i.UpdateUserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}

// Create persiste un nuevo convite.
func (r *InviteRepo) Create(ctx context.Context, invite *entity.Invite) (*entity.Invite, error) {
	query := `
		INSERT INTO invite (sender_id, token, email, role, expires_at, creation_user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + inviteColumns
	created, err := scanInvite(r.q.QueryRow(ctx, query,
		invite.SenderID, invite.Token, invite.Email, invite.Role, invite.ExpiresAt, invite.CreationUserID,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.Raise(domain.CodeInviteAlreadySent)
		}
		return nil, fmt.Errorf("insert invite: %w", err)
	}
	return created, nil
}

// GetByToken obtiene un convite por token.
func (r *InviteRepo) GetByToken(ctx context.Context, token string) (*entity.Invite, error) {
	query := `SELECT ` + inviteColumns + ` FROM invite WHERE token = $1`
	i, err := scanInvite(r.q.QueryRow(ctx, query, token))
	if err != nil {
		return nil, fmt.Errorf("get invite by token: %w", err)
	}
	return i, nil
}

// GetByID obtiene un convite por id.
func (r *InviteRepo) GetByID(ctx context.Context, id int64) (*entity.Invite, error) {
	query := `SELECT ` + inviteColumns + ` FROM invite WHERE id_invite = $1`
	i, err := scanInvite(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get invite by id: %w", err)
	}
	return i, nil
}

// GetByEmail obtiene el convite pendiente para un email.
func (r *InviteRepo) GetByEmail(ctx context.Context, email string) (*entity.Invite, error) {
	query := `SELECT ` + inviteColumns + ` FROM invite WHERE email = $1`
	i, err := scanInvite(r.q.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("get invite by email: %w", err)
	}
	return i, nil
}

// ListBySender lista los convites enviados por un usuario.
func (r *InviteRepo) ListBySender(ctx context.Context, senderID int64) ([]*entity.Invite, error) {
	query := `SELECT ` + inviteColumns + ` FROM invite WHERE sender_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, senderID)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invite
	for rows.Next() {
		var i entity.Invite
		if err := rows.Scan(
			&i.IDInvite, &i.SenderID, &i.Token, &i.Email, &i.Role, &i.ExpiresAt,
			&i.FlActive, &i.CreatedAt, &i.UpdatedAt, &i.CreationUserID, &i.UpdateUserID,
		); err != nil {
			return nil, fmt.Errorf("scan invite: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// Delete elimina un convite por id.
func (r *InviteRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM invite WHERE id_invite = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invite: %w", err)
	}
	return nil
}
