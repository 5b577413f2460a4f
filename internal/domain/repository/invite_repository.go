package repository

import (
	"context"

	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
)

// InviteRepository persistencia de convites de registro.
type InviteRepository interface {
	Create(ctx context.Context, invite *entity.Invite) (*entity.Invite, error)
	GetByToken(ctx context.Context, token string) (*entity.Invite, error)
	GetByID(ctx context.Context, id int64) (*entity.Invite, error)
	GetByEmail(ctx context.Context, email string) (*entity.Invite, error)
	ListBySender(ctx context.Context, senderID int64) ([]*entity.Invite, error)
	Delete(ctx context.Context, id int64) error
}
