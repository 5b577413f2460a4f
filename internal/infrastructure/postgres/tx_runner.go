package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clientbottle/clientbottle-api/internal/application/invite"
	"github.com/clientbottle/clientbottle-api/internal/domain/repository"
)

// Ensure TxRunner implements invite.TxRunner.
var _ invite.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunConfirmUser inicia una transacción con repos de usuario y convite atados
// a la tx y hace Commit o Rollback. La creación del usuario y el borrado del
// convite quedan en la misma unidad de trabajo: el usuario se inserta primero
// y el convite solo se borra si esa inserción no falló.
func (r *TxRunner) RunConfirmUser(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	inviteRepo repository.InviteRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userRepo := NewUserRepository(tx)
	inviteRepo := NewInviteRepository(tx)

	if err := fn(userRepo, inviteRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
