package invite

import (
	"context"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clientbottle/clientbottle-api/internal/application/dto"
	"github.com/clientbottle/clientbottle-api/internal/domain"
	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
	"github.com/clientbottle/clientbottle-api/internal/domain/repository"
)

// inviteTTL vigencia de un convite de registro.
const inviteTTL = 24 * time.Hour

// TxRunner ejecuta la confirmación de usuario dentro de una transacción:
// el usuario se crea y el convite se borra en la misma unidad de trabajo.
type TxRunner interface {
	RunConfirmUser(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		inviteRepo repository.InviteRepository,
	) error) error
}

// Mailer puerto de envío de correos transaccionales.
type Mailer interface {
	SendInvite(email, token string)
	SendRecovery(email, token string)
}

// UseCase casos de uso de convites, confirmación de registro y recuperación
// de contraseña.
type UseCase struct {
	inviteRepo  repository.InviteRepository
	userRepo    repository.UserRepository
	recoverRepo repository.RecoverPasswordRepository
	tokenRepo   repository.UserTokenRepository
	txRunner    TxRunner
	mailer      Mailer
	now         func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	inviteRepo repository.InviteRepository,
	userRepo repository.UserRepository,
	recoverRepo repository.RecoverPasswordRepository,
	tokenRepo repository.UserTokenRepository,
	txRunner TxRunner,
	mailer Mailer,
) *UseCase {
	return &UseCase{
		inviteRepo:  inviteRepo,
		userRepo:    userRepo,
		recoverRepo: recoverRepo,
		tokenRepo:   tokenRepo,
		txRunner:    txRunner,
		mailer:      mailer,
		now:         time.Now,
	}
}

// Create registra un convite de 24h para el email y dispara el correo con el
// link de confirmación. Un convite pendiente vencido se reemplaza; uno vigente
// bloquea el reenvío.
func (uc *UseCase) Create(ctx context.Context, senderID int64, in dto.CreateInviteRequest) (*dto.InviteResponse, error) {
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, domain.RaiseMsg(domain.CodeValidation, "Email inválido. Verifique o endereço informado.")
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !entity.ValidRole(role) {
		return nil, domain.Raise(domain.CodeValidation)
	}

	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Raise(domain.CodeEmailRegistered)
	}

	pending, err := uc.inviteRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		if !pending.Expired(uc.now()) {
			return nil, domain.Raise(domain.CodeInviteAlreadySent)
		}
		if err := uc.inviteRepo.Delete(ctx, pending.IDInvite); err != nil {
			return nil, err
		}
	}

	inv := &entity.Invite{
		SenderID:  senderID,
		Token:     uuid.New().String(),
		Email:     in.Email,
		Role:      role,
		ExpiresAt: uc.now().Add(inviteTTL),
		Audit:     entity.Audit{CreationUserID: senderID},
	}
	created, err := uc.inviteRepo.Create(ctx, inv)
	if err != nil {
		return nil, err
	}
	uc.mailer.SendInvite(created.Email, created.Token)
	return toInviteResponse(created), nil
}

// List devuelve los convites pendientes enviados por el usuario.
func (uc *UseCase) List(ctx context.Context, senderID int64) ([]dto.InviteResponse, error) {
	invites, err := uc.inviteRepo.ListBySender(ctx, senderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InviteResponse, 0, len(invites))
	for _, inv := range invites {
		out = append(out, *toInviteResponse(inv))
	}
	return out, nil
}

// Delete revoca un convite pendiente, resuelto por token o por id,
// exactamente uno de los dos.
func (uc *UseCase) Delete(ctx context.Context, sel dto.InviteSelector) error {
	if sel.Token == nil && sel.IDInvite == nil {
		return domain.Raise(domain.CodeValidation)
	}
	if sel.Token != nil && sel.IDInvite != nil {
		return domain.Raise(domain.CodeAmbiguousSelector)
	}
	var inv *entity.Invite
	var err error
	if sel.Token != nil {
		// La columna token es uuid; validar acá evita que pgx falle el encode.
		if _, err := uuid.Parse(*sel.Token); err != nil {
			return domain.Raise(domain.CodeValidation)
		}
		inv, err = uc.inviteRepo.GetByToken(ctx, *sel.Token)
	} else {
		inv, err = uc.inviteRepo.GetByID(ctx, *sel.IDInvite)
	}
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.Raise(domain.CodeNotFound)
	}
	return uc.inviteRepo.Delete(ctx, inv.IDInvite)
}

// ConfirmUser completa el registro desde un convite: valida el token, chequea
// unicidad de username y email, y crea el usuario borrando el convite en la
// misma transacción.
func (uc *UseCase) ConfirmUser(ctx context.Context, in dto.ConfirmUserRequest) (*dto.ConfirmUserResponse, error) {
	if in.Token == "" || in.Username == "" || in.Password == "" || in.FullName == "" {
		return nil, domain.Raise(domain.CodeValidation)
	}
	if _, err := uuid.Parse(in.Token); err != nil {
		return nil, domain.Raise(domain.CodeInvalidInvite)
	}
	inv, err := uc.inviteRepo.GetByToken(ctx, in.Token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.Raise(domain.CodeInvalidInvite)
	}
	if inv.Expired(uc.now()) {
		_ = uc.inviteRepo.Delete(ctx, inv.IDInvite)
		return nil, domain.Raise(domain.CodeExpiredInvite)
	}

	if taken, err := uc.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if taken != nil {
		return nil, domain.Raise(domain.CodeUsernameInUse)
	}
	if registered, err := uc.userRepo.GetByEmail(ctx, inv.Email); err != nil {
		return nil, err
	} else if registered != nil {
		return nil, domain.Raise(domain.CodeEmailRegistered)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var created *entity.User
	err = uc.txRunner.RunConfirmUser(ctx, func(userRepo repository.UserRepository, inviteRepo repository.InviteRepository) error {
		created, err = userRepo.Create(ctx, &entity.User{
			Username: in.Username,
			Email:    inv.Email,
			Password: string(hash),
			FullName: in.FullName,
			Role:     inv.Role,
			Audit:    entity.Audit{CreationUserID: inv.SenderID},
		})
		if err != nil {
			return err
		}
		return inviteRepo.Delete(ctx, inv.IDInvite)
	})
	if err != nil {
		return nil, err
	}
	return &dto.ConfirmUserResponse{
		FullName: created.FullName,
		Email:    created.Email,
		Role:     created.Role,
		FlActive: created.FlActive,
	}, nil
}

// RequestRecover genera un token de recuperación de contraseña y dispara el
// correo. La respuesta es neutra: un login inexistente no revela nada, y un
// pedido anterior pendiente del mismo email queda invalidado.
func (uc *UseCase) RequestRecover(ctx context.Context, login string) error {
	if login == "" {
		return domain.Raise(domain.CodeValidation)
	}
	user, err := uc.userRepo.GetByEmailOrUsername(ctx, login)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	if err := uc.recoverRepo.DeleteByEmail(ctx, user.Email); err != nil {
		return err
	}
	rec := &entity.RecoverPassword{
		IDUser: user.IDUser,
		Token:  uuid.New().String(),
		Email:  user.Email,
		Audit:  entity.Audit{CreationUserID: user.IDUser},
	}
	created, err := uc.recoverRepo.Create(ctx, rec)
	if err != nil {
		return err
	}
	uc.mailer.SendRecovery(created.Email, created.Token)
	return nil
}

// ResetPassword fija la nueva contraseña con un token de recuperación válido.
// El token es de uso único y el cambio cierra las sesiones vivas del usuario.
func (uc *UseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	if in.Token == "" || in.Password == "" {
		return domain.Raise(domain.CodeValidation)
	}
	if _, err := uuid.Parse(in.Token); err != nil {
		return domain.Raise(domain.CodeInvalidRecoveryToken)
	}
	rec, err := uc.recoverRepo.GetByToken(ctx, in.Token)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.Raise(domain.CodeInvalidRecoveryToken)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uc.userRepo.UpdatePassword(ctx, rec.IDUser, string(hash), rec.IDUser); err != nil {
		return err
	}
	if err := uc.recoverRepo.Delete(ctx, rec.IDRecoverPassword); err != nil {
		return err
	}
	return uc.tokenRepo.DeleteByUser(ctx, rec.IDUser)
}

func toInviteResponse(i *entity.Invite) *dto.InviteResponse {
	return &dto.InviteResponse{
		IDInvite:  i.IDInvite,
		Email:     i.Email,
		Role:      i.Role,
		CreatedAt: i.CreatedAt.Unix(),
		ExpiresAt: i.ExpiresAt.Unix(),
	}
}
