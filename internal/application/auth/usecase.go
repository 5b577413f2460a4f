package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/clientbottle/clientbottle-api/internal/application/dto"
	"github.com/clientbottle/clientbottle-api/internal/domain"
	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
	"github.com/clientbottle/clientbottle-api/internal/domain/repository"
	"github.com/clientbottle/clientbottle-api/pkg/jwt"
)

// UseCase casos de uso de autenticación y administración de usuarios.
type UseCase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.UserTokenRepository
	secret    string
	now       func() time.Time
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, tokenRepo repository.UserTokenRepository, secret string) *UseCase {
	return &UseCase{userRepo: userRepo, tokenRepo: tokenRepo, secret: secret, now: time.Now}
}

// Login verifica login/password, genera el JWT con snapshot del usuario y
// persiste el token emitido. El login matchea por igualdad exacta contra
// email o username.
//
// Una cuenta desactivada por el propio usuario (update_user_id == id_user) se
// reactiva automáticamente en el login; una desactivada por un administrador
// queda bloqueada.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Login == "" || in.Password == "" {
		return nil, domain.Raise(domain.CodeValidation)
	}
	user, err := uc.userRepo.GetByEmailOrUsername(ctx, in.Login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.Raise(domain.CodeLoginNotFound)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, domain.Raise(domain.CodeInvalidCredentials)
	}
	if !user.FlActive {
		if user.UpdateUserID == nil || *user.UpdateUserID != user.IDUser {
			return nil, domain.Raise(domain.CodeUserInactive)
		}
		if err := uc.userRepo.SetActive(ctx, user.IDUser, true, user.IDUser); err != nil {
			return nil, err
		}
		user, err = uc.userRepo.GetByID(ctx, user.IDUser)
		if err != nil {
			return nil, err
		}
	}

	expiresAt := jwt.ExpirationTime(uc.now())
	token, err := jwt.Generate(uc.secret, snapshot(user), expiresAt)
	if err != nil {
		return nil, err
	}
	if err := uc.tokenRepo.Create(ctx, &entity.UserToken{
		IDUser:    user.IDUser,
		ApiKey:    token,
		ExpiresAt: expiresAt,
		Audit:     entity.Audit{CreationUserID: user.IDUser},
	}); err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		User: *ToUserResponse(user),
		Token: dto.TokenResponse{
			TokenType:   "bearer",
			AccessToken: token,
			ExpiresAt:   expiresAt.Unix(),
		},
	}, nil
}

// List devuelve todos los usuarios (solo administradores, chequeado en el router).
func (uc *UseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *ToUserResponse(u))
	}
	return out, nil
}

// SetActive activa o desactiva un usuario resuelto por selector. Rechaza el
// cambio si el usuario ya está en el estado pedido.
func (uc *UseCase) SetActive(ctx context.Context, adminID int64, sel dto.UserSelectorRequest, active bool) (*dto.UserResponse, error) {
	user, err := uc.resolveSelector(ctx, sel)
	if err != nil {
		return nil, err
	}
	if user.FlActive == active {
		return nil, domain.Raise(domain.CodeAlreadyInState)
	}
	if err := uc.userRepo.SetActive(ctx, user.IDUser, active, adminID); err != nil {
		return nil, err
	}
	if !active {
		// Una desactivación por admin también corta las sesiones vivas.
		if err := uc.tokenRepo.DeleteByUser(ctx, user.IDUser); err != nil {
			return nil, err
		}
	}
	user, err = uc.userRepo.GetByID(ctx, user.IDUser)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// DeactivateSelf desactiva la propia cuenta. Queda marcada como auto-desactivada
// (update_user_id == id_user) y se reactiva sola en el próximo login.
func (uc *UseCase) DeactivateSelf(ctx context.Context, userID int64) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.Raise(domain.CodeNotFound)
	}
	if err := uc.userRepo.SetActive(ctx, userID, false, userID); err != nil {
		return err
	}
	return uc.tokenRepo.DeleteByUser(ctx, userID)
}

// DeleteSelf borra físicamente la propia cuenta y sus tokens.
func (uc *UseCase) DeleteSelf(ctx context.Context, userID int64) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.Raise(domain.CodeNotFound)
	}
	if err := uc.tokenRepo.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	return uc.userRepo.Delete(ctx, userID)
}

// RemoveExpiredTokens borra los tokens de sesión vencidos; devuelve cuántos borró.
func (uc *UseCase) RemoveExpiredTokens(ctx context.Context) (int64, error) {
	return uc.tokenRepo.DeleteExpired(ctx, uc.now())
}

// resolveSelector resuelve el usuario a partir de exactamente un criterio:
// cero criterios es entrada inválida; más de uno es ambiguo.
func (uc *UseCase) resolveSelector(ctx context.Context, sel dto.UserSelectorRequest) (*entity.User, error) {
	count := 0
	if sel.IDUser != nil {
		count++
	}
	if sel.Email != nil {
		count++
	}
	if sel.Username != nil {
		count++
	}
	if count == 0 {
		return nil, domain.Raise(domain.CodeValidation)
	}
	if count > 1 {
		return nil, domain.Raise(domain.CodeAmbiguousSelector)
	}

	var user *entity.User
	var err error
	switch {
	case sel.IDUser != nil:
		user, err = uc.userRepo.GetByID(ctx, *sel.IDUser)
	case sel.Email != nil:
		user, err = uc.userRepo.GetByEmail(ctx, *sel.Email)
	default:
		user, err = uc.userRepo.GetByUsername(ctx, *sel.Username)
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.Raise(domain.CodeNotFound)
	}
	return user, nil
}

func snapshot(u *entity.User) jwt.UserSnapshot {
	return jwt.UserSnapshot{
		IDUser:         u.IDUser,
		Username:       u.Username,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           u.Role,
		FlActive:       u.FlActive,
		CreationUserID: u.CreationUserID,
		CreatedAt:      u.CreatedAt,
		UpdateUserID:   u.UpdateUserID,
		UpdatedAt:      u.UpdatedAt,
	}
}

// ToUserResponse convierte la entidad al DTO de salida (timestamps unix, sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	out := &dto.UserResponse{
		IDUser:         u.IDUser,
		Username:       u.Username,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           u.Role,
		FlActive:       u.FlActive,
		CreationUserID: u.CreationUserID,
		CreatedAt:      u.CreatedAt.Unix(),
		UpdateUserID:   u.UpdateUserID,
	}
	if u.UpdatedAt != nil {
		ts := u.UpdatedAt.Unix()
		out.UpdatedAt = &ts
	}
	return out
}
