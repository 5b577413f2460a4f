package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/clientbottle/clientbottle-api/internal/application/apptest"
	"github.com/clientbottle/clientbottle-api/internal/application/auth"
	"github.com/clientbottle/clientbottle-api/internal/application/dto"
	"github.com/clientbottle/clientbottle-api/internal/domain"
	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
	pkgjwt "github.com/clientbottle/clientbottle-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func seedUser(t *testing.T, repo *apptest.UserRepo, username, email, password, role string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u, err := repo.Create(context.Background(), &entity.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		FullName: username,
		Role:     role,
		Audit:    entity.Audit{CreationUserID: 1},
	})
	require.NoError(t, err)
	return u
}

func requireCode(t *testing.T, err error, code domain.Code) {
	t.Helper()
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.True(t, derr.HasCode(code.Code), "se esperaba %s, vino %v", code.Code, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_PorEmailYPorUsername(t *testing.T) {
	users := apptest.NewUserRepo()
	tokens := &apptest.TokenRepo{}
	seedUser(t, users, "joao", "joao@example.com", "secret123", entity.RoleUser)
	uc := auth.NewUseCase(users, tokens, testSecret)

	for _, login := range []string{"joao@example.com", "joao"} {
		out, err := uc.Login(context.Background(), dto.LoginRequest{Login: login, Password: "secret123"})
		require.NoError(t, err, "login con %q", login)
		assert.Equal(t, "bearer", out.Token.TokenType)
		assert.NotEmpty(t, out.Token.AccessToken)
		assert.Equal(t, "joao", out.User.Username)
	}
	assert.Len(t, tokens.Tokens, 2, "cada login persiste su token")
}

func TestLogin_TokenConSnapshotYExpiracion(t *testing.T) {
	users := apptest.NewUserRepo()
	seedUser(t, users, "ana", "ana@example.com", "secret123", entity.RoleAdministrator)
	uc := auth.NewUseCase(users, &apptest.TokenRepo{}, testSecret)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Login: "ana", Password: "secret123"})
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, out.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, entity.RoleAdministrator, claims.Role)

	// La expiración es las 03:00 del día siguiente en hora de Brasil.
	exp := time.Unix(out.Token.ExpiresAt, 0).In(pkgjwt.BrazilTZ())
	assert.Equal(t, 3, exp.Hour())
	assert.Equal(t, pkgjwt.ExpirationTime(time.Now()).Unix(), out.Token.ExpiresAt)
}

func TestLogin_CuentaInexistente(t *testing.T) {
	uc := auth.NewUseCase(apptest.NewUserRepo(), &apptest.TokenRepo{}, testSecret)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Login: "nadie", Password: "x"})
	requireCode(t, err, domain.CodeLoginNotFound)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	users := apptest.NewUserRepo()
	seedUser(t, users, "joao", "joao@example.com", "secret123", entity.RoleUser)
	uc := auth.NewUseCase(users, &apptest.TokenRepo{}, testSecret)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Login: "joao", Password: "otra"})
	requireCode(t, err, domain.CodeInvalidCredentials)
}

func TestLogin_DesactivadoPorAdmin_Bloqueado(t *testing.T) {
	users := apptest.NewUserRepo()
	u := seedUser(t, users, "joao", "joao@example.com", "secret123", entity.RoleUser)
	admin := seedUser(t, users, "admin", "admin@example.com", "secret123", entity.RoleAdministrator)
	require.NoError(t, users.SetActive(context.Background(), u.IDUser, false, admin.IDUser))
	uc := auth.NewUseCase(users, &apptest.TokenRepo{}, testSecret)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Login: "joao", Password: "secret123"})
	requireCode(t, err, domain.CodeUserInactive)
}

func TestLogin_AutoDesactivado_SeReactivaSolo(t *testing.T) {
	users := apptest.NewUserRepo()
	u := seedUser(t, users, "joao", "joao@example.com", "secret123", entity.RoleUser)
	// Desactivación propia: update_user_id == id_user.
	require.NoError(t, users.SetActive(context.Background(), u.IDUser, false, u.IDUser))
	uc := auth.NewUseCase(users, &apptest.TokenRepo{}, testSecret)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Login: "joao", Password: "secret123"})
	require.NoError(t, err, "la cuenta auto-desactivada se reactiva en el login")
	assert.True(t, out.User.FlActive)

	stored, err := users.GetByID(context.Background(), u.IDUser)
	require.NoError(t, err)
	assert.True(t, stored.FlActive)
}

// ──────────────────────────────────────────────────────────────────────────────
// Administración de usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestSetActive_SelectorExactamenteUno(t *testing.T) {
	users := apptest.NewUserRepo()
	seedUser(t, users, "joao", "joao@example.com", "secret123", entity.RoleUser)
	uc := auth.NewUseCase(users, &apptest.TokenRepo{}, testSecret)
	ctx := context.Background()

	_, err := uc.SetActive(ctx, 99, dto.UserSelectorRequest{}, false)
	requireCode(t, err, domain.CodeValidation)

	id := int64(1)
	email := "joao@example.com"
	_, err = uc.SetActive(ctx, 99, dto.UserSelectorRequest{IDUser: &id, Email: &email}, false)
	requireCode(t, err, domain.CodeAmbiguousSelector)

	// Más de un criterio es un conflicto, no un error de validación.
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 409, derr.Status)
}

func TestSetActive_UsuarioInexistente(t *testing.T) {
	uc := auth.NewUseCase(apptest.NewUserRepo(), &apptest.TokenRepo{}, testSecret)
	id := int64(404)
	_, err := uc.SetActive(context.Background(), 99, dto.UserSelectorRequest{IDUser: &id}, false)
	requireCode(t, err, domain.CodeNotFound)
}

func TestSetActive_YaEnEseEstado(t *testing.T) {
	users := apptest.NewUserRepo()
	u := seedUser(t, users, "joao", "joao@example.com", "secret123", entity.RoleUser)
	uc := auth.NewUseCase(users, &apptest.TokenRepo{}, testSecret)

	_, err := uc.SetActive(context.Background(), 99, dto.UserSelectorRequest{IDUser: &u.IDUser}, true)
	requireCode(t, err, domain.CodeAlreadyInState)
}

func TestSetActive_DesactivarCortaSesiones(t *testing.T) {
	users := apptest.NewUserRepo()
	tokens := &apptest.TokenRepo{}
	u := seedUser(t, users, "joao", "joao@example.com", "secret123", entity.RoleUser)
	admin := seedUser(t, users, "admin", "admin@example.com", "secret123", entity.RoleAdministrator)
	uc := auth.NewUseCase(users, tokens, testSecret)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Login: "joao", Password: "secret123"})
	require.NoError(t, err)
	require.Len(t, tokens.Tokens, 1)

	out, err := uc.SetActive(ctx, admin.IDUser, dto.UserSelectorRequest{Username: &u.Username}, false)
	require.NoError(t, err)
	assert.False(t, out.FlActive)
	assert.Equal(t, admin.IDUser, *out.UpdateUserID, "queda registrado quién desactivó")
	assert.Empty(t, tokens.Tokens, "los tokens del usuario desactivado se borran")
}

func TestDeactivateSelf_QuedaComoAutoDesactivado(t *testing.T) {
	users := apptest.NewUserRepo()
	u := seedUser(t, users, "joao", "joao@example.com", "secret123", entity.RoleUser)
	uc := auth.NewUseCase(users, &apptest.TokenRepo{}, testSecret)

	require.NoError(t, uc.DeactivateSelf(context.Background(), u.IDUser))

	stored, err := users.GetByID(context.Background(), u.IDUser)
	require.NoError(t, err)
	assert.False(t, stored.FlActive)
	assert.Equal(t, u.IDUser, *stored.UpdateUserID, "update_user_id = él mismo habilita la auto-reactivación")
}

func TestDeleteSelf_BorraUsuarioYTokens(t *testing.T) {
	users := apptest.NewUserRepo()
	tokens := &apptest.TokenRepo{}
	seedUser(t, users, "joao", "joao@example.com", "secret123", entity.RoleUser)
	uc := auth.NewUseCase(users, tokens, testSecret)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Login: "joao", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteSelf(ctx, 1))

	stored, err := users.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, stored, "el borrado es físico")
	assert.Empty(t, tokens.Tokens)
}

func TestRemoveExpiredTokens(t *testing.T) {
	tokens := &apptest.TokenRepo{Tokens: []*entity.UserToken{
		{IDUser: 1, ApiKey: "viejo", ExpiresAt: time.Now().Add(-time.Hour)},
		{IDUser: 1, ApiKey: "vigente", ExpiresAt: time.Now().Add(time.Hour)},
	}}
	uc := auth.NewUseCase(apptest.NewUserRepo(), tokens, testSecret)

	n, err := uc.RemoveExpiredTokens(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.Len(t, tokens.Tokens, 1)
	assert.Equal(t, "vigente", tokens.Tokens[0].ApiKey)
}
