package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/clientbottle/clientbottle-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func testSnapshot() pkgjwt.UserSnapshot {
	return pkgjwt.UserSnapshot{
		IDUser:         7,
		Username:       "joao",
		Email:          "joao@example.com",
		FullName:       "João da Silva",
		Role:           "ADMINISTRATOR",
		FlActive:       true,
		CreationUserID: 1,
		CreatedAt:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGenerateAndParse_Snapshot(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	tok, err := pkgjwt.Generate(testSecret, testSnapshot(), exp)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, int64(7), claims.IDUser)
	assert.Equal(t, "joao", claims.Username)
	assert.Equal(t, "joao@example.com", claims.Email)
	assert.Equal(t, "João da Silva", claims.FullName)
	assert.Equal(t, "ADMINISTRATOR", claims.Role)
	assert.True(t, claims.FlActive)
	assert.Equal(t, int64(1), claims.CreationUserID)
	assert.NotEmpty(t, claims.ID, "el jti debe venir poblado")
}

func TestGenerate_JTIUnicoPorLlamada(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	a, err := pkgjwt.Generate(testSecret, testSnapshot(), exp)
	require.NoError(t, err)
	b, err := pkgjwt.Generate(testSecret, testSnapshot(), exp)
	require.NoError(t, err)

	// Mismo usuario y misma expiración, pero el jti hace únicos los tokens.
	assert.NotEqual(t, a, b)

	ca, err := pkgjwt.Parse(testSecret, a)
	require.NoError(t, err)
	cb, err := pkgjwt.Parse(testSecret, b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSnapshot(), time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrExpired)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSnapshot(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)
}

func TestParse_TokenMalformado(t *testing.T) {
	_, err := pkgjwt.Parse(testSecret, "token.invalido.aqui")
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)
}

func TestExpirationTime_TresDeLaManianaSiguiente(t *testing.T) {
	tz := pkgjwt.BrazilTZ()

	// Emitido a media tarde: expira a las 03:00 del día siguiente.
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, tz)
	exp := pkgjwt.ExpirationTime(now)
	assert.Equal(t, time.Date(2025, 3, 11, 3, 0, 0, 0, tz), exp)

	// Emitido pasada la medianoche: sigue siendo las 03:00 del día siguiente.
	now = time.Date(2025, 3, 10, 1, 0, 0, 0, tz)
	exp = pkgjwt.ExpirationTime(now)
	assert.Equal(t, time.Date(2025, 3, 11, 3, 0, 0, 0, tz), exp)

	// Fin de mes: cruza al primer día del mes siguiente.
	now = time.Date(2025, 1, 31, 22, 0, 0, 0, tz)
	exp = pkgjwt.ExpirationTime(now)
	assert.Equal(t, time.Date(2025, 2, 1, 3, 0, 0, 0, tz), exp)
}

func TestExpirationTime_MismoInstanteParaTodoElDia(t *testing.T) {
	tz := pkgjwt.BrazilTZ()
	morning := pkgjwt.ExpirationTime(time.Date(2025, 6, 5, 9, 0, 0, 0, tz))
	evening := pkgjwt.ExpirationTime(time.Date(2025, 6, 5, 23, 59, 0, 0, tz))
	assert.Equal(t, morning, evening, "todos los tokens del día expiran juntos")
}
