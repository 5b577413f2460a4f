package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Errores de parseo diferenciados para que el middleware pueda mapear
// SESSION_EXPIRED vs TOKEN_INVALID.
var (
	ErrExpired = errors.New("jwt: token expirado")
	ErrInvalid = errors.New("jwt: token inválido")
)

// Claims incluye los claims estándar JWT más el snapshot completo del usuario.
// El snapshot evita consultar la DB en cada petición autenticada: el middleware
// decide con lo que viene firmado en el token.
type Claims struct {
	jwt.RegisteredClaims
	IDUser         int64  `json:"id_user"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	Role           string `json:"role"` // "USER" | "ADMINISTRATOR"
	FlActive       bool   `json:"fl_active"`
	CreationUserID int64  `json:"creation_user_id"`
	CreatedAt      int64  `json:"created_at"`
	UpdateUserID   *int64 `json:"update_user_id"`
	UpdatedAt      *int64 `json:"updated_at"`
}

// UserSnapshot datos del usuario que viajan dentro del token.
type UserSnapshot struct {
	IDUser         int64
	Username       string
	Email          string
	FullName       string
	Role           string
	FlActive       bool
	CreationUserID int64
	CreatedAt      time.Time
	UpdateUserID   *int64
	UpdatedAt      *time.Time
}

var brazilTZ = mustLoadBrazil()

func mustLoadBrazil() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		panic("jwt: cargar zona horaria America/Sao_Paulo: " + err.Error())
	}
	return loc
}

// BrazilTZ devuelve la zona horaria fija del negocio.
func BrazilTZ() *time.Location { return brazilTZ }

// ExpirationTime devuelve las 03:00 del día siguiente en hora de Brasil.
// Todos los tokens emitidos el mismo día expiran en el mismo instante.
func ExpirationTime(now time.Time) time.Time {
	tomorrow := now.In(brazilTZ).AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 3, 0, 0, 0, brazilTZ)
}

// Generate genera un token JWT HS256 firmado con el snapshot del usuario,
// un jti único y la expiración recibida.
func Generate(secret string, user UserSnapshot, expiresAt time.Time) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		IDUser:         user.IDUser,
		Username:       user.Username,
		Email:          user.Email,
		FullName:       user.FullName,
		Role:           user.Role,
		FlActive:       user.FlActive,
		CreationUserID: user.CreationUserID,
		CreatedAt:      user.CreatedAt.Unix(),
		UpdateUserID:   user.UpdateUserID,
	}
	if user.UpdatedAt != nil {
		ts := user.UpdatedAt.Unix()
		claims.UpdatedAt = &ts
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve los claims. Retorna ErrExpired para tokens
// vencidos y ErrInvalid para firma incorrecta o tokens malformados.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}
