package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/clientbottle/clientbottle-api/internal/domain"
	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
	"github.com/clientbottle/clientbottle-api/pkg/jwt"
)

// LocalSession key de los claims de sesión en Fiber Locals.
const LocalSession = "session"

// AuthMiddleware resuelve la sesión desde Authorization: Bearer o X-API-KEY
// (Authorization gana). El snapshot firmado en el token alcanza para decidir:
// no hay consulta a la DB por petición.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			token = strings.TrimSpace(c.Get("X-API-KEY"))
		}
		if token == "" {
			return domain.Raise(domain.CodeAuthenticationRequired)
		}

		claims, err := jwt.Parse(secret, token)
		if err != nil {
			if errors.Is(err, jwt.ErrExpired) {
				return domain.Raise(domain.CodeSessionExpired)
			}
			return domain.Raise(domain.CodeTokenInvalid)
		}
		if !claims.FlActive {
			return domain.Raise(domain.CodeUserInactive)
		}
		c.Locals(LocalSession, claims)
		return c.Next()
	}
}

// RequireAdmin corta las rutas de administración para roles no ADMINISTRATOR.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := Session(c)
		if s == nil || s.Role != entity.RoleAdministrator {
			return domain.Raise(domain.CodeAccessDenied)
		}
		return c.Next()
	}
}

// Session devuelve los claims de la sesión (después del AuthMiddleware).
func Session(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalSession).(*jwt.Claims)
	return claims
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
