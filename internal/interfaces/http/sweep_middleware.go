package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clientbottle/clientbottle-api/pkg/jwt"
	"github.com/clientbottle/clientbottle-api/pkg/logger"
)

// tokenSweeper borra tokens de sesión vencidos.
type tokenSweeper interface {
	RemoveExpiredTokens(ctx context.Context) (int64, error)
}

// inSweepWindow la franja nocturna 18h-8h (hora de Brasil) en la que se
// barren tokens vencidos: fuera del horario comercial el costo no molesta.
func inSweepWindow(hour int) bool {
	return hour >= 18 || hour < 8
}

// TokenSweepMiddleware barre tokens vencidos de forma síncrona durante la
// franja nocturna. Un fallo del barrido solo se loguea, nunca voltea la
// petición que lo disparó.
func TokenSweepMiddleware(sweeper tokenSweeper, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if inSweepWindow(time.Now().In(jwt.BrazilTZ()).Hour()) {
			n, err := sweeper.RemoveExpiredTokens(c.Context())
			if err != nil {
				log.Error().Err(err).Msg("barrido de tokens vencidos")
			} else if n > 0 {
				log.Info().Int64("removed", n).Msg("tokens vencidos barridos")
			}
		}
		return c.Next()
	}
}
