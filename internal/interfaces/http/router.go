package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clientbottle/clientbottle-api/internal/application/auth"
	"github.com/clientbottle/clientbottle-api/internal/application/brand"
	"github.com/clientbottle/clientbottle-api/internal/application/invite"
	"github.com/clientbottle/clientbottle-api/internal/application/report"
	"github.com/clientbottle/clientbottle-api/internal/application/transaction"
	"github.com/clientbottle/clientbottle-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	InviteUC      *invite.UseCase
	TransactionUC *transaction.UseCase
	BrandUC       *brand.UseCase
	ReportUC      *report.UseCase
	JWTSecret     string
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC)
	inviteHandler := NewInviteHandler(deps.InviteUC)
	txHandler := NewTransactionHandler(deps.TransactionUC)
	brandHandler := NewBottleBrandHandler(deps.BrandUC)
	reportHandler := NewReportHandler(deps.ReportUC)

	// Barrido nocturno de tokens vencidos, colgado de todas las rutas.
	app.Use(TokenSweepMiddleware(deps.AuthUC, deps.Log))

	// Rutas públicas
	app.Post("/auth/login/", authHandler.Login)
	app.Post("/user/confirm", inviteHandler.ConfirmUser)
	app.Post("/user/recover-password", inviteHandler.RequestRecover)
	app.Patch("/user/recover-password", inviteHandler.ResetPassword)

	// Rutas autenticadas
	authed := app.Group("/", AuthMiddleware(deps.JWTSecret))
	authed.Get("/ping/", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	authed.Get("/auth/me/", authHandler.Me)
	authed.Patch("/auth/me/deactivate", authHandler.DeactivateSelf)
	authed.Delete("/auth/me/", authHandler.DeleteSelf)

	authed.Get("/transaction/", txHandler.List)
	authed.Post("/transaction/", txHandler.Create)
	authed.Put("/transaction/:id", txHandler.Update)
	authed.Delete("/transaction/:id", txHandler.Deactivate)

	authed.Post("/bottle-brand/", brandHandler.Create)
	authed.Get("/bottle-brand/", brandHandler.List)
	authed.Get("/bottle-brand/search", brandHandler.Search)
	authed.Patch("/bottle-brand/", brandHandler.Rename)
	authed.Delete("/bottle-brand/", brandHandler.Delete)

	authed.Post("/generate-report/", reportHandler.Generate)

	// Rutas de administración
	admin := authed.Group("/", RequireAdmin())
	admin.Get("/auth/users/", authHandler.ListUsers)
	admin.Patch("/auth/users/deactivate", authHandler.DeactivateUser)
	admin.Patch("/auth/users/reactivate", authHandler.ReactivateUser)
	admin.Post("/invite/", inviteHandler.Create)
	admin.Get("/invite/", inviteHandler.List)
	admin.Delete("/invite/", inviteHandler.Delete)
}
