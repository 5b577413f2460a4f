package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/clientbottle/clientbottle-api/internal/application/auth"
	"github.com/clientbottle/clientbottle-api/internal/application/brand"
	"github.com/clientbottle/clientbottle-api/internal/application/invite"
	"github.com/clientbottle/clientbottle-api/internal/application/report"
	"github.com/clientbottle/clientbottle-api/internal/application/transaction"
	"github.com/clientbottle/clientbottle-api/internal/infrastructure/email"
	infrapdf "github.com/clientbottle/clientbottle-api/internal/infrastructure/pdf"
	"github.com/clientbottle/clientbottle-api/internal/infrastructure/postgres"
	"github.com/clientbottle/clientbottle-api/internal/infrastructure/storage"
	httpRouter "github.com/clientbottle/clientbottle-api/internal/interfaces/http"
	"github.com/clientbottle/clientbottle-api/pkg/config"
	"github.com/clientbottle/clientbottle-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	tokenRepo := postgres.NewUserTokenRepository(pool)
	inviteRepo := postgres.NewInviteRepository(pool)
	recoverRepo := postgres.NewRecoverPasswordRepository(pool)
	brandRepo := postgres.NewBottleBrandRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mailer := email.NewMailer(cfg.SMTP, cfg.Frontend, log)
	s3, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de objetos")
	}
	pdfGen := infrapdf.NewReportGenerator()

	authUC := auth.NewUseCase(userRepo, tokenRepo, cfg.JWT.Secret)
	inviteUC := invite.NewUseCase(inviteRepo, userRepo, recoverRepo, tokenRepo, txRunner, mailer)
	brandUC := brand.NewUseCase(brandRepo)
	transactionUC := transaction.NewUseCase(txRepo, clientRepo, brandRepo)
	reportUC := report.NewUseCase(txRepo, pdfGen, s3)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Client Bottle API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		InviteUC:      inviteUC,
		TransactionUC: transactionUC,
		BrandUC:       brandUC,
		ReportUC:      reportUC,
		JWTSecret:     cfg.JWT.Secret,
		Log:           log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
