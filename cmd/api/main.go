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

	"github.com/trackwise/trackwise-api/internal/application/auth"
	"github.com/trackwise/trackwise-api/internal/application/usecase"
	"github.com/trackwise/trackwise-api/internal/application/verification"
	"github.com/trackwise/trackwise-api/internal/infrastructure/mail"
	infrapdf "github.com/trackwise/trackwise-api/internal/infrastructure/pdf"
	"github.com/trackwise/trackwise-api/internal/infrastructure/postgres"
	httpRouter "github.com/trackwise/trackwise-api/internal/interfaces/http"
	"github.com/trackwise/trackwise-api/pkg/config"
	"github.com/trackwise/trackwise-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.ApplyMigrations(pool); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	ticketRepo := postgres.NewVerificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mailer := mail.NewSMTPMailer(cfg.SMTP)
	// In development a mail outage should surface immediately.
	verificationUC := verification.NewUseCase(
		ticketRepo, userRepo, mailer, log, cfg.App.Env == "development",
	)

	authUC := auth.NewUseCase(txRunner, userRepo, companyRepo, profileRepo, ticketRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Verification.Required)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	profileUC := usecase.NewProfileUseCase(userRepo, profileRepo, companyRepo)
	staffUC := usecase.NewStaffUseCase(txRunner, userRepo, profileRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	reportUC := usecase.NewReportUseCase(companyRepo, profileRepo, productRepo, infrapdf.NewMarotoGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI in local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TrackWise API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		VerificationUC: verificationUC,
		CompanyUC:      companyUC,
		ProfileUC:      profileUC,
		StaffUC:        staffUC,
		ProductUC:      productUC,
		ReportUC:       reportUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
