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

	"github.com/jhoicas/Avisos-pago-api/internal/application/auth"
	apppayrun "github.com/jhoicas/Avisos-pago-api/internal/application/payrun"
	inframail "github.com/jhoicas/Avisos-pago-api/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/Avisos-pago-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Avisos-pago-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Avisos-pago-api/internal/infrastructure/sheetexport"
	infrastorage "github.com/jhoicas/Avisos-pago-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Avisos-pago-api/internal/interfaces/http"
	"github.com/jhoicas/Avisos-pago-api/pkg/config"
	"github.com/jhoicas/Avisos-pago-api/pkg/logger"
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

	recordRepo := postgres.NewRecordRepository(pool)

	// Almacenamiento de PDFs: carpeta local por defecto, Azure Blob en producción.
	var store apppayrun.DocumentStore
	switch cfg.Storage.Backend {
	case "azure":
		store, err = infrastorage.NewAzureStore(ctx, cfg.Storage.AzureConnectionString, cfg.Storage.AzureContainer)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Azure Blob Storage")
		}
		log.Info().Str("container", cfg.Storage.AzureContainer).Msg("almacenamiento: Azure Blob")
	default:
		store, err = infrastorage.NewLocalStore(cfg.Storage.LocalRoot)
		if err != nil {
			log.Fatal().Err(err).Msg("preparar carpeta local de avisos")
		}
		log.Info().Str("root", cfg.Storage.LocalRoot).Msg("almacenamiento: carpeta local")
	}

	// Render del aviso: Maroto local, o clon+export de plantilla en el
	// servicio de hojas cuando el área exige su formato exacto.
	var renderer apppayrun.NotificationRenderer
	switch cfg.Render.Mode {
	case "remote":
		renderer = sheetexport.NewClient(sheetexport.Config{
			BaseURL:    cfg.Render.APIBaseURL,
			Token:      cfg.Render.APIToken,
			TemplateID: cfg.Render.TemplateID,
		})
		log.Info().Str("template", cfg.Render.TemplateID).Msg("render: servicio de hojas")
	default:
		renderer = infrapdf.NewMarotoNotificationRenderer()
		log.Info().Msg("render: Maroto local")
	}

	mailer := inframail.NewGomailMailer(inframail.Config{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		User:      cfg.SMTP.User,
		Password:  cfg.SMTP.Password,
		From:      cfg.SMTP.From,
		FromAlias: cfg.SMTP.FromAlias,
		CC:        cfg.SMTP.CC,
	})

	generateUC := apppayrun.NewGenerateRunUseCase(recordRepo, renderer, store, nil, log)
	dispatchUC := apppayrun.NewDispatchRunUseCase(
		recordRepo, store, mailer,
		time.Duration(cfg.Workflow.SendDelayMS)*time.Millisecond,
		log,
	)
	approveUC := apppayrun.NewApproveUseCase(recordRepo, log)
	authUC := auth.NewAuthUseCase(auth.OperatorConfig{
		Email:        cfg.Auth.OperatorEmail,
		PasswordHash: cfg.Auth.OperatorPasswordHash,
	}, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Avisos de Pago API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Records:    recordRepo,
		ApproveUC:  approveUC,
		GenerateUC: generateUC,
		DispatchUC: dispatchUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
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
