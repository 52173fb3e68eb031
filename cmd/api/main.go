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
	"github.com/mercadotech/mercado-api/internal/application/sales"
	"github.com/mercadotech/mercado-api/internal/application/stock"
	"github.com/mercadotech/mercado-api/internal/application/validity"
	"github.com/mercadotech/mercado-api/internal/infrastructure/httpclient"
	"github.com/mercadotech/mercado-api/internal/infrastructure/postgres"
	httpRouter "github.com/mercadotech/mercado-api/internal/interfaces/http"
	"github.com/mercadotech/mercado-api/internal/scheduler"
	"github.com/mercadotech/mercado-api/pkg/config"
	"github.com/mercadotech/mercado-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
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

	entryRepo := postgres.NewStockEntryRepository(pool)
	exitRepo := postgres.NewStockExitRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	clientTimeout := time.Duration(cfg.Clients.TimeoutSeconds) * time.Second
	productClient := httpclient.NewProductClient(cfg.Clients.ProductServiceURL, clientTimeout, cfg.Clients.RetryCount)
	stockClient := httpclient.NewStockClient(cfg.Clients.StockServiceURL, clientTimeout, cfg.Clients.RetryCount)
	notifClient := httpclient.NewNotificationClient(cfg.Clients.NotificationServiceURL, clientTimeout)

	stockUC := stock.NewLedgerUseCase(entryRepo, exitRepo, productClient, log)
	salesUC := sales.NewOrchestratorUseCase(txRunner, saleRepo, stockClient, log)
	validityUC := validity.NewLifecycleUseCase(lotRepo, stockClient, notifClient, validity.AlertConfig{
		Recipient: cfg.Scheduler.AlertRecipient,
		Channel:   cfg.Scheduler.AlertChannel,
	}, log)

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
		Title:    "Mercado API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:         stockUC,
		SalesUC:         salesUC,
		ValidityUC:      validityUC,
		AlertWindowDays: cfg.Scheduler.AlertWindowDays,
		JWTSecret:       cfg.JWT.Secret,
	})

	sched := scheduler.New(log)
	if cfg.Scheduler.Enabled {
		sched.Register("baixa-lotes-vencidos",
			time.Duration(cfg.Scheduler.SweepIntervalHours)*time.Hour,
			validityUC.SweepExpired,
		)
		sched.Register("alerta-vencimento",
			time.Duration(cfg.Scheduler.AlertIntervalHours)*time.Hour,
			func(ctx context.Context) (int, error) {
				return validityUC.SweepNearExpiry(ctx, cfg.Scheduler.AlertWindowDays)
			},
		)
		sched.Start(ctx)
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
