package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/aquaserv-pro/internal/application/auth"
	"github.com/tu-usuario/aquaserv-pro/internal/application/billing"
	"github.com/tu-usuario/aquaserv-pro/internal/application/customers"
	"github.com/tu-usuario/aquaserv-pro/internal/application/inventory"
	"github.com/tu-usuario/aquaserv-pro/internal/application/jobs"
	"github.com/tu-usuario/aquaserv-pro/internal/application/maintenance"
	"github.com/tu-usuario/aquaserv-pro/internal/application/subscription"
	infranotify "github.com/tu-usuario/aquaserv-pro/internal/infrastructure/notify"
	"github.com/tu-usuario/aquaserv-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/aquaserv-pro/internal/interfaces/http"
	"github.com/tu-usuario/aquaserv-pro/pkg/config"
	"github.com/tu-usuario/aquaserv-pro/pkg/logger"
	"github.com/tu-usuario/aquaserv-pro/pkg/metrics"
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
	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	met := metrics.New("aquaserv")
	dispatcher := infranotify.NewLogDispatcher(log, met)

	adminRepo := postgres.NewAdminRepository(pool)
	personnelRepo := postgres.NewPersonnelRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	txnRepo := postgres.NewInventoryTransactionRepository(pool)
	reminderRepo := postgres.NewMaintenanceReminderRepository(pool)
	installmentRepo := postgres.NewInstallmentRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewDebtPaymentRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(adminRepo, personnelRepo, subscriptionRepo, cfg.JWT, cfg.Subscription.TrialDays)
	customerUC := customers.NewUseCase(customerRepo)
	debtUC := billing.NewDebtUseCase(txRunner, customerRepo, installmentRepo, paymentRepo)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo)
	inventoryUC := inventory.NewUseCase(txRunner, itemRepo, txnRepo)
	jobUC := jobs.NewUseCase(txRunner, jobRepo, customerRepo, personnelRepo, itemRepo, inventoryUC, dispatcher, log)
	subscriptionUC := subscription.NewUseCase(subscriptionRepo)
	sweeper := maintenance.NewSweeper(reminderRepo, dispatcher, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CustomerUC:     customerUC,
		DebtUC:         debtUC,
		InvoiceUC:      invoiceUC,
		JobUC:          jobUC,
		InventoryUC:    inventoryUC,
		SubscriptionUC: subscriptionUC,
		Sweeper:        sweeper,
		JWTSecret:      cfg.JWT.Secret,
	})

	sweepCtx, stopSweep := context.WithCancel(ctx)
	if cfg.Sweep.Enabled {
		runner := maintenance.NewRunner(sweeper, time.Duration(cfg.Sweep.IntervalMinutes)*time.Minute, met, log)
		go runner.Run(sweepCtx)
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
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
