package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tu-usuario/aquaserv-pro/internal/application/auth"
	"github.com/tu-usuario/aquaserv-pro/internal/application/billing"
	"github.com/tu-usuario/aquaserv-pro/internal/application/customers"
	"github.com/tu-usuario/aquaserv-pro/internal/application/inventory"
	"github.com/tu-usuario/aquaserv-pro/internal/application/jobs"
	"github.com/tu-usuario/aquaserv-pro/internal/application/maintenance"
	"github.com/tu-usuario/aquaserv-pro/internal/application/subscription"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	CustomerUC     *customers.UseCase
	DebtUC         *billing.DebtUseCase
	InvoiceUC      *billing.InvoiceUseCase
	JobUC          *jobs.UseCase
	InventoryUC    *inventory.UseCase
	SubscriptionUC *subscription.UseCase
	Sweeper        *maintenance.Sweeper
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.LoginAdmin)
	authGroup.Post("/personnel/login", authHandler.LoginPersonnel)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Suscripción (protegido pero sin exigir suscripción activa, para poder reactivarla)
	subHandler := NewSubscriptionHandler(deps.SubscriptionUC, deps.Sweeper)
	sub := protected.Group("/subscription", RequireAdmin())
	sub.Get("/", subHandler.Get)
	sub.Post("/activate", subHandler.Activate)
	sub.Post("/renew", subHandler.Renew)
	sub.Post("/cancel", subHandler.Cancel)

	// El resto exige suscripción activa (trial o plan pago vigente)
	active := protected.Group("/", RequireSubscription(deps.SubscriptionUC))

	// Personal (solo admin)
	personnel := active.Group("/personnel", RequireAdmin())
	personnel.Post("/", authHandler.CreatePersonnel)
	personnel.Get("/", authHandler.ListPersonnel)
	personnel.Delete("/:id", authHandler.DeactivatePersonnel)

	// Clientes y deuda
	custHandler := NewCustomerHandler(deps.CustomerUC, deps.DebtUC)
	cust := active.Group("/customers")
	cust.Post("/", RequireAdmin(), custHandler.Create)
	cust.Get("/", custHandler.List)
	cust.Get("/:id", custHandler.Get)
	cust.Put("/:id", RequireAdmin(), custHandler.Update)
	cust.Delete("/:id", RequireAdmin(), custHandler.Delete)
	cust.Post("/:id/debt", RequireAdmin(), custHandler.RecordDebt)
	cust.Post("/:id/debt/pay", RequireAdmin(), custHandler.PayDebt)
	cust.Get("/:id/installments", custHandler.ListInstallments)
	cust.Get("/:id/payments", custHandler.ListPayments)

	// Trabajos
	jobHandler := NewJobHandler(deps.JobUC)
	jobsGroup := active.Group("/jobs")
	jobsGroup.Post("/", RequireAdmin(), jobHandler.Create)
	jobsGroup.Get("/", jobHandler.List)
	jobsGroup.Get("/mine", jobHandler.ListMine)
	jobsGroup.Get("/:id", jobHandler.Get)
	jobsGroup.Patch("/:id/status", jobHandler.UpdateStatus)
	jobsGroup.Post("/:id/notes", jobHandler.AddNote)

	// Inventario
	invHandler := NewInventoryHandler(deps.InventoryUC)
	inv := active.Group("/inventory")
	inv.Post("/items", RequireAdmin(), invHandler.CreateItem)
	inv.Get("/items", invHandler.ListItems)
	inv.Get("/items/:id", invHandler.GetItem)
	inv.Put("/items/:id", RequireAdmin(), invHandler.UpdateItem)
	inv.Post("/transactions", RequireAdmin(), invHandler.RegisterTransaction)
	inv.Get("/items/:id/transactions", invHandler.ListTransactions)

	// Facturación
	billHandler := NewBillingHandler(deps.DebtUC, deps.InvoiceUC)
	active.Post("/installments/:id/pay", RequireAdmin(), billHandler.PayInstallment)
	active.Get("/invoices", billHandler.ListInvoices)
	active.Get("/invoices/:id", billHandler.GetInvoice)

	// Recordatorios de mantenimiento (solo admin)
	active.Get("/maintenance/reminders", RequireAdmin(), subHandler.ListReminders)
}
