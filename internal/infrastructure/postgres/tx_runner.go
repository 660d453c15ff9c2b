package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/aquaserv-pro/internal/application/billing"
	"github.com/tu-usuario/aquaserv-pro/internal/application/inventory"
	"github.com/tu-usuario/aquaserv-pro/internal/application/jobs"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

// Ensure TxRunner implements the application transaction ports.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ jobs.TxRunner = (*TxRunner)(nil)
var _ billing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del ledger de inventario y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	txnRepo repository.InventoryTransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewInventoryItemRepository(tx)
	txnRepo := NewInventoryTransactionRepository(tx)

	if err := fn(itemRepo, txnRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunJob inicia una transacción con todos los repos que toca el ciclo de
// vida de un trabajo (creación y liquidación de entrega).
func (r *TxRunner) RunJob(ctx context.Context, fn func(
	jobRepo repository.JobRepository,
	customerRepo repository.CustomerRepository,
	personnelRepo repository.PersonnelRepository,
	itemRepo repository.InventoryItemRepository,
	txnRepo repository.InventoryTransactionRepository,
	reminderRepo repository.MaintenanceReminderRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	jobRepo := NewJobRepository(tx)
	customerRepo := NewCustomerRepository(tx)
	personnelRepo := NewPersonnelRepository(tx)
	itemRepo := NewInventoryItemRepository(tx)
	txnRepo := NewInventoryTransactionRepository(tx)
	reminderRepo := NewMaintenanceReminderRepository(tx)
	invoiceRepo := NewInvoiceRepository(tx)

	if err := fn(jobRepo, customerRepo, personnelRepo, itemRepo, txnRepo, reminderRepo, invoiceRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBilling inicia una transacción con los repos del ledger de deuda
// (pagos, cuotas y facturas).
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	installmentRepo repository.InstallmentRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.DebtPaymentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	customerRepo := NewCustomerRepository(tx)
	installmentRepo := NewInstallmentRepository(tx)
	invoiceRepo := NewInvoiceRepository(tx)
	paymentRepo := NewDebtPaymentRepository(tx)

	if err := fn(customerRepo, installmentRepo, invoiceRepo, paymentRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
