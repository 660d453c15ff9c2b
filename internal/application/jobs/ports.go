package jobs

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye todos
// los repositorios que toca el ciclo de vida de un trabajo (creación y
// liquidación de entrega). Creación parcial nunca debe ser observable.
type TxRunner interface {
	RunJob(ctx context.Context, fn func(
		jobRepo repository.JobRepository,
		customerRepo repository.CustomerRepository,
		personnelRepo repository.PersonnelRepository,
		itemRepo repository.InventoryItemRepository,
		txnRepo repository.InventoryTransactionRepository,
		reminderRepo repository.MaintenanceReminderRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InventoryConsumer integra la liquidación de entrega con el ledger de
// inventario. ConsumeInTx usa los repositorios del caller (misma
// transacción); si retorna error el caller debe hacer rollback.
type InventoryConsumer interface {
	ConsumeInTx(
		itemRepo repository.InventoryItemRepository,
		txnRepo repository.InventoryTransactionRepository,
		tenantID, itemID, jobID, actorID string,
		quantity decimal.Decimal,
		now time.Time,
	) (*entity.InventoryItem, error)
}
