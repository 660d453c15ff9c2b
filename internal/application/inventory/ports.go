package inventory

import (
	"context"

	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ledger.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		txnRepo repository.InventoryTransactionRepository,
	) error) error
}
