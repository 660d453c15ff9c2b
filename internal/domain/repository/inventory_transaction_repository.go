package repository

import "github.com/tu-usuario/aquaserv-pro/internal/domain/entity"

// InventoryTransactionRepository puerto del ledger append-only de inventario.
type InventoryTransactionRepository interface {
	Create(tx *entity.InventoryTransaction) error
	ListByItem(itemID string, limit, offset int) ([]*entity.InventoryTransaction, error)
}
