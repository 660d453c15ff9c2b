package repository

import "github.com/tu-usuario/aquaserv-pro/internal/domain/entity"

// InventoryItemRepository puerto para artículos de inventario.
type InventoryItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila del artículo (SELECT FOR UPDATE) para que
	// la verificación de stock y la escritura ocurran en la misma transacción.
	GetForUpdate(id string) (*entity.InventoryItem, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	Delete(id string) error
}
