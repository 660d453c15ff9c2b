package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

// InventoryTransactionRepo implementación del ledger append-only de
// inventario (usable con pool o tx).
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create persiste un movimiento. El ledger nunca se actualiza ni se borra.
func (r *InventoryTransactionRepo) Create(tx *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (id, tenant_id, item_id, job_id, type, quantity, unit_price, total, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.TenantID, tx.ItemID, tx.JobID, tx.Type, tx.Quantity, tx.UnitPrice, tx.Total,
		tx.CreatedAt, tx.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	return nil
}

// ListByItem lista los movimientos de un artículo, más recientes primero.
func (r *InventoryTransactionRepo) ListByItem(itemID string, limit, offset int) ([]*entity.InventoryTransaction, error) {
	query := `
		SELECT id, tenant_id, item_id, job_id, type, quantity, unit_price, total, created_at, created_by
		FROM inventory_transactions WHERE item_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryTransaction
	for rows.Next() {
		var t entity.InventoryTransaction
		if err := rows.Scan(&t.ID, &t.TenantID, &t.ItemID, &t.JobID, &t.Type, &t.Quantity, &t.UnitPrice, &t.Total, &t.CreatedAt, &t.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
