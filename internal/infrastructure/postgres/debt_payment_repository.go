package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

var _ repository.DebtPaymentRepository = (*DebtPaymentRepo)(nil)

// DebtPaymentRepo historial append-only de pagos de deuda (usable con pool o tx).
type DebtPaymentRepo struct {
	q Querier
}

// NewDebtPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDebtPaymentRepository(q Querier) *DebtPaymentRepo {
	return &DebtPaymentRepo{q: q}
}

// Create persiste un pago.
func (r *DebtPaymentRepo) Create(p *entity.DebtPayment) error {
	query := `
		INSERT INTO debt_payments (id, tenant_id, customer_id, installment_id, amount, kind, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.TenantID, p.CustomerID, p.InstallmentID, p.Amount, p.Kind, p.CreatedAt, p.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert debt payment: %w", err)
	}
	return nil
}

// ListByCustomer lista los pagos de un cliente, más recientes primero.
func (r *DebtPaymentRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.DebtPayment, error) {
	query := `
		SELECT id, tenant_id, customer_id, installment_id, amount, kind, created_at, created_by
		FROM debt_payments WHERE customer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list debt payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.DebtPayment
	for rows.Next() {
		var p entity.DebtPayment
		if err := rows.Scan(&p.ID, &p.TenantID, &p.CustomerID, &p.InstallmentID, &p.Amount, &p.Kind, &p.CreatedAt, &p.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan debt payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
