package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

var _ repository.InstallmentRepository = (*InstallmentRepo)(nil)

// InstallmentRepo implementación de InstallmentRepository (usable con pool o tx).
type InstallmentRepo struct {
	q Querier
}

// NewInstallmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInstallmentRepository(q Querier) *InstallmentRepo {
	return &InstallmentRepo{q: q}
}

const installmentColumns = `id, tenant_id, customer_id, seq, amount, due_at, paid, paid_at, invoice_id, created_at`

func scanInstallment(row pgx.Row) (*entity.Installment, error) {
	var i entity.Installment
	err := row.Scan(
		&i.ID, &i.TenantID, &i.CustomerID, &i.Seq, &i.Amount, &i.DueAt,
		&i.Paid, &i.PaidAt, &i.InvoiceID, &i.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create persiste una cuota.
func (r *InstallmentRepo) Create(i *entity.Installment) error {
	query := `
		INSERT INTO installments (` + installmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		i.ID, i.TenantID, i.CustomerID, i.Seq, i.Amount, i.DueAt, i.Paid, i.PaidAt, i.InvoiceID, i.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert installment: %w", err)
	}
	return nil
}

// GetByID obtiene una cuota por ID.
func (r *InstallmentRepo) GetByID(id string) (*entity.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments WHERE id = $1`
	i, err := scanInstallment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get installment: %w", err)
	}
	return i, nil
}

// GetForUpdate obtiene la cuota y bloquea la fila (SELECT FOR UPDATE).
func (r *InstallmentRepo) GetForUpdate(id string) (*entity.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments WHERE id = $1 FOR UPDATE`
	i, err := scanInstallment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get installment for update: %w", err)
	}
	return i, nil
}

// ListByCustomer lista las cuotas de un cliente en orden de secuencia.
func (r *InstallmentRepo) ListByCustomer(customerID string) ([]*entity.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments
		WHERE customer_id = $1 ORDER BY created_at, seq`
	rows, err := r.q.Query(context.Background(), query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list installments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Installment
	for rows.Next() {
		i, err := scanInstallment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// Update actualiza una cuota (marcado de pago y factura asociada).
func (r *InstallmentRepo) Update(i *entity.Installment) error {
	query := `
		UPDATE installments SET seq = $2, amount = $3, due_at = $4, paid = $5, paid_at = $6, invoice_id = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		i.ID, i.Seq, i.Amount, i.DueAt, i.Paid, i.PaidAt, i.InvoiceID,
	)
	if err != nil {
		return fmt.Errorf("update installment: %w", err)
	}
	return nil
}

// DeleteUnpaidByCustomer elimina las cuotas no pagadas de un cliente. Las
// pagadas nunca se tocan.
func (r *InstallmentRepo) DeleteUnpaidByCustomer(customerID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM installments WHERE customer_id = $1 AND paid = false`, customerID)
	if err != nil {
		return fmt.Errorf("delete unpaid installments: %w", err)
	}
	return nil
}
