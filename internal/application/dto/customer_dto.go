package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// UpdateCustomerRequest edición de datos de contacto (la deuda se muta solo
// por las operaciones de deuda).
type UpdateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// CustomerResponse cliente con su estado de deuda.
type CustomerResponse struct {
	ID               string          `json:"id"`
	TenantID         string          `json:"tenant_id"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone"`
	Email            string          `json:"email"`
	Address          string          `json:"address"`
	HasDebt          bool            `json:"has_debt"`
	DebtAmount       decimal.Decimal `json:"debt_amount"`
	RemainingDebt    decimal.Decimal `json:"remaining_debt"`
	PaidDebt         decimal.Decimal `json:"paid_debt"`
	HasInstallment   bool            `json:"has_installment"`
	InstallmentCount int             `json:"installment_count"`
	NextDebtDate     *time.Time      `json:"next_debt_date,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// RecordDebtRequest registra deuda nueva (aditiva sobre la existente).
type RecordDebtRequest struct {
	Amount           decimal.Decimal `json:"amount"`
	InstallmentCount *int            `json:"installment_count,omitempty"`
}

// PayDebtRequest abono libre contra la deuda restante.
type PayDebtRequest struct {
	Amount              decimal.Decimal `json:"amount"`
	NewInstallmentCount *int            `json:"new_installment_count,omitempty"`
}

// InstallmentResponse cuota del plan de deuda.
type InstallmentResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Seq        int             `json:"seq"`
	Amount     decimal.Decimal `json:"amount"`
	DueAt      time.Time       `json:"due_at"`
	Paid       bool            `json:"paid"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
	InvoiceID  string          `json:"invoice_id,omitempty"`
}

// DebtPaymentResponse entrada del historial de pagos.
type DebtPaymentResponse struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	InstallmentID string          `json:"installment_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Kind          string          `json:"kind"`
	CreatedAt     time.Time       `json:"created_at"`
}
