package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment cuota del plan de deuda de un cliente.
// Invariante: la suma de las cuotas de un plan es igual a la deuda total
// del plan (el redondeo se reconcilia en la última cuota).
type Installment struct {
	ID         string
	TenantID   string
	CustomerID string
	Seq        int
	Amount     decimal.Decimal
	DueAt      time.Time
	Paid       bool
	PaidAt     *time.Time
	InvoiceID  string // factura generada al pagar la cuota
	CreatedAt  time.Time
}

// Orígenes de un pago de deuda.
const (
	DebtPaymentDirect      = "DIRECT"      // pago libre contra la deuda
	DebtPaymentInstallment = "INSTALLMENT" // pago de una cuota del plan
)

// DebtPayment entrada del historial de pagos de deuda de un cliente.
type DebtPayment struct {
	ID            string
	TenantID      string
	CustomerID    string
	InstallmentID string // vacío en pagos directos
	Amount        decimal.Decimal
	Kind          string // DIRECT, INSTALLMENT
	CreatedAt     time.Time
	CreatedBy     string
}
