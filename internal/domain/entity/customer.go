package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente del tenant, con su estado de deuda.
// Invariante: si HasDebt es true, PaidDebt + RemainingDebt == DebtAmount
// (tolerancia de redondeo 0.01); si es false, todos los campos de deuda
// quedan en cero/nil.
type Customer struct {
	ID               string
	TenantID         string
	Name             string
	Phone            string
	Email            string
	Address          string
	HasDebt          bool
	DebtAmount       decimal.Decimal
	RemainingDebt    decimal.Decimal
	PaidDebt         decimal.Decimal
	HasInstallment   bool
	InstallmentCount int
	NextDebtDate     *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ClearDebt limpia todos los campos de deuda (deuda saldada por completo).
func (c *Customer) ClearDebt() {
	c.HasDebt = false
	c.DebtAmount = decimal.Zero
	c.RemainingDebt = decimal.Zero
	c.PaidDebt = decimal.Zero
	c.HasInstallment = false
	c.InstallmentCount = 0
	c.NextDebtDate = nil
}
