package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de inventario.
const (
	TxTypeIn         = "IN"         // entrada
	TxTypeOut        = "OUT"        // salida
	TxTypeAdjustment = "ADJUSTMENT" // ajuste
)

// InventoryItem representa un artículo de inventario del tenant.
// Invariante: Quantity nunca es negativa y siempre es reconstruible desde
// la suma de sus transacciones.
type InventoryItem struct {
	ID               string
	TenantID         string
	Name             string
	Category         string
	UnitPrice        decimal.Decimal
	Quantity         decimal.Decimal
	CriticalQuantity decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsCritical indica si el stock está en o bajo el umbral de reorden.
func (i *InventoryItem) IsCritical() bool {
	return i.Quantity.LessThanOrEqual(i.CriticalQuantity)
}

// InventoryTransaction movimiento del ledger append-only de inventario.
// Quantity es positiva en entradas y negativa en salidas.
type InventoryTransaction struct {
	ID        string
	TenantID  string
	ItemID    string
	JobID     string // vacío salvo consumos por entrega de trabajo
	Type      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time
	CreatedBy string
}
