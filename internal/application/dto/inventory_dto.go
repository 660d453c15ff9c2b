package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest alta de artículo de inventario.
type CreateItemRequest struct {
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Quantity         decimal.Decimal `json:"quantity"`
	CriticalQuantity decimal.Decimal `json:"critical_quantity"`
}

// UpdateItemRequest edición de artículo (la cantidad se muta solo vía
// transacciones de inventario).
type UpdateItemRequest struct {
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	CriticalQuantity decimal.Decimal `json:"critical_quantity"`
}

// RegisterTransactionRequest movimiento manual IN/OUT/ADJUSTMENT.
type RegisterTransactionRequest struct {
	ItemID   string          `json:"item_id"`
	Type     string          `json:"type"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ItemResponse artículo con stock actual.
type ItemResponse struct {
	ID               string          `json:"id"`
	TenantID         string          `json:"tenant_id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Quantity         decimal.Decimal `json:"quantity"`
	CriticalQuantity decimal.Decimal `json:"critical_quantity"`
	Critical         bool            `json:"critical"`
	CreatedAt        time.Time       `json:"created_at"`
}

// TransactionResponse movimiento del ledger.
type TransactionResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	JobID     string          `json:"job_id,omitempty"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}
