package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLineResponse línea de detalle de una factura.
type InvoiceLineResponse struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// InvoiceResponse vista materializada de una factura: snapshot del cliente
// más líneas y total. Es el contrato estable que consume un renderizador
// externo de documentos.
type InvoiceResponse struct {
	ID              string                `json:"id"`
	TenantID        string                `json:"tenant_id"`
	Number          string                `json:"number"`
	CustomerID      string                `json:"customer_id"`
	CustomerName    string                `json:"customer_name"`
	CustomerPhone   string                `json:"customer_phone"`
	CustomerAddress string                `json:"customer_address"`
	JobID           string                `json:"job_id,omitempty"`
	InstallmentID   string                `json:"installment_id,omitempty"`
	Total           decimal.Decimal       `json:"total"`
	IssuedAt        time.Time             `json:"issued_at"`
	Lines           []InvoiceLineResponse `json:"lines"`
}
