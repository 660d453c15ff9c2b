package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice snapshot de facturación al momento de su creación. Los datos del
// cliente se copian por valor para que la factura histórica no cambie si el
// cliente se edita después. Enlaza opcionalmente un trabajo o una cuota.
type Invoice struct {
	ID              string
	TenantID        string
	Number          string
	CustomerID      string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	JobID           string // vacío si no proviene de un trabajo
	InstallmentID   string // vacío si no proviene de una cuota
	Total           decimal.Decimal
	IssuedAt        time.Time
	CreatedAt       time.Time
}

// InvoiceLine línea de detalle de una factura.
type InvoiceLine struct {
	ID          string
	InvoiceID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
