package repository

import "github.com/tu-usuario/aquaserv-pro/internal/domain/entity"

// InvoiceRepository puerto para facturas (snapshot) y sus líneas.
type InvoiceRepository interface {
	Create(inv *entity.Invoice) error
	CreateLine(line *entity.InvoiceLine) error
	GetByID(id string) (*entity.Invoice, error)
	GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Invoice, error)
}
