package billing

import (
	"context"

	"github.com/tu-usuario/aquaserv-pro/internal/application/dto"
	"github.com/tu-usuario/aquaserv-pro/internal/domain"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

// InvoiceUseCase lectura de facturas ya generadas (las facturas se crean
// solo como efecto de entregar un trabajo o pagar una cuota, nunca directo).
type InvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
}

func NewInvoiceUseCase(invoiceRepo repository.InvoiceRepository) *InvoiceUseCase {
	return &InvoiceUseCase{invoiceRepo: invoiceRepo}
}

// Get devuelve la factura con sus líneas. Fuera del tenant responde como
// inexistente.
func (uc *InvoiceUseCase) Get(ctx context.Context, tenantID, invoiceID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(inv.ID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, lines), nil
}

// List facturas del tenant, más recientes primero.
func (uc *InvoiceUseCase) List(ctx context.Context, tenantID string, limit, offset int) ([]*dto.InvoiceResponse, error) {
	list, err := uc.invoiceRepo.ListByTenant(tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		lines, err := uc.invoiceRepo.GetLinesByInvoiceID(inv.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toInvoiceResponse(inv, lines))
	}
	return out, nil
}
