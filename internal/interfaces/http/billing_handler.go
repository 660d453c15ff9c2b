package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/aquaserv-pro/internal/application/billing"
)

// BillingHandler maneja facturas y pago de cuotas.
type BillingHandler struct {
	debtUC    *billing.DebtUseCase
	invoiceUC *billing.InvoiceUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(debtUC *billing.DebtUseCase, invoiceUC *billing.InvoiceUseCase) *BillingHandler {
	return &BillingHandler{debtUC: debtUC, invoiceUC: invoiceUC}
}

// PayInstallment POST /api/installments/:id/pay
func (h *BillingHandler) PayInstallment(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	invoice, err := h.debtUC.PayInstallment(c.UserContext(), ident.TenantID, c.Params("id"), ident.ActorID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// GetInvoice GET /api/invoices/:id
func (h *BillingHandler) GetInvoice(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	invoice, err := h.invoiceUC.Get(c.UserContext(), ident.TenantID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoice)
}

// ListInvoices GET /api/invoices?limit=20&offset=0
func (h *BillingHandler) ListInvoices(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.invoiceUC.List(c.UserContext(), ident.TenantID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
