package billing

import (
	"context"

	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios del ledger de deuda. Pagos y regeneraciones de plan son
// atómicos: o se aplican completos o no dejan efecto observable.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		installmentRepo repository.InstallmentRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.DebtPaymentRepository,
	) error) error
}
