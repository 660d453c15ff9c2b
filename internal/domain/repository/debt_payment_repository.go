package repository

import "github.com/tu-usuario/aquaserv-pro/internal/domain/entity"

// DebtPaymentRepository puerto del historial de pagos de deuda.
type DebtPaymentRepository interface {
	Create(p *entity.DebtPayment) error
	ListByCustomer(customerID string, limit, offset int) ([]*entity.DebtPayment, error)
}
