package repository

import "github.com/tu-usuario/aquaserv-pro/internal/domain/entity"

// InstallmentRepository puerto para cuotas del plan de deuda.
type InstallmentRepository interface {
	Create(i *entity.Installment) error
	GetByID(id string) (*entity.Installment, error)
	// GetForUpdate bloquea la cuota; serializa dos pagos concurrentes de la
	// misma cuota.
	GetForUpdate(id string) (*entity.Installment, error)
	ListByCustomer(customerID string) ([]*entity.Installment, error)
	Update(i *entity.Installment) error
	// DeleteUnpaidByCustomer elimina las cuotas no pagadas (regeneración de
	// plan); las pagadas son historia y nunca se tocan.
	DeleteUnpaidByCustomer(customerID string) error
}
