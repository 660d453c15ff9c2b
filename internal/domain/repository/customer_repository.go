package repository

import "github.com/tu-usuario/aquaserv-pro/internal/domain/entity"

// CustomerRepository puerto de persistencia para Customer.
// Usado dentro de transacciones para las operaciones de deuda.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE);
	// obligatorio en mutaciones de deuda para serializar pagos concurrentes.
	GetForUpdate(id string) (*entity.Customer, error)
}
