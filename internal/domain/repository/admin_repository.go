package repository

import "github.com/tu-usuario/aquaserv-pro/internal/domain/entity"

// AdminRepository puerto de persistencia para Admin (tenants).
type AdminRepository interface {
	Create(admin *entity.Admin) error
	GetByID(id string) (*entity.Admin, error)
	GetByEmail(email string) (*entity.Admin, error)
	Update(admin *entity.Admin) error
}
