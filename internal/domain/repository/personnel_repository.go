package repository

import "github.com/tu-usuario/aquaserv-pro/internal/domain/entity"

// PersonnelRepository puerto de persistencia para personal de campo.
type PersonnelRepository interface {
	Create(p *entity.Personnel) error
	GetByID(id string) (*entity.Personnel, error)
	GetByEmail(email string) (*entity.Personnel, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Personnel, error)
	Update(p *entity.Personnel) error
	Delete(id string) error
}
