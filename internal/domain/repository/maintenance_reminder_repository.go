package repository

import (
	"time"

	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
)

// MaintenanceReminderRepository puerto para recordatorios de mantenimiento
// (uno por trabajo entregado).
type MaintenanceReminderRepository interface {
	// Upsert crea o reemplaza el recordatorio del trabajo.
	Upsert(r *entity.MaintenanceReminder) error
	GetByJobID(jobID string) (*entity.MaintenanceReminder, error)
	DeleteByJobID(jobID string) error
	Update(r *entity.MaintenanceReminder) error
	// ListPending recordatorios en estado PENDING con vencimiento hasta
	// horizon (candidatos del barrido).
	ListPending(horizon time.Time) ([]*entity.MaintenanceReminder, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.MaintenanceReminder, error)
}
