package repository

import "github.com/tu-usuario/aquaserv-pro/internal/domain/entity"

// JobRepository puerto de persistencia para trabajos y sus agregados
// (asignaciones, historial de estados, notas y materiales usados).
type JobRepository interface {
	Create(job *entity.Job) error
	GetByID(id string) (*entity.Job, error)
	// GetForUpdate bloquea la fila del trabajo (SELECT FOR UPDATE); dos
	// entregas concurrentes del mismo trabajo se serializan aquí.
	GetForUpdate(id string) (*entity.Job, error)
	ListByTenant(tenantID string, status string, limit, offset int) ([]*entity.Job, error)
	ListByPersonnel(personnelID string, limit, offset int) ([]*entity.Job, error)
	Update(job *entity.Job) error

	CreateAssignment(a *entity.JobPersonnel) error
	GetAssignment(jobID, personnelID string) (*entity.JobPersonnel, error)
	ListAssignments(jobID string) ([]*entity.JobPersonnel, error)
	UpdateAssignment(a *entity.JobPersonnel) error

	CreateHistory(h *entity.JobStatusHistory) error
	ListHistory(jobID string) ([]*entity.JobStatusHistory, error)

	CreateNote(n *entity.JobNote) error
	ListNotes(jobID string) ([]*entity.JobNote, error)

	CreateMaterial(m *entity.JobMaterial) error
	ListMaterials(jobID string) ([]*entity.JobMaterial, error)
	// DeleteMaterials reemplazo completo de líneas en la liquidación de
	// entrega (las líneas finales se reescriben al precio vigente).
	DeleteMaterials(jobID string) error
}
