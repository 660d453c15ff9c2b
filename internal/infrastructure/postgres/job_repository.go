package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo implementación de JobRepository y sus agregados (usable con pool o tx).
type JobRepo struct {
	q Querier
}

// NewJobRepository construye el adaptador. Pasar pool o tx (Querier).
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

const jobColumns = `id, tenant_id, customer_id, title, description, status,
	scheduled_at, started_at, delivered_at, archived_at,
	price, collected_amount, payment_status,
	location_lat, location_lng, location_address,
	maintenance_due_at, maintenance_interval_m, created_at, updated_at`

func scanJob(row pgx.Row) (*entity.Job, error) {
	var j entity.Job
	err := row.Scan(
		&j.ID, &j.TenantID, &j.CustomerID, &j.Title, &j.Description, &j.Status,
		&j.ScheduledAt, &j.StartedAt, &j.DeliveredAt, &j.ArchivedAt,
		&j.Price, &j.CollectedAmount, &j.PaymentStatus,
		&j.LocationLat, &j.LocationLng, &j.LocationAddress,
		&j.MaintenanceDueAt, &j.MaintenanceIntervalM, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Create persiste un nuevo trabajo.
func (r *JobRepo) Create(job *entity.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		job.ID, job.TenantID, job.CustomerID, job.Title, job.Description, job.Status,
		job.ScheduledAt, job.StartedAt, job.DeliveredAt, job.ArchivedAt,
		job.Price, job.CollectedAmount, job.PaymentStatus,
		job.LocationLat, job.LocationLng, job.LocationAddress,
		job.MaintenanceDueAt, job.MaintenanceIntervalM, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// GetByID obtiene un trabajo por ID.
func (r *JobRepo) GetByID(id string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	j, err := scanJob(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

// GetForUpdate obtiene el trabajo y bloquea la fila (SELECT FOR UPDATE).
func (r *JobRepo) GetForUpdate(id string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 FOR UPDATE`
	j, err := scanJob(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job for update: %w", err)
	}
	return j, nil
}

// ListByTenant lista trabajos del tenant, opcionalmente filtrados por estado.
func (r *JobRepo) ListByTenant(tenantID string, status string, limit, offset int) ([]*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE tenant_id = $1`
	args := []any{tenantID}
	if status != "" {
		query += ` AND status = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`
		args = append(args, status, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	return r.list(query, args...)
}

// ListByPersonnel lista trabajos asignados a un trabajador.
func (r *JobRepo) ListByPersonnel(personnelID string, limit, offset int) ([]*entity.Job, error) {
	query := `
		SELECT j.id, j.tenant_id, j.customer_id, j.title, j.description, j.status,
			j.scheduled_at, j.started_at, j.delivered_at, j.archived_at,
			j.price, j.collected_amount, j.payment_status,
			j.location_lat, j.location_lng, j.location_address,
			j.maintenance_due_at, j.maintenance_interval_m, j.created_at, j.updated_at
		FROM jobs j
		JOIN job_personnel jp ON jp.job_id = j.id
		WHERE jp.personnel_id = $1 ORDER BY j.created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, personnelID, limit, offset)
}

func (r *JobRepo) list(query string, args ...any) ([]*entity.Job, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		list = append(list, j)
	}
	return list, rows.Err()
}

// Update actualiza un trabajo.
func (r *JobRepo) Update(job *entity.Job) error {
	query := `
		UPDATE jobs SET title = $2, description = $3, status = $4,
			scheduled_at = $5, started_at = $6, delivered_at = $7, archived_at = $8,
			price = $9, collected_amount = $10, payment_status = $11,
			location_lat = $12, location_lng = $13, location_address = $14,
			maintenance_due_at = $15, maintenance_interval_m = $16, updated_at = $17
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		job.ID, job.Title, job.Description, job.Status,
		job.ScheduledAt, job.StartedAt, job.DeliveredAt, job.ArchivedAt,
		job.Price, job.CollectedAmount, job.PaymentStatus,
		job.LocationLat, job.LocationLng, job.LocationAddress,
		job.MaintenanceDueAt, job.MaintenanceIntervalM, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// CreateAssignment persiste una asignación trabajo↔trabajador.
func (r *JobRepo) CreateAssignment(a *entity.JobPersonnel) error {
	query := `
		INSERT INTO job_personnel (id, job_id, personnel_id, started_at, delivered_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.JobID, a.PersonnelID, a.StartedAt, a.DeliveredAt, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job assignment: %w", err)
	}
	return nil
}

// GetAssignment obtiene la asignación de un trabajador en un trabajo.
func (r *JobRepo) GetAssignment(jobID, personnelID string) (*entity.JobPersonnel, error) {
	query := `
		SELECT id, job_id, personnel_id, started_at, delivered_at, created_at
		FROM job_personnel WHERE job_id = $1 AND personnel_id = $2`
	var a entity.JobPersonnel
	err := r.q.QueryRow(context.Background(), query, jobID, personnelID).Scan(
		&a.ID, &a.JobID, &a.PersonnelID, &a.StartedAt, &a.DeliveredAt, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job assignment: %w", err)
	}
	return &a, nil
}

// ListAssignments lista las asignaciones de un trabajo.
func (r *JobRepo) ListAssignments(jobID string) ([]*entity.JobPersonnel, error) {
	query := `
		SELECT id, job_id, personnel_id, started_at, delivered_at, created_at
		FROM job_personnel WHERE job_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, jobID)
	if err != nil {
		return nil, fmt.Errorf("list job assignments: %w", err)
	}
	defer rows.Close()
	var list []*entity.JobPersonnel
	for rows.Next() {
		var a entity.JobPersonnel
		if err := rows.Scan(&a.ID, &a.JobID, &a.PersonnelID, &a.StartedAt, &a.DeliveredAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan job assignment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// UpdateAssignment actualiza los tiempos personales de una asignación.
func (r *JobRepo) UpdateAssignment(a *entity.JobPersonnel) error {
	query := `UPDATE job_personnel SET started_at = $2, delivered_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, a.ID, a.StartedAt, a.DeliveredAt)
	if err != nil {
		return fmt.Errorf("update job assignment: %w", err)
	}
	return nil
}

// CreateHistory persiste una entrada del historial de estados (append-only).
func (r *JobRepo) CreateHistory(h *entity.JobStatusHistory) error {
	query := `
		INSERT INTO job_status_history (id, job_id, status, note, actor_kind, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		h.ID, h.JobID, h.Status, h.Note, h.ActorKind, h.ActorID, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job history: %w", err)
	}
	return nil
}

// ListHistory lista el historial de estados de un trabajo, en orden.
func (r *JobRepo) ListHistory(jobID string) ([]*entity.JobStatusHistory, error) {
	query := `
		SELECT id, job_id, status, note, actor_kind, actor_id, created_at
		FROM job_status_history WHERE job_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, jobID)
	if err != nil {
		return nil, fmt.Errorf("list job history: %w", err)
	}
	defer rows.Close()
	var list []*entity.JobStatusHistory
	for rows.Next() {
		var h entity.JobStatusHistory
		if err := rows.Scan(&h.ID, &h.JobID, &h.Status, &h.Note, &h.ActorKind, &h.ActorID, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan job history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

// CreateNote persiste una nota sobre un trabajo.
func (r *JobRepo) CreateNote(n *entity.JobNote) error {
	query := `
		INSERT INTO job_notes (id, job_id, body, actor_kind, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.JobID, n.Body, n.ActorKind, n.ActorID, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job note: %w", err)
	}
	return nil
}

// ListNotes lista las notas de un trabajo, en orden.
func (r *JobRepo) ListNotes(jobID string) ([]*entity.JobNote, error) {
	query := `
		SELECT id, job_id, body, actor_kind, actor_id, created_at
		FROM job_notes WHERE job_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, jobID)
	if err != nil {
		return nil, fmt.Errorf("list job notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.JobNote
	for rows.Next() {
		var n entity.JobNote
		if err := rows.Scan(&n.ID, &n.JobID, &n.Body, &n.ActorKind, &n.ActorID, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan job note: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// CreateMaterial persiste una línea de material de un trabajo.
func (r *JobRepo) CreateMaterial(m *entity.JobMaterial) error {
	query := `
		INSERT INTO job_materials (id, job_id, item_id, quantity, unit_price, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.JobID, m.ItemID, m.Quantity, m.UnitPrice, m.Total, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job material: %w", err)
	}
	return nil
}

// ListMaterials lista las líneas de material de un trabajo.
func (r *JobRepo) ListMaterials(jobID string) ([]*entity.JobMaterial, error) {
	query := `
		SELECT id, job_id, item_id, quantity, unit_price, total, created_at
		FROM job_materials WHERE job_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, jobID)
	if err != nil {
		return nil, fmt.Errorf("list job materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.JobMaterial
	for rows.Next() {
		var m entity.JobMaterial
		if err := rows.Scan(&m.ID, &m.JobID, &m.ItemID, &m.Quantity, &m.UnitPrice, &m.Total, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan job material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// DeleteMaterials borra todas las líneas de material de un trabajo (la
// liquidación de entrega las reescribe completas).
func (r *JobRepo) DeleteMaterials(jobID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM job_materials WHERE job_id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("delete job materials: %w", err)
	}
	return nil
}
