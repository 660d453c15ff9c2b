package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

var _ repository.MaintenanceReminderRepository = (*MaintenanceReminderRepo)(nil)

// MaintenanceReminderRepo implementación de MaintenanceReminderRepository
// (usable con pool o tx).
type MaintenanceReminderRepo struct {
	q Querier
}

// NewMaintenanceReminderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaintenanceReminderRepository(q Querier) *MaintenanceReminderRepo {
	return &MaintenanceReminderRepo{q: q}
}

const reminderColumns = `id, tenant_id, job_id, customer_id, due_at, status, last_window, last_notified_at, created_at, updated_at`

func scanReminder(row pgx.Row) (*entity.MaintenanceReminder, error) {
	var m entity.MaintenanceReminder
	err := row.Scan(
		&m.ID, &m.TenantID, &m.JobID, &m.CustomerID, &m.DueAt, &m.Status,
		&m.LastWindow, &m.LastNotifiedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Upsert crea o reemplaza el recordatorio del trabajo (uno por trabajo).
// Reprogramar resetea estado y escalación: el ciclo de notificación vuelve
// a empezar para la fecha nueva.
func (r *MaintenanceReminderRepo) Upsert(m *entity.MaintenanceReminder) error {
	query := `
		INSERT INTO maintenance_reminders (` + reminderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (job_id) DO UPDATE SET
			due_at = EXCLUDED.due_at, status = EXCLUDED.status,
			last_window = EXCLUDED.last_window, last_notified_at = EXCLUDED.last_notified_at,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.TenantID, m.JobID, m.CustomerID, m.DueAt, m.Status,
		m.LastWindow, m.LastNotifiedAt, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert maintenance reminder: %w", err)
	}
	return nil
}

// GetByJobID obtiene el recordatorio de un trabajo.
func (r *MaintenanceReminderRepo) GetByJobID(jobID string) (*entity.MaintenanceReminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM maintenance_reminders WHERE job_id = $1`
	m, err := scanReminder(r.q.QueryRow(context.Background(), query, jobID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get maintenance reminder: %w", err)
	}
	return m, nil
}

// DeleteByJobID elimina el recordatorio de un trabajo si existe.
func (r *MaintenanceReminderRepo) DeleteByJobID(jobID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM maintenance_reminders WHERE job_id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("delete maintenance reminder: %w", err)
	}
	return nil
}

// Update actualiza estado y ventana de escalación del recordatorio.
func (r *MaintenanceReminderRepo) Update(m *entity.MaintenanceReminder) error {
	query := `
		UPDATE maintenance_reminders SET due_at = $2, status = $3, last_window = $4,
			last_notified_at = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.DueAt, m.Status, m.LastWindow, m.LastNotifiedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update maintenance reminder: %w", err)
	}
	return nil
}

// ListPending recordatorios PENDING con vencimiento hasta horizon,
// ordenados del más urgente al menos urgente.
func (r *MaintenanceReminderRepo) ListPending(horizon time.Time) ([]*entity.MaintenanceReminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM maintenance_reminders
		WHERE status = $1 AND due_at <= $2 ORDER BY due_at`
	rows, err := r.q.Query(context.Background(), query, entity.ReminderPending, horizon)
	if err != nil {
		return nil, fmt.Errorf("list pending reminders: %w", err)
	}
	defer rows.Close()
	var list []*entity.MaintenanceReminder
	for rows.Next() {
		m, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan maintenance reminder: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListByTenant lista los recordatorios del tenant con paginación.
func (r *MaintenanceReminderRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.MaintenanceReminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM maintenance_reminders
		WHERE tenant_id = $1 ORDER BY due_at LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()
	var list []*entity.MaintenanceReminder
	for rows.Next() {
		m, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan maintenance reminder: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
