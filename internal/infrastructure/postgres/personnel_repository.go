package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/aquaserv-pro/internal/domain"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

var _ repository.PersonnelRepository = (*PersonnelRepo)(nil)

// PersonnelRepo implementación de PersonnelRepository (usable con pool o tx).
type PersonnelRepo struct {
	q Querier
}

// NewPersonnelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPersonnelRepository(q Querier) *PersonnelRepo {
	return &PersonnelRepo{q: q}
}

const personnelColumns = `id, tenant_id, email, password_hash, name, phone, status, created_at, updated_at`

// Create persiste un nuevo trabajador.
func (r *PersonnelRepo) Create(p *entity.Personnel) error {
	query := `
		INSERT INTO personnel (` + personnelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.TenantID, p.Email, p.PasswordHash, p.Name, p.Phone, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert personnel: %w", err)
	}
	return nil
}

// GetByID obtiene un trabajador por ID.
func (r *PersonnelRepo) GetByID(id string) (*entity.Personnel, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// GetByEmail obtiene un trabajador por email.
func (r *PersonnelRepo) GetByEmail(email string) (*entity.Personnel, error) {
	return r.getOne(`WHERE email = $1`, email)
}

func (r *PersonnelRepo) getOne(where string, arg any) (*entity.Personnel, error) {
	query := `SELECT ` + personnelColumns + ` FROM personnel ` + where
	var p entity.Personnel
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.TenantID, &p.Email, &p.PasswordHash, &p.Name, &p.Phone, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get personnel: %w", err)
	}
	return &p, nil
}

// ListByTenant lista el personal del tenant con paginación.
func (r *PersonnelRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Personnel, error) {
	query := `SELECT ` + personnelColumns + ` FROM personnel
		WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list personnel: %w", err)
	}
	defer rows.Close()
	var list []*entity.Personnel
	for rows.Next() {
		var p entity.Personnel
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Email, &p.PasswordHash, &p.Name, &p.Phone, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan personnel: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un trabajador.
func (r *PersonnelRepo) Update(p *entity.Personnel) error {
	query := `
		UPDATE personnel SET email = $2, password_hash = $3, name = $4, phone = $5, status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Email, p.PasswordHash, p.Name, p.Phone, p.Status, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update personnel: %w", err)
	}
	return nil
}

// Delete elimina un trabajador por ID.
func (r *PersonnelRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM personnel WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete personnel: %w", err)
	}
	return nil
}
