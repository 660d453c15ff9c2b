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

var _ repository.AdminRepository = (*AdminRepo)(nil)

// AdminRepo implementación de AdminRepository (usable con pool o tx).
type AdminRepo struct {
	q Querier
}

// NewAdminRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdminRepository(q Querier) *AdminRepo {
	return &AdminRepo{q: q}
}

// Create persiste un nuevo admin (tenant).
func (r *AdminRepo) Create(admin *entity.Admin) error {
	query := `
		INSERT INTO admins (id, email, password_hash, name, company_name, phone, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		admin.ID, admin.Email, admin.PasswordHash, admin.Name, admin.CompanyName, admin.Phone,
		admin.Role, admin.Status, admin.CreatedAt, admin.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// GetByID obtiene un admin por ID.
func (r *AdminRepo) GetByID(id string) (*entity.Admin, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// GetByEmail obtiene un admin por email.
func (r *AdminRepo) GetByEmail(email string) (*entity.Admin, error) {
	return r.getOne(`WHERE email = $1`, email)
}

func (r *AdminRepo) getOne(where string, arg any) (*entity.Admin, error) {
	query := `
		SELECT id, email, password_hash, name, company_name, phone, role, status, created_at, updated_at
		FROM admins ` + where
	var a entity.Admin
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.CompanyName, &a.Phone,
		&a.Role, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &a, nil
}

// Update actualiza un admin.
func (r *AdminRepo) Update(admin *entity.Admin) error {
	query := `
		UPDATE admins SET email = $2, password_hash = $3, name = $4, company_name = $5,
			phone = $6, role = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		admin.ID, admin.Email, admin.PasswordHash, admin.Name, admin.CompanyName,
		admin.Phone, admin.Role, admin.Status, admin.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update admin: %w", err)
	}
	return nil
}
