package entity

import "time"

// Personnel representa un trabajador de campo (pertenece a un tenant).
type Personnel struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	Status       string // active, passive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el trabajador puede ser asignado a trabajos.
func (p *Personnel) IsActive() bool { return p.Status == StatusActive }
