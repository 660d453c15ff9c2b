package entity

import "time"

// Roles de Admin: "primary" tiene visibilidad cross-tenant; "tenant" es el
// dueño de un negocio (un tenant) y solo ve sus propios datos.
const (
	AdminRolePrimary = "primary"
	AdminRoleTenant  = "tenant"
)

// Estados de Admin y Personnel.
const (
	StatusActive  = "active"
	StatusPassive = "passive"
)

// Admin representa un tenant: el negocio dueño de clientes, trabajos,
// personal e inventario. Toda fila tenant-scoped referencia su ID.
type Admin struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	CompanyName  string
	Phone        string
	Role         string // primary, tenant
	Status       string // active, passive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
