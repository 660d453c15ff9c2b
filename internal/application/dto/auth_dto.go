package dto

import "time"

// RegisterTenantRequest alta de un tenant (admin dueño del negocio).
type RegisterTenantRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
	Phone       string `json:"phone"`
}

// LoginRequest credenciales de admin o de personal (endpoints separados).
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminResponse representación pública de un admin/tenant.
type AdminResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name"`
	Phone       string    `json:"phone"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// PersonnelResponse representación pública de un trabajador.
type PersonnelResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse token + actor autenticado (solo uno de los dos campos).
type LoginResponse struct {
	Token     string             `json:"token"`
	Admin     *AdminResponse     `json:"admin,omitempty"`
	Personnel *PersonnelResponse `json:"personnel,omitempty"`
}

// CreatePersonnelRequest alta de un trabajador de campo del tenant.
type CreatePersonnelRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}
