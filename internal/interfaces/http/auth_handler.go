package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/aquaserv-pro/internal/application/auth"
	"github.com/tu-usuario/aquaserv-pro/internal/application/dto"
)

// AuthHandler maneja registro de tenants, login y gestión de personal.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterTenantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	admin, err := h.uc.RegisterTenant(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(admin)
}

// LoginAdmin POST /api/auth/login
func (h *AuthHandler) LoginAdmin(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.LoginAdmin(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LoginPersonnel POST /api/auth/personnel/login
func (h *AuthHandler) LoginPersonnel(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.LoginPersonnel(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreatePersonnel POST /api/personnel (solo admin)
func (h *AuthHandler) CreatePersonnel(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	var in dto.CreatePersonnelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.CreatePersonnel(c.UserContext(), ident.TenantID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// ListPersonnel GET /api/personnel?limit=20&offset=0 (solo admin)
func (h *AuthHandler) ListPersonnel(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.ListPersonnel(c.UserContext(), ident.TenantID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// DeactivatePersonnel DELETE /api/personnel/:id (solo admin, baja lógica)
func (h *AuthHandler) DeactivatePersonnel(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	if err := h.uc.DeactivatePersonnel(c.UserContext(), ident.TenantID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
