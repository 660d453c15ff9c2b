package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/aquaserv-pro/internal/application/billing"
	"github.com/tu-usuario/aquaserv-pro/internal/application/customers"
	"github.com/tu-usuario/aquaserv-pro/internal/application/dto"
)

// CustomerHandler maneja las peticiones HTTP de clientes y su deuda.
type CustomerHandler struct {
	uc     *customers.UseCase
	debtUC *billing.DebtUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *customers.UseCase, debtUC *billing.DebtUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc, debtUC: debtUC}
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Create(c.UserContext(), ident.TenantID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// Get GET /api/customers/:id
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	customer, err := h.uc.Get(c.UserContext(), ident.TenantID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customer)
}

// List GET /api/customers?limit=20&offset=0
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(c.UserContext(), ident.TenantID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Update PUT /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Update(c.UserContext(), ident.TenantID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customer)
}

// Delete DELETE /api/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	if err := h.uc.Delete(c.UserContext(), ident.TenantID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecordDebt POST /api/customers/:id/debt
func (h *CustomerHandler) RecordDebt(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	var in dto.RecordDebtRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.debtUC.RecordDebt(c.UserContext(), ident.TenantID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customer)
}

// PayDebt POST /api/customers/:id/debt/pay
func (h *CustomerHandler) PayDebt(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	var in dto.PayDebtRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.debtUC.PayDebt(c.UserContext(), ident.TenantID, c.Params("id"), ident.ActorID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customer)
}

// ListInstallments GET /api/customers/:id/installments
func (h *CustomerHandler) ListInstallments(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	list, err := h.debtUC.ListInstallments(c.UserContext(), ident.TenantID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// ListPayments GET /api/customers/:id/payments?limit=20&offset=0
func (h *CustomerHandler) ListPayments(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.debtUC.ListPayments(c.UserContext(), ident.TenantID, c.Params("id"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
