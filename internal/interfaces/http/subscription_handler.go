package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/aquaserv-pro/internal/application/dto"
	"github.com/tu-usuario/aquaserv-pro/internal/application/maintenance"
	"github.com/tu-usuario/aquaserv-pro/internal/application/subscription"
)

// SubscriptionHandler maneja la suscripción del tenant y la vista de
// recordatorios de mantenimiento.
type SubscriptionHandler struct {
	uc      *subscription.UseCase
	sweeper *maintenance.Sweeper
}

// NewSubscriptionHandler construye el handler.
func NewSubscriptionHandler(uc *subscription.UseCase, sweeper *maintenance.Sweeper) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc, sweeper: sweeper}
}

// Get GET /api/subscription
func (h *SubscriptionHandler) Get(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	sub, err := h.uc.Get(c.UserContext(), ident.TenantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sub)
}

// Activate POST /api/subscription/activate
func (h *SubscriptionHandler) Activate(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	var in dto.ActivateSubscriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sub, err := h.uc.Activate(c.UserContext(), ident.TenantID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sub)
}

// Renew POST /api/subscription/renew
func (h *SubscriptionHandler) Renew(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	var in dto.RenewSubscriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sub, err := h.uc.Renew(c.UserContext(), ident.TenantID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sub)
}

// Cancel POST /api/subscription/cancel
func (h *SubscriptionHandler) Cancel(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	sub, err := h.uc.Cancel(c.UserContext(), ident.TenantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sub)
}

// ListReminders GET /api/maintenance/reminders?limit=20&offset=0
func (h *SubscriptionHandler) ListReminders(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.sweeper.List(c.UserContext(), ident.TenantID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
