package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/aquaserv-pro/internal/application/dto"
	"github.com/tu-usuario/aquaserv-pro/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de inventario.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// CreateItem POST /api/inventory/items
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.CreateItem(c.UserContext(), ident.TenantID, ident.ActorID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// GetItem GET /api/inventory/items/:id
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	item, err := h.uc.GetItem(c.UserContext(), ident.TenantID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// ListItems GET /api/inventory/items?limit=20&offset=0
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.ListItems(c.UserContext(), ident.TenantID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// UpdateItem PUT /api/inventory/items/:id
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.UpdateItem(c.UserContext(), ident.TenantID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// RegisterTransaction POST /api/inventory/transactions
func (h *InventoryHandler) RegisterTransaction(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	var in dto.RegisterTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.RegisterTransaction(c.UserContext(), ident.TenantID, ident.ActorID, in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// ListTransactions GET /api/inventory/items/:id/transactions?limit=20&offset=0
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.ListTransactions(c.UserContext(), ident.TenantID, c.Params("id"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
