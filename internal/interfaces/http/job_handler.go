package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/aquaserv-pro/internal/application/dto"
	"github.com/tu-usuario/aquaserv-pro/internal/application/jobs"
)

// JobHandler maneja las peticiones HTTP del ciclo de vida de trabajos.
type JobHandler struct {
	uc *jobs.UseCase
}

// NewJobHandler construye el handler.
func NewJobHandler(uc *jobs.UseCase) *JobHandler {
	return &JobHandler{uc: uc}
}

// Create POST /api/jobs (solo admin)
func (h *JobHandler) Create(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	var in dto.CreateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	job, err := h.uc.Create(c.UserContext(), ident, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// Get GET /api/jobs/:id
func (h *JobHandler) Get(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	job, err := h.uc.Get(c.UserContext(), ident.TenantID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(job)
}

// List GET /api/jobs?status=PENDING&limit=20&offset=0
func (h *JobHandler) List(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(c.UserContext(), ident.TenantID, c.Query("status"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// ListMine GET /api/jobs/mine (solo personal de campo: sus asignados)
func (h *JobHandler) ListMine(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.ListMine(c.UserContext(), ident, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// UpdateStatus PATCH /api/jobs/:id/status
func (h *JobHandler) UpdateStatus(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	var in dto.UpdateJobStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	job, err := h.uc.UpdateStatus(c.UserContext(), ident, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(job)
}

// AddNote POST /api/jobs/:id/notes
func (h *JobHandler) AddNote(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	var in struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.AddNote(c.UserContext(), ident, c.Params("id"), in.Body); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}
