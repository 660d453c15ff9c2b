package jobs

import (
	"context"

	"github.com/tu-usuario/aquaserv-pro/internal/application/dto"
	"github.com/tu-usuario/aquaserv-pro/internal/application/notify"
	"github.com/tu-usuario/aquaserv-pro/internal/domain"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
	"github.com/tu-usuario/aquaserv-pro/pkg/logger"
)

// UseCase orquesta el ciclo de vida de trabajos: creación, asignación,
// transiciones de estado y liquidación de entrega como unidad atómica.
type UseCase struct {
	txRunner      TxRunner
	jobRepo       repository.JobRepository
	customerRepo  repository.CustomerRepository
	personnelRepo repository.PersonnelRepository
	itemRepo      repository.InventoryItemRepository
	inventory     InventoryConsumer
	dispatcher    notify.Dispatcher
	log           *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	jobRepo repository.JobRepository,
	customerRepo repository.CustomerRepository,
	personnelRepo repository.PersonnelRepository,
	itemRepo repository.InventoryItemRepository,
	inventory InventoryConsumer,
	dispatcher notify.Dispatcher,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		jobRepo:       jobRepo,
		customerRepo:  customerRepo,
		personnelRepo: personnelRepo,
		itemRepo:      itemRepo,
		inventory:     inventory,
		dispatcher:    dispatcher,
		log:           log,
	}
}

// Get obtiene un trabajo del tenant con sus agregados.
func (uc *UseCase) Get(ctx context.Context, tenantID, id string) (*dto.JobResponse, error) {
	job, err := uc.jobRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if job == nil || job.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return uc.toResponseFull(job)
}

// List lista trabajos del tenant, opcionalmente filtrados por estado.
func (uc *UseCase) List(ctx context.Context, tenantID, status string, limit, offset int) ([]*dto.JobResponse, error) {
	list, err := uc.jobRepo.ListByTenant(tenantID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.JobResponse, 0, len(list))
	for _, job := range list {
		out = append(out, toResponse(job))
	}
	return out, nil
}

// ListMine lista los trabajos asignados a un trabajador (vista de campo).
func (uc *UseCase) ListMine(ctx context.Context, ident domain.Identity, limit, offset int) ([]*dto.JobResponse, error) {
	if !ident.IsPersonnel() {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.jobRepo.ListByPersonnel(ident.ActorID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.JobResponse, 0, len(list))
	for _, job := range list {
		out = append(out, toResponse(job))
	}
	return out, nil
}

// AddNote agrega una nota de texto libre al trabajo.
func (uc *UseCase) AddNote(ctx context.Context, ident domain.Identity, jobID, body string) error {
	if body == "" {
		return domain.ErrInvalidInput
	}
	job, err := uc.jobRepo.GetByID(jobID)
	if err != nil {
		return err
	}
	if job == nil || job.TenantID != ident.TenantID {
		return domain.ErrNotFound
	}
	return uc.jobRepo.CreateNote(newNote(jobID, body, ident))
}

func (uc *UseCase) toResponseFull(job *entity.Job) (*dto.JobResponse, error) {
	resp := toResponse(job)

	assignments, err := uc.jobRepo.ListAssignments(job.ID)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		resp.PersonnelIDs = append(resp.PersonnelIDs, a.PersonnelID)
	}

	materials, err := uc.jobRepo.ListMaterials(job.ID)
	if err != nil {
		return nil, err
	}
	for _, m := range materials {
		resp.Materials = append(resp.Materials, dto.JobMaterialResponse{
			ItemID:    m.ItemID,
			Quantity:  m.Quantity,
			UnitPrice: m.UnitPrice,
			Total:     m.Total,
		})
	}

	history, err := uc.jobRepo.ListHistory(job.ID)
	if err != nil {
		return nil, err
	}
	for _, h := range history {
		resp.History = append(resp.History, dto.JobHistoryResponse{
			Status:    h.Status,
			Note:      h.Note,
			ActorKind: h.ActorKind,
			ActorID:   h.ActorID,
			CreatedAt: h.CreatedAt,
		})
	}
	return resp, nil
}

func toResponse(job *entity.Job) *dto.JobResponse {
	return &dto.JobResponse{
		ID:                   job.ID,
		TenantID:             job.TenantID,
		CustomerID:           job.CustomerID,
		Title:                job.Title,
		Description:          job.Description,
		Status:               job.Status,
		ScheduledAt:          job.ScheduledAt,
		StartedAt:            job.StartedAt,
		DeliveredAt:          job.DeliveredAt,
		ArchivedAt:           job.ArchivedAt,
		Price:                job.Price,
		CollectedAmount:      job.CollectedAmount,
		PaymentStatus:        job.PaymentStatus,
		MaintenanceDueAt:     job.MaintenanceDueAt,
		MaintenanceIntervalM: job.MaintenanceIntervalM,
		CreatedAt:            job.CreatedAt,
	}
}
