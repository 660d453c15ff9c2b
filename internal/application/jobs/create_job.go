package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/aquaserv-pro/internal/application/dto"
	"github.com/tu-usuario/aquaserv-pro/internal/domain"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

// Create crea un trabajo. Requiere customerID existente o datos inline del
// cliente (se crea dentro de la misma transacción). Resolución de cliente,
// inserción del trabajo, líneas de material, asignaciones de personal y la
// nota inicial se escriben en una sola transacción: creación parcial nunca
// debe ser observable.
func (uc *UseCase) Create(ctx context.Context, ident domain.Identity, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	if in.Title == "" || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.CustomerID == "" && in.Customer == nil {
		return nil, domain.ErrInvalidInput
	}
	if in.Customer != nil && in.Customer.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	// Validar cliente existente (si lo hay) y que sea del tenant
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil || customer.TenantID != ident.TenantID {
			return nil, domain.ErrNotFound
		}
	}

	// Validar personal: existe, es del tenant y está activo
	for _, pid := range in.PersonnelIDs {
		p, err := uc.personnelRepo.GetByID(pid)
		if err != nil {
			return nil, err
		}
		if p == nil || p.TenantID != ident.TenantID || !p.IsActive() {
			return nil, domain.ErrPersonnelUnavailable
		}
	}

	// Validar líneas de material contra el stock actual
	for _, m := range in.Materials {
		if m.ItemID == "" || !m.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(m.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil || item.TenantID != ident.TenantID {
			return nil, domain.ErrNotFound
		}
		if item.Quantity.LessThan(m.Quantity) {
			return nil, domain.ErrInsufficientStock
		}
	}

	now := time.Now()
	job := &entity.Job{
		ID:                   uuid.New().String(),
		TenantID:             ident.TenantID,
		CustomerID:           in.CustomerID,
		Title:                in.Title,
		Description:          in.Description,
		Status:               entity.JobStatusPending,
		ScheduledAt:          in.ScheduledAt,
		Price:                in.Price.Round(2),
		CollectedAmount:      decimal.Zero,
		PaymentStatus:        entity.JobPaymentPending,
		LocationLat:          in.LocationLat,
		LocationLng:          in.LocationLng,
		LocationAddress:      in.LocationAddress,
		MaintenanceDueAt:     in.MaintenanceDueAt,
		MaintenanceIntervalM: in.MaintenanceIntervalM,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err := uc.txRunner.RunJob(ctx, func(
		jobRepo repository.JobRepository,
		customerRepo repository.CustomerRepository,
		_ repository.PersonnelRepository,
		itemRepo repository.InventoryItemRepository,
		_ repository.InventoryTransactionRepository,
		_ repository.MaintenanceReminderRepository,
		_ repository.InvoiceRepository,
	) error {
		// 1) Cliente inline: se crea dentro de la misma tx
		if job.CustomerID == "" {
			customer := &entity.Customer{
				ID:            uuid.New().String(),
				TenantID:      ident.TenantID,
				Name:          in.Customer.Name,
				Phone:         in.Customer.Phone,
				Email:         in.Customer.Email,
				Address:       in.Customer.Address,
				DebtAmount:    decimal.Zero,
				RemainingDebt: decimal.Zero,
				PaidDebt:      decimal.Zero,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := customerRepo.Create(customer); err != nil {
				return err
			}
			job.CustomerID = customer.ID
		}

		// 2) Trabajo
		if err := jobRepo.Create(job); err != nil {
			return err
		}

		// 3) Líneas de material (reserva; el precio definitivo se captura
		// en la entrega)
		for _, m := range in.Materials {
			item, err := itemRepo.GetByID(m.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			if err := jobRepo.CreateMaterial(&entity.JobMaterial{
				ID:        uuid.New().String(),
				JobID:     job.ID,
				ItemID:    m.ItemID,
				Quantity:  m.Quantity,
				UnitPrice: item.UnitPrice,
				Total:     m.Quantity.Mul(item.UnitPrice).Round(2),
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}

		// 4) Asignaciones de personal
		for _, pid := range in.PersonnelIDs {
			if err := jobRepo.CreateAssignment(&entity.JobPersonnel{
				ID:          uuid.New().String(),
				JobID:       job.ID,
				PersonnelID: pid,
				CreatedAt:   now,
			}); err != nil {
				return err
			}
		}

		// 5) Historial inicial + nota opcional
		if err := jobRepo.CreateHistory(newHistory(job.ID, entity.JobStatusPending, in.Note, ident, now)); err != nil {
			return err
		}
		if in.Note != "" {
			if err := jobRepo.CreateNote(newNote(job.ID, in.Note, ident)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toResponseFull(job)
}

func newHistory(jobID, status, note string, ident domain.Identity, now time.Time) *entity.JobStatusHistory {
	return &entity.JobStatusHistory{
		ID:        uuid.New().String(),
		JobID:     jobID,
		Status:    status,
		Note:      note,
		ActorKind: ident.Kind,
		ActorID:   ident.ActorID,
		CreatedAt: now,
	}
}

func newNote(jobID, body string, ident domain.Identity) *entity.JobNote {
	return &entity.JobNote{
		ID:        uuid.New().String(),
		JobID:     jobID,
		Body:      body,
		ActorKind: ident.Kind,
		ActorID:   ident.ActorID,
		CreatedAt: time.Now(),
	}
}
