package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/aquaserv-pro/internal/application/dto"
	"github.com/tu-usuario/aquaserv-pro/internal/application/notify"
	"github.com/tu-usuario/aquaserv-pro/internal/domain"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

// UpdateStatus es el único camino sancionado para cambiar el estado de un
// trabajo. La transición se valida contra la tabla de adyacencia
// (PENDING→IN_PROGRESS→DELIVERED→ARCHIVED); pasar a DELIVERED dispara la
// liquidación dentro de la misma transacción. Cada llamada agrega una
// entrada inmutable al historial.
//
// Dos entregas concurrentes se serializan con el bloqueo de la fila del
// trabajo: la segunda ve el estado ya DELIVERED y falla con
// ErrInvalidTransition sin tocar stock.
func (uc *UseCase) UpdateStatus(ctx context.Context, ident domain.Identity, jobID string, in dto.UpdateJobStatusRequest) (*dto.JobResponse, error) {
	switch in.Status {
	case entity.JobStatusInProgress, entity.JobStatusDelivered, entity.JobStatusArchived:
	default:
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var job *entity.Job
	var events []notify.Notification

	err := uc.txRunner.RunJob(ctx, func(
		jobRepo repository.JobRepository,
		customerRepo repository.CustomerRepository,
		_ repository.PersonnelRepository,
		itemRepo repository.InventoryItemRepository,
		txnRepo repository.InventoryTransactionRepository,
		reminderRepo repository.MaintenanceReminderRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		var err error
		// Bloquea la fila del trabajo: la verificación de transición y la
		// liquidación ocurren bajo el mismo lock
		job, err = jobRepo.GetForUpdate(jobID)
		if err != nil {
			return err
		}
		if job == nil || job.TenantID != ident.TenantID {
			return domain.ErrNotFound
		}
		if !entity.CanTransitionJobStatus(job.Status, in.Status) {
			return domain.ErrInvalidTransition
		}

		switch in.Status {
		case entity.JobStatusInProgress:
			job.StartedAt = &now
			if err := uc.stampAssignment(jobRepo, job.ID, ident, now, false); err != nil {
				return err
			}

		case entity.JobStatusDelivered:
			job.DeliveredAt = &now
			if err := uc.stampAssignment(jobRepo, job.ID, ident, now, true); err != nil {
				return err
			}
			evs, err := uc.settleDelivery(jobRepo, customerRepo, itemRepo, txnRepo, reminderRepo, invoiceRepo, job, ident, in, now)
			if err != nil {
				return err
			}
			events = evs

		case entity.JobStatusArchived:
			job.ArchivedAt = &now
		}

		job.Status = in.Status
		job.UpdatedAt = now
		if err := jobRepo.Update(job); err != nil {
			return err
		}

		// Historial inmutable en toda transición + nota opcional
		if err := jobRepo.CreateHistory(newHistory(job.ID, in.Status, in.Note, ident, now)); err != nil {
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

	// Despacho post-commit, fire-and-forget: un fallo se registra y se
	// descarta, jamás revierte la transacción ya confirmada
	for _, ev := range events {
		if derr := uc.dispatcher.Dispatch(ctx, ev); derr != nil {
			uc.log.Warn().Err(derr).Str("event", ev.Event).Str("tenant_id", ev.TenantID).Msg("despacho de notificación falló")
		}
	}

	return uc.toResponseFull(job)
}

// stampAssignment marca el tiempo personal del trabajador en su fila de
// asignación (distinto del tiempo canónico del trabajo).
func (uc *UseCase) stampAssignment(jobRepo repository.JobRepository, jobID string, ident domain.Identity, now time.Time, delivered bool) error {
	if !ident.IsPersonnel() {
		return nil
	}
	a, err := jobRepo.GetAssignment(jobID, ident.ActorID)
	if err != nil {
		return err
	}
	if a == nil {
		return nil // el actor no está asignado; el tiempo del trabajo basta
	}
	if delivered {
		a.DeliveredAt = &now
	} else {
		a.StartedAt = &now
	}
	return jobRepo.UpdateAssignment(a)
}

// settleDelivery ejecuta la liquidación de entrega dentro de la transacción
// del caller: consumo de materiales al precio vigente, factura snapshot y
// recordatorio de mantenimiento. Cualquier error revierte la entrega
// completa — el trabajo no puede quedar DELIVERED con descuentos parciales.
func (uc *UseCase) settleDelivery(
	jobRepo repository.JobRepository,
	customerRepo repository.CustomerRepository,
	itemRepo repository.InventoryItemRepository,
	txnRepo repository.InventoryTransactionRepository,
	reminderRepo repository.MaintenanceReminderRepository,
	invoiceRepo repository.InvoiceRepository,
	job *entity.Job,
	ident domain.Identity,
	in dto.UpdateJobStatusRequest,
	now time.Time,
) ([]notify.Notification, error) {
	// Materiales efectivos: los reportados en la entrega o, en su defecto,
	// las líneas reservadas en la creación
	lines := in.Materials
	if len(lines) == 0 {
		reserved, err := jobRepo.ListMaterials(job.ID)
		if err != nil {
			return nil, err
		}
		for _, m := range reserved {
			lines = append(lines, dto.JobMaterialRequest{ItemID: m.ItemID, Quantity: m.Quantity})
		}
	}

	// Las líneas finales se reescriben al precio capturado en el uso
	if err := jobRepo.DeleteMaterials(job.ID); err != nil {
		return nil, err
	}
	materialsTotal := decimal.Zero
	var finalLines []*entity.JobMaterial
	for _, m := range lines {
		if m.ItemID == "" || !m.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.inventory.ConsumeInTx(itemRepo, txnRepo, job.TenantID, m.ItemID, job.ID, ident.ActorID, m.Quantity, now)
		if err != nil {
			return nil, err
		}
		line := &entity.JobMaterial{
			ID:        uuid.New().String(),
			JobID:     job.ID,
			ItemID:    m.ItemID,
			Quantity:  m.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     m.Quantity.Mul(item.UnitPrice).Round(2),
			CreatedAt: now,
		}
		if err := jobRepo.CreateMaterial(line); err != nil {
			return nil, err
		}
		finalLines = append(finalLines, line)
		materialsTotal = materialsTotal.Add(line.Total)
	}

	// Cobro reportado en la entrega
	if in.CollectedAmount != nil {
		if in.CollectedAmount.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		job.CollectedAmount = in.CollectedAmount.Round(2)
	}
	switch {
	case job.CollectedAmount.GreaterThanOrEqual(job.Price) && job.Price.GreaterThan(decimal.Zero):
		job.PaymentStatus = entity.JobPaymentPaid
	case job.CollectedAmount.GreaterThan(decimal.Zero):
		job.PaymentStatus = entity.JobPaymentPartial
	default:
		job.PaymentStatus = entity.JobPaymentPending
	}

	// Factura snapshot del trabajo (datos del cliente copiados por valor)
	customer, err := customerRepo.GetByID(job.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	inv := &entity.Invoice{
		ID:              uuid.New().String(),
		TenantID:        job.TenantID,
		Number:          fmt.Sprintf("FAC-%d", now.Unix()),
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		CustomerAddress: customer.Address,
		JobID:           job.ID,
		Total:           job.Price,
		IssuedAt:        now,
		CreatedAt:       now,
	}
	if err := invoiceRepo.Create(inv); err != nil {
		return nil, err
	}
	for _, m := range finalLines {
		if err := invoiceRepo.CreateLine(&entity.InvoiceLine{
			ID:          uuid.New().String(),
			InvoiceID:   inv.ID,
			Description: "Material " + m.ItemID,
			Quantity:    m.Quantity,
			UnitPrice:   m.UnitPrice,
			Subtotal:    m.Total,
		}); err != nil {
			return nil, err
		}
	}
	if service := job.Price.Sub(materialsTotal); service.GreaterThan(decimal.Zero) {
		if err := invoiceRepo.CreateLine(&entity.InvoiceLine{
			ID:          uuid.New().String(),
			InvoiceID:   inv.ID,
			Description: "Mano de obra y servicio",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   service.Round(2),
			Subtotal:    service.Round(2),
		}); err != nil {
			return nil, err
		}
	}

	// Mantenimiento: intervalo del request (si viene) sobre el del trabajo
	interval := job.MaintenanceIntervalM
	if in.MaintenanceIntervalM != nil {
		interval = *in.MaintenanceIntervalM
		job.MaintenanceIntervalM = interval
	}
	var dueAt *time.Time
	if interval > 0 {
		d := now.AddDate(0, interval, 0)
		dueAt = &d
	} else {
		dueAt = job.MaintenanceDueAt // se conserva la fecha existente, si la hay
	}

	events := []notify.Notification{{
		Event:    notify.EventJobDelivered,
		TenantID: job.TenantID,
		Title:    "Trabajo entregado",
		Body:     fmt.Sprintf("El trabajo %q fue entregado", job.Title),
		Data:     map[string]string{"job_id": job.ID, "customer_id": job.CustomerID},
	}}

	if dueAt != nil {
		job.MaintenanceDueAt = dueAt
		// Una entrega siempre reinicia el reloj del recordatorio: vuelve a
		// PENDING sin historial de escalamiento previo
		if err := reminderRepo.Upsert(&entity.MaintenanceReminder{
			ID:         uuid.New().String(),
			TenantID:   job.TenantID,
			JobID:      job.ID,
			CustomerID: job.CustomerID,
			DueAt:      *dueAt,
			Status:     entity.ReminderPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}); err != nil {
			return nil, err
		}
	} else {
		job.MaintenanceDueAt = nil
		if err := reminderRepo.DeleteByJobID(job.ID); err != nil {
			return nil, err
		}
		events = append(events, notify.Notification{
			Event:    notify.EventReminderCleared,
			TenantID: job.TenantID,
			Title:    "Recordatorio eliminado",
			Body:     fmt.Sprintf("El trabajo %q cerró sin mantenimiento programado", job.Title),
			Data:     map[string]string{"job_id": job.ID},
		})
	}

	return events, nil
}
