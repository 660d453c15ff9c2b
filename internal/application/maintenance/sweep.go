package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/aquaserv-pro/internal/application/dto"
	"github.com/tu-usuario/aquaserv-pro/internal/application/notify"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
	"github.com/tu-usuario/aquaserv-pro/pkg/logger"
)

// Sweeper barrido de recordatorios de mantenimiento. Cada pasada evalúa los
// recordatorios PENDING cuyo vencimiento cae dentro del horizonte de 7 días
// y notifica al tenant dueño cuando el recordatorio entra en una ventana más
// urgente que la última registrada.
type Sweeper struct {
	reminderRepo repository.MaintenanceReminderRepository
	dispatcher   notify.Dispatcher
	log          *logger.Logger
}

func NewSweeper(reminderRepo repository.MaintenanceReminderRepository, dispatcher notify.Dispatcher, log *logger.Logger) *Sweeper {
	return &Sweeper{reminderRepo: reminderRepo, dispatcher: dispatcher, log: log}
}

// Sweep ejecuta una pasada con "now" como referencia. Devuelve cuántos
// recordatorios notificó. Es idempotente: repetir la pasada con el mismo
// reloj no vuelve a notificar nada, porque la ventana queda persistida en
// el recordatorio antes de despachar el siguiente.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) (int, error) {
	horizon := now.AddDate(0, 0, 7)
	pending, err := s.reminderRepo.ListPending(horizon)
	if err != nil {
		return 0, err
	}

	notified := 0
	for _, r := range pending {
		window := entity.WindowForDue(r.DueAt, now)
		if window == "" {
			continue
		}
		// Escalación monotónica: nunca repetir ni retroceder de ventana.
		if entity.WindowRank(window) <= entity.WindowRank(r.LastWindow) {
			continue
		}

		r.LastWindow = window
		r.LastNotifiedAt = &now
		if window == entity.WindowOverdue {
			r.Status = entity.ReminderSent
		}
		r.UpdatedAt = now
		if err := s.reminderRepo.Update(r); err != nil {
			s.log.Error().Err(err).Str("reminder_id", r.ID).Msg("barrido: no se pudo actualizar recordatorio")
			continue
		}

		if err := s.dispatcher.Dispatch(ctx, notify.Notification{
			Event:    notify.EventMaintenanceWindow,
			TenantID: r.TenantID,
			Title:    windowTitle(window),
			Body:     windowBody(window, r.DueAt, now),
			Data: map[string]string{
				"job_id":      r.JobID,
				"customer_id": r.CustomerID,
				"window":      window,
				"due_at":      r.DueAt.Format(time.RFC3339),
			},
		}); err != nil {
			// El despacho es fire-and-forget; la ventana ya quedó registrada.
			s.log.Warn().Err(err).Str("reminder_id", r.ID).Msg("barrido: fallo el despacho de la notificación")
		}
		notified++
	}
	return notified, nil
}

// List recordatorios del tenant (vista para el admin).
func (s *Sweeper) List(ctx context.Context, tenantID string, limit, offset int) ([]*dto.ReminderResponse, error) {
	list, err := s.reminderRepo.ListByTenant(tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReminderResponse, 0, len(list))
	for _, r := range list {
		out = append(out, &dto.ReminderResponse{
			ID:             r.ID,
			JobID:          r.JobID,
			CustomerID:     r.CustomerID,
			DueAt:          r.DueAt,
			Status:         r.Status,
			LastWindow:     r.LastWindow,
			LastNotifiedAt: r.LastNotifiedAt,
		})
	}
	return out, nil
}

func windowTitle(window string) string {
	switch window {
	case entity.WindowOverdue:
		return "Mantenimiento vencido"
	case entity.WindowOneDay:
		return "Mantenimiento mañana"
	case entity.WindowThreeDays:
		return "Mantenimiento en 3 días"
	default:
		return "Mantenimiento en 7 días"
	}
}

func windowBody(window string, dueAt, now time.Time) string {
	if window == entity.WindowOverdue {
		return fmt.Sprintf("El mantenimiento venció el %s.", dueAt.Format("2006-01-02"))
	}
	return fmt.Sprintf("El mantenimiento vence en %d día(s), el %s.", entity.DaysUntil(dueAt, now), dueAt.Format("2006-01-02"))
}
