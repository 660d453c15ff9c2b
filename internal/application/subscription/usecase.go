package subscription

import (
	"context"
	"strings"
	"time"

	"github.com/tu-usuario/aquaserv-pro/internal/application/dto"
	"github.com/tu-usuario/aquaserv-pro/internal/domain"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

// UseCase ciclo de vida de la suscripción del tenant. La expiración es
// perezosa: se detecta al leer y recién ahí se persiste el estado expirado.
type UseCase struct {
	subscriptionRepo repository.SubscriptionRepository
}

func NewUseCase(subscriptionRepo repository.SubscriptionRepository) *UseCase {
	return &UseCase{subscriptionRepo: subscriptionRepo}
}

// Get devuelve la suscripción del tenant con su estado ya reconciliado.
func (uc *UseCase) Get(ctx context.Context, tenantID string) (*dto.SubscriptionResponse, error) {
	sub, err := uc.resolve(tenantID)
	if err != nil {
		return nil, err
	}
	return toResponse(sub), nil
}

// CheckAccess indica si el tenant puede operar. Lo usa el middleware de
// suscripción en cada petición protegida.
func (uc *UseCase) CheckAccess(ctx context.Context, tenantID string) (bool, error) {
	sub, err := uc.resolve(tenantID)
	if err != nil {
		return false, err
	}
	return sub.AllowsAccess(time.Now()), nil
}

// Activate pasa la suscripción a un plan pago por N meses desde ahora.
// Vale tanto para salir del trial como para reactivar una expirada o
// cancelada.
func (uc *UseCase) Activate(ctx context.Context, tenantID string, in dto.ActivateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	plan := strings.TrimSpace(in.PlanType)
	if plan == "" || in.Months <= 0 {
		return nil, domain.ErrInvalidInput
	}
	sub, err := uc.resolve(tenantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ends := now.AddDate(0, in.Months, 0)
	sub.Status = entity.SubscriptionActive
	sub.PlanType = plan
	sub.StartsAt = &now
	sub.EndsAt = &ends
	sub.UpdatedAt = now
	if err := uc.subscriptionRepo.Update(sub); err != nil {
		return nil, err
	}
	return toResponse(sub), nil
}

// Renew extiende una suscripción activa. Renovar antes de vencer no pierde
// días: la extensión arranca del fin vigente o de ahora, lo que sea mayor.
func (uc *UseCase) Renew(ctx context.Context, tenantID string, in dto.RenewSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if in.Months <= 0 {
		return nil, domain.ErrInvalidInput
	}
	sub, err := uc.resolve(tenantID)
	if err != nil {
		return nil, err
	}
	if sub.Status != entity.SubscriptionActive {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	base := now
	if sub.EndsAt != nil && sub.EndsAt.After(now) {
		base = *sub.EndsAt
	}
	ends := base.AddDate(0, in.Months, 0)
	sub.EndsAt = &ends
	sub.UpdatedAt = now
	if err := uc.subscriptionRepo.Update(sub); err != nil {
		return nil, err
	}
	return toResponse(sub), nil
}

// Cancel corta el acceso de inmediato; los datos del tenant permanecen.
func (uc *UseCase) Cancel(ctx context.Context, tenantID string) (*dto.SubscriptionResponse, error) {
	sub, err := uc.resolve(tenantID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	sub.Status = entity.SubscriptionCancelled
	sub.UpdatedAt = now
	if err := uc.subscriptionRepo.Update(sub); err != nil {
		return nil, err
	}
	return toResponse(sub), nil
}

// resolve carga la suscripción y, si el reloj la dejó expirada, persiste el
// estado antes de devolverla.
func (uc *UseCase) resolve(tenantID string) (*entity.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetByTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	if computed := sub.ComputedStatus(now); computed != sub.Status {
		sub.Status = computed
		sub.UpdatedAt = now
		if err := uc.subscriptionRepo.Update(sub); err != nil {
			return nil, err
		}
	}
	return sub, nil
}

func toResponse(s *entity.Subscription) *dto.SubscriptionResponse {
	return &dto.SubscriptionResponse{
		ID:          s.ID,
		TenantID:    s.TenantID,
		Status:      s.Status,
		PlanType:    s.PlanType,
		TrialEndsAt: s.TrialEndsAt,
		StartsAt:    s.StartsAt,
		EndsAt:      s.EndsAt,
	}
}
