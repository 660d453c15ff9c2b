package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/aquaserv-pro/internal/domain"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo implementación de SubscriptionRepository (usable con pool o tx).
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

// Create persiste la suscripción del tenant (única por tenant).
func (r *SubscriptionRepo) Create(s *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, tenant_id, status, plan_type, trial_ends_at, starts_at, ends_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.TenantID, s.Status, s.PlanType, s.TrialEndsAt, s.StartsAt, s.EndsAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// GetByTenantID obtiene la suscripción del tenant.
func (r *SubscriptionRepo) GetByTenantID(tenantID string) (*entity.Subscription, error) {
	query := `
		SELECT id, tenant_id, status, plan_type, trial_ends_at, starts_at, ends_at, created_at, updated_at
		FROM subscriptions WHERE tenant_id = $1`
	var s entity.Subscription
	err := r.q.QueryRow(context.Background(), query, tenantID).Scan(
		&s.ID, &s.TenantID, &s.Status, &s.PlanType, &s.TrialEndsAt, &s.StartsAt, &s.EndsAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &s, nil
}

// Update actualiza la suscripción.
func (r *SubscriptionRepo) Update(s *entity.Subscription) error {
	query := `
		UPDATE subscriptions SET status = $2, plan_type = $3, trial_ends_at = $4,
			starts_at = $5, ends_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Status, s.PlanType, s.TrialEndsAt, s.StartsAt, s.EndsAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	return nil
}
