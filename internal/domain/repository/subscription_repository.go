package repository

import "github.com/tu-usuario/aquaserv-pro/internal/domain/entity"

// SubscriptionRepository puerto para la suscripción del tenant (una por tenant).
type SubscriptionRepository interface {
	Create(s *entity.Subscription) error
	GetByTenantID(tenantID string) (*entity.Subscription, error)
	Update(s *entity.Subscription) error
}
