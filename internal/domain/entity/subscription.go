package entity

import "time"

// Estados de suscripción.
const (
	SubscriptionTrial     = "trial"
	SubscriptionActive    = "active"
	SubscriptionExpired   = "expired"
	SubscriptionCancelled = "cancelled"
)

// Subscription uno-a-uno con un tenant. El estado expirado se calcula de
// forma perezosa al leer (no hay job de fondo que lo marque).
type Subscription struct {
	ID          string
	TenantID    string
	Status      string // trial, active, expired, cancelled
	PlanType    string // vacío durante el trial
	TrialEndsAt *time.Time
	StartsAt    *time.Time
	EndsAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ComputedStatus devuelve el estado real según "now", sin mutar nada.
// trial vencido -> expired; active con EndsAt pasado -> expired.
func (s *Subscription) ComputedStatus(now time.Time) string {
	switch s.Status {
	case SubscriptionTrial:
		if s.TrialEndsAt != nil && now.After(*s.TrialEndsAt) {
			return SubscriptionExpired
		}
	case SubscriptionActive:
		if s.EndsAt != nil && now.After(*s.EndsAt) {
			return SubscriptionExpired
		}
	}
	return s.Status
}

// AllowsAccess indica si el tenant puede operar con este estado.
func (s *Subscription) AllowsAccess(now time.Time) bool {
	st := s.ComputedStatus(now)
	return st == SubscriptionTrial || st == SubscriptionActive
}
