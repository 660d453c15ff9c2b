package dto

import "time"

// ActivateSubscriptionRequest activación explícita con un tipo de plan.
type ActivateSubscriptionRequest struct {
	PlanType string `json:"plan_type"`
	Months   int    `json:"months"`
}

// RenewSubscriptionRequest renovación; extiende desde max(fin actual, ahora).
type RenewSubscriptionRequest struct {
	Months int `json:"months"`
}

// SubscriptionResponse estado de la suscripción del tenant.
type SubscriptionResponse struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	Status      string     `json:"status"`
	PlanType    string     `json:"plan_type,omitempty"`
	TrialEndsAt *time.Time `json:"trial_ends_at,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

// ReminderResponse recordatorio de mantenimiento visible para el tenant.
type ReminderResponse struct {
	ID             string     `json:"id"`
	JobID          string     `json:"job_id"`
	CustomerID     string     `json:"customer_id"`
	DueAt          time.Time  `json:"due_at"`
	Status         string     `json:"status"`
	LastWindow     string     `json:"last_window,omitempty"`
	LastNotifiedAt *time.Time `json:"last_notified_at,omitempty"`
}
