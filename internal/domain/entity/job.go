package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un trabajo.
const (
	JobStatusPending    = "PENDING"
	JobStatusInProgress = "IN_PROGRESS"
	JobStatusDelivered  = "DELIVERED"
	JobStatusArchived   = "ARCHIVED"
)

// Estados de pago de un trabajo.
const (
	JobPaymentPending = "PENDING"
	JobPaymentPartial = "PARTIAL"
	JobPaymentPaid    = "PAID"
)

// jobTransitions tabla de adyacencia del estado de un trabajo: solo hacia
// adelante, sin saltos (PENDING→IN_PROGRESS→DELIVERED→ARCHIVED).
var jobTransitions = map[string]string{
	JobStatusPending:    JobStatusInProgress,
	JobStatusInProgress: JobStatusDelivered,
	JobStatusDelivered:  JobStatusArchived,
}

// CanTransitionJobStatus indica si el cambio from→to está permitido.
func CanTransitionJobStatus(from, to string) bool {
	return jobTransitions[from] == to
}

// Job representa un trabajo de servicio (pertenece a un tenant y un cliente).
type Job struct {
	ID                   string
	TenantID             string
	CustomerID           string
	Title                string
	Description          string
	Status               string
	ScheduledAt          *time.Time
	StartedAt            *time.Time
	DeliveredAt          *time.Time
	ArchivedAt           *time.Time
	Price                decimal.Decimal
	CollectedAmount      decimal.Decimal
	PaymentStatus        string
	LocationLat          *decimal.Decimal
	LocationLng          *decimal.Decimal
	LocationAddress      string
	MaintenanceDueAt     *time.Time
	MaintenanceIntervalM int // meses; 0 = sin intervalo configurado
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// JobPersonnel asignación trabajo↔trabajador. StartedAt/DeliveredAt son los
// tiempos personales del trabajador, distintos de los del trabajo.
type JobPersonnel struct {
	ID          string
	JobID       string
	PersonnelID string
	StartedAt   *time.Time
	DeliveredAt *time.Time
	CreatedAt   time.Time
}

// JobStatusHistory entrada inmutable del historial de estados.
type JobStatusHistory struct {
	ID        string
	JobID     string
	Status    string
	Note      string
	ActorKind string // admin | personnel
	ActorID   string
	CreatedAt time.Time
}

// JobNote nota de texto libre sobre un trabajo.
type JobNote struct {
	ID        string
	JobID     string
	Body      string
	ActorKind string
	ActorID   string
	CreatedAt time.Time
}

// JobMaterial línea de material usado en un trabajo. UnitPrice se captura
// al momento del uso; no se recalcula después.
type JobMaterial struct {
	ID        string
	JobID     string
	ItemID    string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time
}
