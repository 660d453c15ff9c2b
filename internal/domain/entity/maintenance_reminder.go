package entity

import (
	"math"
	"time"
)

// Estados de un recordatorio de mantenimiento.
const (
	ReminderPending = "PENDING"
	ReminderSent    = "SENT"
)

// Ventanas de escalamiento, de menor a mayor urgencia.
const (
	WindowSevenDays = "SEVEN_DAYS"
	WindowThreeDays = "THREE_DAYS"
	WindowOneDay    = "ONE_DAY"
	WindowOverdue   = "OVERDUE"
)

// windowRank urgencia relativa de cada ventana; "" (sin notificar) es 0.
var windowRank = map[string]int{
	WindowSevenDays: 1,
	WindowThreeDays: 2,
	WindowOneDay:    3,
	WindowOverdue:   4,
}

// WindowRank devuelve la urgencia de una ventana (0 si no hay ventana).
func WindowRank(w string) int { return windowRank[w] }

// WindowForDue calcula la ventana aplicable según los días hasta la fecha
// de vencimiento. Devuelve "" si faltan más de 7 días.
//
//	días <= 0       -> OVERDUE
//	0 < días <= 1   -> ONE_DAY
//	1 < días <= 3   -> THREE_DAYS
//	3 < días <= 7   -> SEVEN_DAYS
func WindowForDue(dueAt, now time.Time) string {
	days := dueAt.Sub(now).Hours() / 24
	switch {
	case days <= 0:
		return WindowOverdue
	case days <= 1:
		return WindowOneDay
	case days <= 3:
		return WindowThreeDays
	case days <= 7:
		return WindowSevenDays
	default:
		return ""
	}
}

// DaysUntil días (redondeados hacia arriba) hasta due.
func DaysUntil(dueAt, now time.Time) int {
	return int(math.Ceil(dueAt.Sub(now).Hours() / 24))
}

// MaintenanceReminder recordatorio uno-a-uno con un trabajo entregado.
// Invariante: la escalación es monotónica — una vez notificada una ventana,
// el barrido nunca vuelve a disparar una menos urgente para el mismo
// recordatorio.
type MaintenanceReminder struct {
	ID             string
	TenantID       string
	JobID          string
	CustomerID     string
	DueAt          time.Time
	Status         string // PENDING, SENT
	LastWindow     string // "", SEVEN_DAYS, THREE_DAYS, ONE_DAY, OVERDUE
	LastNotifiedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
