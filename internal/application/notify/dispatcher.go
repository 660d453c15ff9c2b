package notify

import "context"

// Eventos emitidos por el núcleo.
const (
	EventJobDelivered      = "job.delivered"
	EventMaintenanceWindow = "maintenance.window"
	EventReminderCleared   = "maintenance.reminder_cleared"
)

// Notification mensaje saliente. TenantID es obligatorio: el despacho
// siempre va dirigido al admin dueño del dato, nunca broadcast.
type Notification struct {
	Event    string
	TenantID string
	UserID   string // opcional: trabajador específico
	Title    string
	Body     string
	Data     map[string]string
}

// Dispatcher puerto de despacho fire-and-forget. El núcleo lo invoca
// después del commit; un error de despacho se registra y se descarta,
// nunca causa rollback ni se propaga al caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, n Notification) error
}
