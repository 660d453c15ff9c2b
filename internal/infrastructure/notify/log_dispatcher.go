package notify

import (
	"context"

	appnotify "github.com/tu-usuario/aquaserv-pro/internal/application/notify"
	"github.com/tu-usuario/aquaserv-pro/pkg/logger"
	"github.com/tu-usuario/aquaserv-pro/pkg/metrics"
)

var _ appnotify.Dispatcher = (*LogDispatcher)(nil)

// LogDispatcher implementación del puerto de despacho que escribe la
// notificación al log estructurado. Es el adaptador por defecto; un canal
// real (push, SMS, email) se conecta implementando el mismo puerto.
type LogDispatcher struct {
	log *logger.Logger
	met *metrics.Metrics
}

func NewLogDispatcher(log *logger.Logger, met *metrics.Metrics) *LogDispatcher {
	return &LogDispatcher{log: log, met: met}
}

// Dispatch registra la notificación y cuenta el despacho.
func (d *LogDispatcher) Dispatch(ctx context.Context, n appnotify.Notification) error {
	ev := d.log.Info().
		Str("event", n.Event).
		Str("tenant_id", n.TenantID).
		Str("title", n.Title).
		Str("body", n.Body)
	if n.UserID != "" {
		ev = ev.Str("user_id", n.UserID)
	}
	for k, v := range n.Data {
		ev = ev.Str("data_"+k, v)
	}
	ev.Msg("notificación despachada")
	d.met.Notifications.Inc()
	return nil
}
