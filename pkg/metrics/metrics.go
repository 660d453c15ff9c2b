package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contadores Prometheus del núcleo. Se registran en el registry
// por defecto y se exponen en /metrics.
type Metrics struct {
	SweepRuns     prometheus.Counter
	Notifications prometheus.Counter
}

// New crea y registra los contadores con el prefijo de la aplicación.
func New(namespace string) *Metrics {
	return &Metrics{
		SweepRuns: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "maintenance_sweep_runs_total",
			Help:      "Pasadas completadas del barrido de recordatorios.",
		}),
		Notifications: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_dispatched_total",
			Help:      "Notificaciones despachadas (fire-and-forget).",
		}),
	}
}
