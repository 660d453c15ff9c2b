package maintenance

import (
	"context"
	"sync"
	"time"

	"github.com/tu-usuario/aquaserv-pro/pkg/logger"
	"github.com/tu-usuario/aquaserv-pro/pkg/metrics"
)

// Runner ejecuta el barrido en intervalos fijos hasta que el contexto se
// cancela. Si una pasada sigue corriendo cuando vence el tick, la siguiente
// se salta: nunca hay dos pasadas en paralelo.
type Runner struct {
	sweeper  *Sweeper
	interval time.Duration
	met      *metrics.Metrics
	log      *logger.Logger
	mu       sync.Mutex
}

func NewRunner(sweeper *Sweeper, interval time.Duration, met *metrics.Metrics, log *logger.Logger) *Runner {
	return &Runner{sweeper: sweeper, interval: interval, met: met, log: log}
}

// Run bloquea hasta que ctx se cancele. Hace una pasada inmediata al
// arrancar y luego una por tick.
func (r *Runner) Run(ctx context.Context) {
	r.runOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("barrido de mantenimiento detenido")
			return
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *Runner) runOnce(ctx context.Context) {
	if !r.mu.TryLock() {
		r.log.Warn().Msg("barrido anterior sigue en curso, se salta el tick")
		return
	}
	defer r.mu.Unlock()

	start := time.Now()
	notified, err := r.sweeper.Sweep(ctx, start)
	if err != nil {
		r.log.Error().Err(err).Msg("fallo la pasada del barrido de mantenimiento")
		return
	}
	r.met.SweepRuns.Inc()
	r.log.Info().
		Int("notified", notified).
		Dur("elapsed", time.Since(start)).
		Msg("pasada del barrido de mantenimiento completada")
}
