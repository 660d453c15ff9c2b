package maintenance_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/aquaserv-pro/internal/application/maintenance"
	"github.com/tu-usuario/aquaserv-pro/internal/application/notify"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/pkg/logger"
)

const testTenantID = "tenant-1"

// memReminderRepo doble en memoria del repositorio de recordatorios,
// indexado por JobID (uno por trabajo).
type memReminderRepo struct {
	byJob map[string]entity.MaintenanceReminder
}

func newMemReminderRepo() *memReminderRepo {
	return &memReminderRepo{byJob: map[string]entity.MaintenanceReminder{}}
}

func (r *memReminderRepo) Upsert(rem *entity.MaintenanceReminder) error {
	r.byJob[rem.JobID] = *rem
	return nil
}

func (r *memReminderRepo) GetByJobID(jobID string) (*entity.MaintenanceReminder, error) {
	if rem, ok := r.byJob[jobID]; ok {
		return &rem, nil
	}
	return nil, nil
}

func (r *memReminderRepo) DeleteByJobID(jobID string) error {
	delete(r.byJob, jobID)
	return nil
}

func (r *memReminderRepo) Update(rem *entity.MaintenanceReminder) error {
	r.byJob[rem.JobID] = *rem
	return nil
}

func (r *memReminderRepo) ListPending(horizon time.Time) ([]*entity.MaintenanceReminder, error) {
	var out []*entity.MaintenanceReminder
	for _, rem := range r.byJob {
		if rem.Status == entity.ReminderPending && !rem.DueAt.After(horizon) {
			rem := rem
			out = append(out, &rem)
		}
	}
	return out, nil
}

func (r *memReminderRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.MaintenanceReminder, error) {
	var out []*entity.MaintenanceReminder
	for _, rem := range r.byJob {
		if rem.TenantID == tenantID {
			rem := rem
			out = append(out, &rem)
		}
	}
	return out, nil
}

type recorderDispatcher struct {
	mu   sync.Mutex
	sent []notify.Notification
	err  error
}

func (d *recorderDispatcher) Dispatch(_ context.Context, n notify.Notification) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, n)
	return nil
}

func newSweepHarness() (*memReminderRepo, *recorderDispatcher, *maintenance.Sweeper) {
	repo := newMemReminderRepo()
	dispatcher := &recorderDispatcher{}
	return repo, dispatcher, maintenance.NewSweeper(repo, dispatcher, logger.Nop())
}

func seedReminder(repo *memReminderRepo, jobID string, dueAt time.Time, lastWindow string) {
	repo.byJob[jobID] = entity.MaintenanceReminder{
		ID: "rem-" + jobID, TenantID: testTenantID, JobID: jobID,
		CustomerID: "cust-1", DueAt: dueAt,
		Status: entity.ReminderPending, LastWindow: lastWindow,
	}
}

// Un vencimiento en 2 días cae en la ventana THREE_DAYS; repetir la pasada
// con el mismo reloj no vuelve a notificar (la ventana quedó persistida).
func TestSweep_NotificaUnaVezPorVentana(t *testing.T) {
	repo, dispatcher, sweeper := newSweepHarness()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	seedReminder(repo, "job-1", now.AddDate(0, 0, 2), "")

	n, err := sweeper.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.Len(t, dispatcher.sent, 1)
	assert.Equal(t, notify.EventMaintenanceWindow, dispatcher.sent[0].Event)
	assert.Equal(t, entity.WindowThreeDays, dispatcher.sent[0].Data["window"])
	assert.Equal(t, testTenantID, dispatcher.sent[0].TenantID)

	rem := repo.byJob["job-1"]
	assert.Equal(t, entity.WindowThreeDays, rem.LastWindow)
	require.NotNil(t, rem.LastNotifiedAt)
	assert.Equal(t, entity.ReminderPending, rem.Status, "antes de vencer, sigue PENDING")

	// Segunda pasada, mismo reloj: idempotente
	n, err = sweeper.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, dispatcher.sent, 1)
}

// La escalación es monotónica: conforme el reloj avanza, cada ventana más
// urgente notifica exactamente una vez.
func TestSweep_EscalaVentanasConElReloj(t *testing.T) {
	repo, dispatcher, sweeper := newSweepHarness()
	due := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	seedReminder(repo, "job-1", due, "")

	clocks := []time.Time{
		due.AddDate(0, 0, -6), // SEVEN_DAYS
		due.AddDate(0, 0, -2), // THREE_DAYS
		due.Add(-12 * time.Hour),
		due.Add(2 * time.Hour), // OVERDUE
	}
	for _, now := range clocks {
		_, err := sweeper.Sweep(context.Background(), now)
		require.NoError(t, err)
	}

	require.Len(t, dispatcher.sent, 4)
	assert.Equal(t, entity.WindowSevenDays, dispatcher.sent[0].Data["window"])
	assert.Equal(t, entity.WindowThreeDays, dispatcher.sent[1].Data["window"])
	assert.Equal(t, entity.WindowOneDay, dispatcher.sent[2].Data["window"])
	assert.Equal(t, entity.WindowOverdue, dispatcher.sent[3].Data["window"])
}

// Una ventana ya notificada nunca retrocede, aunque el recordatorio vuelva
// a aparecer como candidato.
func TestSweep_NuncaRetrocedeDeVentana(t *testing.T) {
	repo, dispatcher, sweeper := newSweepHarness()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	// Ya se notificó ONE_DAY; hoy caería en THREE_DAYS (menos urgente)
	seedReminder(repo, "job-1", now.AddDate(0, 0, 2), entity.WindowOneDay)

	n, err := sweeper.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, dispatcher.sent)
}

// Al vencer (OVERDUE) el recordatorio pasa a SENT y sale del conjunto de
// candidatos de las pasadas siguientes.
func TestSweep_VencidoPasaASent(t *testing.T) {
	repo, dispatcher, sweeper := newSweepHarness()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	seedReminder(repo, "job-1", now.AddDate(0, 0, -1), "")

	n, err := sweeper.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, entity.ReminderSent, repo.byJob["job-1"].Status)

	n, err = sweeper.Sweep(context.Background(), now.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Zero(t, n, "un recordatorio SENT no vuelve a evaluarse")
	assert.Len(t, dispatcher.sent, 1)
}

// Fuera del horizonte de 7 días no hay candidatos.
func TestSweep_FueraDeHorizonteNoNotifica(t *testing.T) {
	repo, dispatcher, sweeper := newSweepHarness()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	seedReminder(repo, "job-1", now.AddDate(0, 0, 20), "")

	n, err := sweeper.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, dispatcher.sent)
}

// Un fallo del despacho no pierde la ventana: queda persistida y la pasada
// siguiente no reintenta la misma.
func TestSweep_FalloDeDespachoNoRepite(t *testing.T) {
	repo, dispatcher, sweeper := newSweepHarness()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	seedReminder(repo, "job-1", now.AddDate(0, 0, 2), "")
	dispatcher.err = errors.New("push provider caído")

	n, err := sweeper.Sweep(context.Background(), now)
	require.NoError(t, err, "el despacho es fire-and-forget")
	assert.Equal(t, 1, n)
	assert.Equal(t, entity.WindowThreeDays, repo.byJob["job-1"].LastWindow)

	dispatcher.err = nil
	n, err = sweeper.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, n, "la ventana ya quedó registrada pese al fallo")
}
