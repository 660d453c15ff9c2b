package jobs_test

import (
	"context"
	"sync"
	"time"

	"github.com/tu-usuario/aquaserv-pro/internal/application/notify"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria para los puertos de persistencia.
//
// memEnv guarda entidades por valor: los repos devuelven copias y Update
// escribe la copia de vuelta, igual que una fila de BD. memTxRunner clona el
// estado antes de ejecutar la función y lo restaura si falla, de modo que
// los tests pueden verificar el rollback de verdad (todo-o-nada).
// ──────────────────────────────────────────────────────────────────────────────

type memEnv struct {
	jobs        map[string]entity.Job
	assignments map[string]entity.JobPersonnel
	history     []entity.JobStatusHistory
	notes       []entity.JobNote
	materials   map[string]entity.JobMaterial
	customers   map[string]entity.Customer
	personnel   map[string]entity.Personnel
	items       map[string]entity.InventoryItem
	txns        []entity.InventoryTransaction
	reminders   map[string]entity.MaintenanceReminder // por JobID
	invoices    map[string]entity.Invoice
	invLines    []entity.InvoiceLine
}

func newMemEnv() *memEnv {
	return &memEnv{
		jobs:        map[string]entity.Job{},
		assignments: map[string]entity.JobPersonnel{},
		materials:   map[string]entity.JobMaterial{},
		customers:   map[string]entity.Customer{},
		personnel:   map[string]entity.Personnel{},
		items:       map[string]entity.InventoryItem{},
		reminders:   map[string]entity.MaintenanceReminder{},
		invoices:    map[string]entity.Invoice{},
	}
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (e *memEnv) clone() *memEnv {
	return &memEnv{
		jobs:        cloneMap(e.jobs),
		assignments: cloneMap(e.assignments),
		history:     append([]entity.JobStatusHistory(nil), e.history...),
		notes:       append([]entity.JobNote(nil), e.notes...),
		materials:   cloneMap(e.materials),
		customers:   cloneMap(e.customers),
		personnel:   cloneMap(e.personnel),
		items:       cloneMap(e.items),
		txns:        append([]entity.InventoryTransaction(nil), e.txns...),
		reminders:   cloneMap(e.reminders),
		invoices:    cloneMap(e.invoices),
		invLines:    append([]entity.InvoiceLine(nil), e.invLines...),
	}
}

// memTxRunner satisface jobs.TxRunner e inventory.TxRunner sobre el mismo
// estado. Si fn falla, restaura el snapshot (simula el rollback).
type memTxRunner struct{ env *memEnv }

func (r *memTxRunner) RunJob(ctx context.Context, fn func(
	jobRepo repository.JobRepository,
	customerRepo repository.CustomerRepository,
	personnelRepo repository.PersonnelRepository,
	itemRepo repository.InventoryItemRepository,
	txnRepo repository.InventoryTransactionRepository,
	reminderRepo repository.MaintenanceReminderRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	snap := r.env.clone()
	err := fn(
		&fakeJobRepo{env: r.env},
		&fakeCustomerRepo{env: r.env},
		&fakePersonnelRepo{env: r.env},
		&fakeItemRepo{env: r.env},
		&fakeTxnRepo{env: r.env},
		&fakeReminderRepo{env: r.env},
		&fakeInvoiceRepo{env: r.env},
	)
	if err != nil {
		*r.env = *snap
	}
	return err
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	txnRepo repository.InventoryTransactionRepository,
) error) error {
	snap := r.env.clone()
	err := fn(&fakeItemRepo{env: r.env}, &fakeTxnRepo{env: r.env})
	if err != nil {
		*r.env = *snap
	}
	return err
}

// recorderDispatcher acumula las notificaciones despachadas.
type recorderDispatcher struct {
	mu   sync.Mutex
	sent []notify.Notification
	err  error // si no es nil, Dispatch falla con este error
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

// ── Repositorios fake ─────────────────────────────────────────────────────────

type fakeJobRepo struct{ env *memEnv }

func (r *fakeJobRepo) Create(job *entity.Job) error {
	r.env.jobs[job.ID] = *job
	return nil
}

func (r *fakeJobRepo) GetByID(id string) (*entity.Job, error) {
	if j, ok := r.env.jobs[id]; ok {
		return &j, nil
	}
	return nil, nil
}

func (r *fakeJobRepo) GetForUpdate(id string) (*entity.Job, error) { return r.GetByID(id) }

func (r *fakeJobRepo) ListByTenant(tenantID string, status string, limit, offset int) ([]*entity.Job, error) {
	var out []*entity.Job
	for _, j := range r.env.jobs {
		if j.TenantID != tenantID || (status != "" && j.Status != status) {
			continue
		}
		j := j
		out = append(out, &j)
	}
	return out, nil
}

func (r *fakeJobRepo) ListByPersonnel(personnelID string, limit, offset int) ([]*entity.Job, error) {
	var out []*entity.Job
	for _, a := range r.env.assignments {
		if a.PersonnelID != personnelID {
			continue
		}
		if j, ok := r.env.jobs[a.JobID]; ok {
			j := j
			out = append(out, &j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) Update(job *entity.Job) error {
	r.env.jobs[job.ID] = *job
	return nil
}

func (r *fakeJobRepo) CreateAssignment(a *entity.JobPersonnel) error {
	r.env.assignments[a.ID] = *a
	return nil
}

func (r *fakeJobRepo) GetAssignment(jobID, personnelID string) (*entity.JobPersonnel, error) {
	for _, a := range r.env.assignments {
		if a.JobID == jobID && a.PersonnelID == personnelID {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (r *fakeJobRepo) ListAssignments(jobID string) ([]*entity.JobPersonnel, error) {
	var out []*entity.JobPersonnel
	for _, a := range r.env.assignments {
		if a.JobID == jobID {
			a := a
			out = append(out, &a)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) UpdateAssignment(a *entity.JobPersonnel) error {
	r.env.assignments[a.ID] = *a
	return nil
}

func (r *fakeJobRepo) CreateHistory(h *entity.JobStatusHistory) error {
	r.env.history = append(r.env.history, *h)
	return nil
}

func (r *fakeJobRepo) ListHistory(jobID string) ([]*entity.JobStatusHistory, error) {
	var out []*entity.JobStatusHistory
	for i := range r.env.history {
		if r.env.history[i].JobID == jobID {
			h := r.env.history[i]
			out = append(out, &h)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) CreateNote(n *entity.JobNote) error {
	r.env.notes = append(r.env.notes, *n)
	return nil
}

func (r *fakeJobRepo) ListNotes(jobID string) ([]*entity.JobNote, error) {
	var out []*entity.JobNote
	for i := range r.env.notes {
		if r.env.notes[i].JobID == jobID {
			n := r.env.notes[i]
			out = append(out, &n)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) CreateMaterial(m *entity.JobMaterial) error {
	r.env.materials[m.ID] = *m
	return nil
}

func (r *fakeJobRepo) ListMaterials(jobID string) ([]*entity.JobMaterial, error) {
	var out []*entity.JobMaterial
	for _, m := range r.env.materials {
		if m.JobID == jobID {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) DeleteMaterials(jobID string) error {
	for id, m := range r.env.materials {
		if m.JobID == jobID {
			delete(r.env.materials, id)
		}
	}
	return nil
}

type fakeCustomerRepo struct{ env *memEnv }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.env.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	if c, ok := r.env.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetForUpdate(id string) (*entity.Customer, error) { return r.GetByID(id) }

func (r *fakeCustomerRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.env.customers {
		if c.TenantID == tenantID {
			c := c
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	r.env.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) Delete(id string) error {
	delete(r.env.customers, id)
	return nil
}

type fakePersonnelRepo struct{ env *memEnv }

func (r *fakePersonnelRepo) Create(p *entity.Personnel) error {
	r.env.personnel[p.ID] = *p
	return nil
}

func (r *fakePersonnelRepo) GetByID(id string) (*entity.Personnel, error) {
	if p, ok := r.env.personnel[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *fakePersonnelRepo) GetByEmail(email string) (*entity.Personnel, error) {
	for _, p := range r.env.personnel {
		if p.Email == email {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakePersonnelRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Personnel, error) {
	var out []*entity.Personnel
	for _, p := range r.env.personnel {
		if p.TenantID == tenantID {
			p := p
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *fakePersonnelRepo) Update(p *entity.Personnel) error {
	r.env.personnel[p.ID] = *p
	return nil
}

func (r *fakePersonnelRepo) Delete(id string) error {
	delete(r.env.personnel, id)
	return nil
}

type fakeItemRepo struct{ env *memEnv }

func (r *fakeItemRepo) Create(item *entity.InventoryItem) error {
	r.env.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	if i, ok := r.env.items[id]; ok {
		return &i, nil
	}
	return nil, nil
}

func (r *fakeItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) { return r.GetByID(id) }

func (r *fakeItemRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, i := range r.env.items {
		if i.TenantID == tenantID {
			i := i
			out = append(out, &i)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Update(item *entity.InventoryItem) error {
	r.env.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) Delete(id string) error {
	delete(r.env.items, id)
	return nil
}

type fakeTxnRepo struct{ env *memEnv }

func (r *fakeTxnRepo) Create(tx *entity.InventoryTransaction) error {
	r.env.txns = append(r.env.txns, *tx)
	return nil
}

func (r *fakeTxnRepo) ListByItem(itemID string, limit, offset int) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for i := range r.env.txns {
		if r.env.txns[i].ItemID == itemID {
			tx := r.env.txns[i]
			out = append(out, &tx)
		}
	}
	return out, nil
}

type fakeReminderRepo struct{ env *memEnv }

func (r *fakeReminderRepo) Upsert(rem *entity.MaintenanceReminder) error {
	r.env.reminders[rem.JobID] = *rem
	return nil
}

func (r *fakeReminderRepo) GetByJobID(jobID string) (*entity.MaintenanceReminder, error) {
	if rem, ok := r.env.reminders[jobID]; ok {
		return &rem, nil
	}
	return nil, nil
}

func (r *fakeReminderRepo) DeleteByJobID(jobID string) error {
	delete(r.env.reminders, jobID)
	return nil
}

func (r *fakeReminderRepo) Update(rem *entity.MaintenanceReminder) error {
	r.env.reminders[rem.JobID] = *rem
	return nil
}

func (r *fakeReminderRepo) ListPending(horizon time.Time) ([]*entity.MaintenanceReminder, error) {
	var out []*entity.MaintenanceReminder
	for _, rem := range r.env.reminders {
		if rem.Status == entity.ReminderPending && !rem.DueAt.After(horizon) {
			rem := rem
			out = append(out, &rem)
		}
	}
	return out, nil
}

func (r *fakeReminderRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.MaintenanceReminder, error) {
	var out []*entity.MaintenanceReminder
	for _, rem := range r.env.reminders {
		if rem.TenantID == tenantID {
			rem := rem
			out = append(out, &rem)
		}
	}
	return out, nil
}

type fakeInvoiceRepo struct{ env *memEnv }

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	r.env.invoices[inv.ID] = *inv
	return nil
}

func (r *fakeInvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	r.env.invLines = append(r.env.invLines, *line)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	if inv, ok := r.env.invoices[id]; ok {
		return &inv, nil
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error) {
	var out []*entity.InvoiceLine
	for i := range r.env.invLines {
		if r.env.invLines[i].InvoiceID == invoiceID {
			l := r.env.invLines[i]
			out = append(out, &l)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.env.invoices {
		if inv.TenantID == tenantID {
			inv := inv
			out = append(out, &inv)
		}
	}
	return out, nil
}
