package billing_test

import (
	"context"

	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria para el ledger de deuda. Entidades por valor (los repos
// devuelven copias, Update escribe de vuelta) y transacciones con snapshot
// para que el rollback sea observable en los tests.
// ──────────────────────────────────────────────────────────────────────────────

type memLedger struct {
	customers    map[string]entity.Customer
	installments map[string]entity.Installment
	invoices     map[string]entity.Invoice
	invLines     []entity.InvoiceLine
	payments     []entity.DebtPayment
}

func newMemLedger() *memLedger {
	return &memLedger{
		customers:    map[string]entity.Customer{},
		installments: map[string]entity.Installment{},
		invoices:     map[string]entity.Invoice{},
	}
}

func (l *memLedger) clone() *memLedger {
	out := &memLedger{
		customers:    make(map[string]entity.Customer, len(l.customers)),
		installments: make(map[string]entity.Installment, len(l.installments)),
		invoices:     make(map[string]entity.Invoice, len(l.invoices)),
		invLines:     append([]entity.InvoiceLine(nil), l.invLines...),
		payments:     append([]entity.DebtPayment(nil), l.payments...),
	}
	for k, v := range l.customers {
		out.customers[k] = v
	}
	for k, v := range l.installments {
		out.installments[k] = v
	}
	for k, v := range l.invoices {
		out.invoices[k] = v
	}
	return out
}

// sortedInstallments cuotas de un cliente ordenadas por Seq.
func (l *memLedger) sortedInstallments(customerID string) []entity.Installment {
	var out []entity.Installment
	for _, i := range l.installments {
		if i.CustomerID == customerID {
			out = append(out, i)
		}
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Seq < out[i].Seq {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}

type memBillingRunner struct{ ledger *memLedger }

func (r *memBillingRunner) RunBilling(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	installmentRepo repository.InstallmentRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.DebtPaymentRepository,
) error) error {
	snap := r.ledger.clone()
	err := fn(
		&ledgerCustomerRepo{ledger: r.ledger},
		&ledgerInstallmentRepo{ledger: r.ledger},
		&ledgerInvoiceRepo{ledger: r.ledger},
		&ledgerPaymentRepo{ledger: r.ledger},
	)
	if err != nil {
		*r.ledger = *snap
	}
	return err
}

type ledgerCustomerRepo struct{ ledger *memLedger }

func (r *ledgerCustomerRepo) Create(c *entity.Customer) error {
	r.ledger.customers[c.ID] = *c
	return nil
}

func (r *ledgerCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	if c, ok := r.ledger.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *ledgerCustomerRepo) GetForUpdate(id string) (*entity.Customer, error) { return r.GetByID(id) }

func (r *ledgerCustomerRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.ledger.customers {
		if c.TenantID == tenantID {
			c := c
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *ledgerCustomerRepo) Update(c *entity.Customer) error {
	r.ledger.customers[c.ID] = *c
	return nil
}

func (r *ledgerCustomerRepo) Delete(id string) error {
	delete(r.ledger.customers, id)
	return nil
}

type ledgerInstallmentRepo struct{ ledger *memLedger }

func (r *ledgerInstallmentRepo) Create(i *entity.Installment) error {
	r.ledger.installments[i.ID] = *i
	return nil
}

func (r *ledgerInstallmentRepo) GetByID(id string) (*entity.Installment, error) {
	if i, ok := r.ledger.installments[id]; ok {
		return &i, nil
	}
	return nil, nil
}

func (r *ledgerInstallmentRepo) GetForUpdate(id string) (*entity.Installment, error) {
	return r.GetByID(id)
}

func (r *ledgerInstallmentRepo) ListByCustomer(customerID string) ([]*entity.Installment, error) {
	var out []*entity.Installment
	for _, i := range r.ledger.sortedInstallments(customerID) {
		i := i
		out = append(out, &i)
	}
	return out, nil
}

func (r *ledgerInstallmentRepo) Update(i *entity.Installment) error {
	r.ledger.installments[i.ID] = *i
	return nil
}

func (r *ledgerInstallmentRepo) DeleteUnpaidByCustomer(customerID string) error {
	for id, i := range r.ledger.installments {
		if i.CustomerID == customerID && !i.Paid {
			delete(r.ledger.installments, id)
		}
	}
	return nil
}

type ledgerInvoiceRepo struct{ ledger *memLedger }

func (r *ledgerInvoiceRepo) Create(inv *entity.Invoice) error {
	r.ledger.invoices[inv.ID] = *inv
	return nil
}

func (r *ledgerInvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	r.ledger.invLines = append(r.ledger.invLines, *line)
	return nil
}

func (r *ledgerInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	if inv, ok := r.ledger.invoices[id]; ok {
		return &inv, nil
	}
	return nil, nil
}

func (r *ledgerInvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error) {
	var out []*entity.InvoiceLine
	for i := range r.ledger.invLines {
		if r.ledger.invLines[i].InvoiceID == invoiceID {
			l := r.ledger.invLines[i]
			out = append(out, &l)
		}
	}
	return out, nil
}

func (r *ledgerInvoiceRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.ledger.invoices {
		if inv.TenantID == tenantID {
			inv := inv
			out = append(out, &inv)
		}
	}
	return out, nil
}

type ledgerPaymentRepo struct{ ledger *memLedger }

func (r *ledgerPaymentRepo) Create(p *entity.DebtPayment) error {
	r.ledger.payments = append(r.ledger.payments, *p)
	return nil
}

func (r *ledgerPaymentRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.DebtPayment, error) {
	var out []*entity.DebtPayment
	for i := range r.ledger.payments {
		if r.ledger.payments[i].CustomerID == customerID {
			p := r.ledger.payments[i]
			out = append(out, &p)
		}
	}
	return out, nil
}
