package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/aquaserv-pro/internal/application/billing"
	"github.com/tu-usuario/aquaserv-pro/internal/application/dto"
	"github.com/tu-usuario/aquaserv-pro/internal/domain"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
)

const (
	testTenantID  = "tenant-1"
	otherTenantID = "tenant-2"
	testAdminID   = "admin-1"
)

func newDebtHarness() (*memLedger, *billing.DebtUseCase) {
	ledger := newMemLedger()
	uc := billing.NewDebtUseCase(
		&memBillingRunner{ledger: ledger},
		&ledgerCustomerRepo{ledger: ledger},
		&ledgerInstallmentRepo{ledger: ledger},
		&ledgerPaymentRepo{ledger: ledger},
	)
	return ledger, uc
}

func seedDebtor(ledger *memLedger, id string, debt, paid float64) {
	total := decimal.NewFromFloat(debt)
	p := decimal.NewFromFloat(paid)
	ledger.customers[id] = entity.Customer{
		ID: id, TenantID: testTenantID, Name: "Cliente Deudor",
		HasDebt:       debt > 0,
		DebtAmount:    total,
		PaidDebt:      p,
		RemainingDebt: total.Sub(p),
	}
}

// checkDebtInvariant verifica que deuda total = pagado + restante.
func checkDebtInvariant(t *testing.T, c entity.Customer) {
	t.Helper()
	if !c.HasDebt {
		assert.True(t, c.DebtAmount.IsZero() && c.PaidDebt.IsZero() && c.RemainingDebt.IsZero(),
			"sin deuda, todos los montos quedan en cero")
		return
	}
	assert.True(t, c.DebtAmount.Equal(c.PaidDebt.Add(c.RemainingDebt)),
		"debtAmount (%s) debe ser pagado (%s) + restante (%s)", c.DebtAmount, c.PaidDebt, c.RemainingDebt)
}

// ── RecordDebt ────────────────────────────────────────────────────────────────

// Registrar deuda sobre deuda existente suma, nunca reemplaza.
func TestRecordDebt_EsAditiva(t *testing.T) {
	ledger, uc := newDebtHarness()
	seedDebtor(ledger, "cust-1", 300, 100)

	resp, err := uc.RecordDebt(context.Background(), testTenantID, "cust-1", dto.RecordDebtRequest{
		Amount: decimal.NewFromFloat(150.555), // se redondea a 2 decimales
	})
	require.NoError(t, err)

	assert.True(t, resp.DebtAmount.Equal(decimal.NewFromFloat(450.56)), "total: 300 + 150.56")
	assert.True(t, resp.RemainingDebt.Equal(decimal.NewFromFloat(350.56)), "restante: 200 + 150.56")
	assert.True(t, resp.PaidDebt.Equal(decimal.NewFromInt(100)), "lo pagado no se toca")
	checkDebtInvariant(t, ledger.customers["cust-1"])
}

// Un plan de cuotas amortiza el restante en cuotas mensuales y deja la
// próxima fecha exactamente a un mes.
func TestRecordDebt_PlanDeCuotas(t *testing.T) {
	ledger, uc := newDebtHarness()
	seedDebtor(ledger, "cust-1", 0, 0)

	count := 6
	resp, err := uc.RecordDebt(context.Background(), testTenantID, "cust-1", dto.RecordDebtRequest{
		Amount:           decimal.NewFromInt(1200),
		InstallmentCount: &count,
	})
	require.NoError(t, err)

	assert.True(t, resp.HasInstallment)
	assert.Equal(t, 6, resp.InstallmentCount)
	require.NotNil(t, resp.NextDebtDate)
	assert.WithinDuration(t, time.Now().AddDate(0, 1, 0), *resp.NextDebtDate, 5*time.Second)

	insts := ledger.sortedInstallments("cust-1")
	require.Len(t, insts, 6)
	sum := decimal.Zero
	for i, inst := range insts {
		assert.Equal(t, i+1, inst.Seq)
		assert.True(t, inst.Amount.Equal(decimal.NewFromInt(200)), "cuota %d: %s", i+1, inst.Amount)
		assert.WithinDuration(t, time.Now().AddDate(0, i+1, 0), inst.DueAt, 5*time.Second,
			"las cuotas vencen en meses consecutivos")
		sum = sum.Add(inst.Amount)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(1200)), "la suma de cuotas cubre la deuda")
}

// Regenerar el plan elimina solo las cuotas no pagadas; las pagadas son
// historia.
func TestRecordDebt_RegeneracionPreservaCuotasPagadas(t *testing.T) {
	ledger, uc := newDebtHarness()
	seedDebtor(ledger, "cust-1", 600, 200)
	ledger.customers["cust-1"] = withInstallmentPlan(ledger.customers["cust-1"], 3)
	paidAt := time.Now()
	ledger.installments["inst-paid"] = entity.Installment{
		ID: "inst-paid", TenantID: testTenantID, CustomerID: "cust-1",
		Seq: 1, Amount: decimal.NewFromInt(200), Paid: true, PaidAt: &paidAt,
	}
	ledger.installments["inst-open"] = entity.Installment{
		ID: "inst-open", TenantID: testTenantID, CustomerID: "cust-1",
		Seq: 2, Amount: decimal.NewFromInt(200),
	}

	count := 4
	_, err := uc.RecordDebt(context.Background(), testTenantID, "cust-1", dto.RecordDebtRequest{
		Amount:           decimal.NewFromInt(400),
		InstallmentCount: &count,
	})
	require.NoError(t, err)

	_, stillThere := ledger.installments["inst-paid"]
	assert.True(t, stillThere, "la cuota pagada nunca se borra")
	_, gone := ledger.installments["inst-open"]
	assert.False(t, gone, "la cuota abierta se reemplaza por el plan nuevo")

	// 4 cuotas nuevas sobre el restante (400 + 400 = 800) más la pagada
	insts := ledger.sortedInstallments("cust-1")
	require.Len(t, insts, 5)
}

func TestRecordDebt_MontoInvalido(t *testing.T) {
	ledger, uc := newDebtHarness()
	seedDebtor(ledger, "cust-1", 0, 0)

	_, err := uc.RecordDebt(context.Background(), testTenantID, "cust-1", dto.RecordDebtRequest{
		Amount: decimal.Zero,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordDebt_OtroTenantVeNotFound(t *testing.T) {
	ledger, uc := newDebtHarness()
	seedDebtor(ledger, "cust-1", 0, 0)

	_, err := uc.RecordDebt(context.Background(), otherTenantID, "cust-1", dto.RecordDebtRequest{
		Amount: decimal.NewFromInt(50),
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ── PayDebt ───────────────────────────────────────────────────────────────────

// Un abono parcial descuenta del restante y queda en el historial de pagos.
func TestPayDebt_AbonoParcial(t *testing.T) {
	ledger, uc := newDebtHarness()
	seedDebtor(ledger, "cust-1", 500, 0)

	resp, err := uc.PayDebt(context.Background(), testTenantID, "cust-1", testAdminID, dto.PayDebtRequest{
		Amount: decimal.NewFromInt(120),
	})
	require.NoError(t, err)

	assert.True(t, resp.HasDebt)
	assert.True(t, resp.RemainingDebt.Equal(decimal.NewFromInt(380)))
	assert.True(t, resp.PaidDebt.Equal(decimal.NewFromInt(120)))
	checkDebtInvariant(t, ledger.customers["cust-1"])

	require.Len(t, ledger.payments, 1)
	assert.Equal(t, entity.DebtPaymentDirect, ledger.payments[0].Kind)
	assert.Equal(t, testAdminID, ledger.payments[0].CreatedBy)
}

// Pagar más que el restante falla sin dejar rastro.
func TestPayDebt_SobrepagoNoDejaEfecto(t *testing.T) {
	ledger, uc := newDebtHarness()
	seedDebtor(ledger, "cust-1", 500, 400)

	_, err := uc.PayDebt(context.Background(), testTenantID, "cust-1", testAdminID, dto.PayDebtRequest{
		Amount: decimal.NewFromFloat(100.01),
	})
	require.ErrorIs(t, err, domain.ErrOverpayment)

	c := ledger.customers["cust-1"]
	assert.True(t, c.RemainingDebt.Equal(decimal.NewFromInt(100)), "el restante no cambia")
	assert.Empty(t, ledger.payments, "un pago rechazado no entra al historial")
}

// Saldar exacto limpia todos los campos de deuda y elimina las cuotas
// abiertas.
func TestPayDebt_SaldoExactoLimpiaDeuda(t *testing.T) {
	ledger, uc := newDebtHarness()
	seedDebtor(ledger, "cust-1", 500, 200)
	ledger.customers["cust-1"] = withInstallmentPlan(ledger.customers["cust-1"], 3)
	ledger.installments["inst-open"] = entity.Installment{
		ID: "inst-open", TenantID: testTenantID, CustomerID: "cust-1",
		Seq: 1, Amount: decimal.NewFromInt(100),
	}

	resp, err := uc.PayDebt(context.Background(), testTenantID, "cust-1", testAdminID, dto.PayDebtRequest{
		Amount: decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	assert.False(t, resp.HasDebt)
	assert.False(t, resp.HasInstallment)
	assert.Nil(t, resp.NextDebtDate)
	checkDebtInvariant(t, ledger.customers["cust-1"])
	assert.Empty(t, ledger.sortedInstallments("cust-1"), "las cuotas abiertas se eliminan al saldar")
}

// En un plan vigente, el abono corre la próxima fecha un mes desde ahora.
func TestPayDebt_PlanAvanzaLaProximaFecha(t *testing.T) {
	ledger, uc := newDebtHarness()
	seedDebtor(ledger, "cust-1", 600, 0)
	ledger.customers["cust-1"] = withInstallmentPlan(ledger.customers["cust-1"], 6)

	resp, err := uc.PayDebt(context.Background(), testTenantID, "cust-1", testAdminID, dto.PayDebtRequest{
		Amount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.NextDebtDate)
	assert.WithinDuration(t, time.Now().AddDate(0, 1, 0), *resp.NextDebtDate, 5*time.Second)
}

// El caller puede redefinir las cuotas restantes junto con el abono.
func TestPayDebt_RedefineCuotasRestantes(t *testing.T) {
	ledger, uc := newDebtHarness()
	seedDebtor(ledger, "cust-1", 600, 0)
	ledger.customers["cust-1"] = withInstallmentPlan(ledger.customers["cust-1"], 6)

	newCount := 2
	resp, err := uc.PayDebt(context.Background(), testTenantID, "cust-1", testAdminID, dto.PayDebtRequest{
		Amount:              decimal.NewFromInt(200),
		NewInstallmentCount: &newCount,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.InstallmentCount)
	insts := ledger.sortedInstallments("cust-1")
	require.Len(t, insts, 2)
	assert.True(t, insts[0].Amount.Equal(decimal.NewFromInt(200)), "400 restantes en 2 cuotas")
	assert.True(t, insts[1].Amount.Equal(decimal.NewFromInt(200)))
}

// Pagar a un cliente sin deuda es un conflicto, no un pago vacío.
func TestPayDebt_SinDeudaEsConflicto(t *testing.T) {
	ledger, uc := newDebtHarness()
	seedDebtor(ledger, "cust-1", 0, 0)

	_, err := uc.PayDebt(context.Background(), testTenantID, "cust-1", testAdminID, dto.PayDebtRequest{
		Amount: decimal.NewFromInt(10),
	})
	require.ErrorIs(t, err, domain.ErrConflict)
}

// withInstallmentPlan marca al cliente con un plan vigente de count cuotas.
func withInstallmentPlan(c entity.Customer, count int) entity.Customer {
	next := time.Now().AddDate(0, 1, 0)
	c.HasInstallment = true
	c.InstallmentCount = count
	c.NextDebtDate = &next
	return c
}
