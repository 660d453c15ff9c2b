package jobs_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/aquaserv-pro/internal/application/dto"
	"github.com/tu-usuario/aquaserv-pro/internal/domain"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
)

// El cliente inline se crea dentro de la misma transacción y el trabajo
// nace PENDING con su historial inicial.
func TestCreate_ClienteInlineEnLaMismaTransaccion(t *testing.T) {
	env, uc, _ := newJobHarness()

	resp, err := uc.Create(context.Background(), adminIdent, dto.CreateJobRequest{
		Customer: &dto.InlineCustomer{Name: "Cliente Nuevo", Phone: "555-0202"},
		Title:    "Cambio de filtros",
		Price:    decimal.NewFromInt(150),
		Note:     "agendar por la mañana",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.JobStatusPending, resp.Status)
	require.NotEmpty(t, resp.CustomerID)

	created, ok := env.customers[resp.CustomerID]
	require.True(t, ok, "el cliente inline debe quedar persistido")
	assert.Equal(t, "Cliente Nuevo", created.Name)
	assert.Equal(t, testTenantID, created.TenantID)

	require.Len(t, env.history, 1, "historial inicial en PENDING")
	assert.Equal(t, entity.JobStatusPending, env.history[0].Status)
	require.Len(t, env.notes, 1)
}

// Las líneas de material se validan contra el stock actual, pero la
// creación no descuenta nada: la reserva captura el precio de referencia y
// el descuento ocurre recién en la entrega.
func TestCreate_ReservaMaterialesSinDescontarStock(t *testing.T) {
	env, uc, _ := newJobHarness()
	seedCustomer(env, "cust-1")
	seedItem(env, "item-1", 10, 12.75)

	resp, err := uc.Create(context.Background(), adminIdent, dto.CreateJobRequest{
		CustomerID: "cust-1",
		Title:      "Mantenimiento semestral",
		Price:      decimal.NewFromInt(80),
		Materials: []dto.JobMaterialRequest{
			{ItemID: "item-1", Quantity: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Materials, 1)
	assert.True(t, resp.Materials[0].UnitPrice.Equal(decimal.NewFromFloat(12.75)))
	assert.True(t, env.items["item-1"].Quantity.Equal(decimal.NewFromInt(10)), "crear no descuenta stock")
	assert.Empty(t, env.txns, "sin movimientos de ledger hasta la entrega")
}

// Pedir más de lo que hay en stock rechaza la creación completa.
func TestCreate_StockInsuficienteRechaza(t *testing.T) {
	env, uc, _ := newJobHarness()
	seedCustomer(env, "cust-1")
	seedItem(env, "item-1", 2, 5)

	_, err := uc.Create(context.Background(), adminIdent, dto.CreateJobRequest{
		CustomerID: "cust-1",
		Title:      "Instalación",
		Price:      decimal.NewFromInt(100),
		Materials: []dto.JobMaterialRequest{
			{ItemID: "item-1", Quantity: decimal.NewFromInt(5)},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, env.jobs)
}

// El personal asignado debe existir, ser del tenant y estar activo.
func TestCreate_PersonalInactivoRechaza(t *testing.T) {
	env, uc, _ := newJobHarness()
	seedCustomer(env, "cust-1")
	env.personnel[testWorkerID] = entity.Personnel{
		ID: testWorkerID, TenantID: testTenantID, Name: "Técnico", Status: entity.StatusPassive,
	}

	_, err := uc.Create(context.Background(), adminIdent, dto.CreateJobRequest{
		CustomerID:   "cust-1",
		Title:        "Visita técnica",
		Price:        decimal.NewFromInt(60),
		PersonnelIDs: []string{testWorkerID},
	})
	require.ErrorIs(t, err, domain.ErrPersonnelUnavailable)
	assert.Empty(t, env.jobs)
}

// Sin cliente (ni ID ni inline) la creación es inválida.
func TestCreate_SinClienteEsInvalido(t *testing.T) {
	_, uc, _ := newJobHarness()

	_, err := uc.Create(context.Background(), adminIdent, dto.CreateJobRequest{
		Title: "Trabajo huérfano",
		Price: decimal.NewFromInt(10),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un cliente de otro tenant es indistinguible de uno inexistente.
func TestCreate_ClienteDeOtroTenant(t *testing.T) {
	env, uc, _ := newJobHarness()
	env.customers["cust-x"] = entity.Customer{ID: "cust-x", TenantID: otherTenantID, Name: "Ajeno"}

	_, err := uc.Create(context.Background(), adminIdent, dto.CreateJobRequest{
		CustomerID: "cust-x",
		Title:      "Trabajo cruzado",
		Price:      decimal.NewFromInt(10),
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
