package customers

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/aquaserv-pro/internal/application/dto"
	"github.com/tu-usuario/aquaserv-pro/internal/domain"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

// UseCase CRUD de clientes del tenant. Los campos de deuda solo los mutan
// las operaciones de facturación, nunca el update genérico.
type UseCase struct {
	customerRepo repository.CustomerRepository
}

func NewUseCase(customerRepo repository.CustomerRepository) *UseCase {
	return &UseCase{customerRepo: customerRepo}
}

// Create alta de cliente sin deuda.
func (uc *UseCase) Create(ctx context.Context, tenantID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		Name:          strings.TrimSpace(in.Name),
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		Address:       strings.TrimSpace(in.Address),
		DebtAmount:    decimal.Zero,
		RemainingDebt: decimal.Zero,
		PaidDebt:      decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return toResponse(customer), nil
}

// Get cliente por ID; fuera del tenant responde como inexistente.
func (uc *UseCase) Get(ctx context.Context, tenantID, customerID string) (*dto.CustomerResponse, error) {
	customer, err := uc.get(tenantID, customerID)
	if err != nil {
		return nil, err
	}
	return toResponse(customer), nil
}

// List clientes del tenant.
func (uc *UseCase) List(ctx context.Context, tenantID string, limit, offset int) ([]*dto.CustomerResponse, error) {
	list, err := uc.customerRepo.ListByTenant(tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toResponse(c))
	}
	return out, nil
}

// Update edita datos de contacto; los campos de deuda no se tocan aquí.
func (uc *UseCase) Update(ctx context.Context, tenantID, customerID string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.get(tenantID, customerID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) != "" {
		customer.Name = strings.TrimSpace(in.Name)
	}
	customer.Phone = strings.TrimSpace(in.Phone)
	customer.Email = strings.ToLower(strings.TrimSpace(in.Email))
	customer.Address = strings.TrimSpace(in.Address)
	customer.UpdatedAt = time.Now()
	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return toResponse(customer), nil
}

// Delete elimina un cliente sin deuda pendiente. Con deuda viva responde
// conflicto: primero se salda o condona, después se borra.
func (uc *UseCase) Delete(ctx context.Context, tenantID, customerID string) error {
	customer, err := uc.get(tenantID, customerID)
	if err != nil {
		return err
	}
	if customer.HasDebt {
		return domain.ErrConflict
	}
	return uc.customerRepo.Delete(customer.ID)
}

func (uc *UseCase) get(tenantID, customerID string) (*entity.Customer, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

func toResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:               c.ID,
		TenantID:         c.TenantID,
		Name:             c.Name,
		Phone:            c.Phone,
		Email:            c.Email,
		Address:          c.Address,
		HasDebt:          c.HasDebt,
		DebtAmount:       c.DebtAmount,
		RemainingDebt:    c.RemainingDebt,
		PaidDebt:         c.PaidDebt,
		HasInstallment:   c.HasInstallment,
		InstallmentCount: c.InstallmentCount,
		NextDebtDate:     c.NextDebtDate,
		CreatedAt:        c.CreatedAt,
	}
}
