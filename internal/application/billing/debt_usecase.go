package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/aquaserv-pro/internal/application/dto"
	"github.com/tu-usuario/aquaserv-pro/internal/domain"
	domainbilling "github.com/tu-usuario/aquaserv-pro/internal/domain/billing"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

// DebtUseCase mantiene el ledger de deuda del cliente. Invariante en toda
// escritura: debtAmount = paidDebt + remainingDebt, montos redondeados a 2
// decimales.
type DebtUseCase struct {
	txRunner        TxRunner
	customerRepo    repository.CustomerRepository
	installmentRepo repository.InstallmentRepository
	paymentRepo     repository.DebtPaymentRepository
}

// NewDebtUseCase construye el caso de uso.
func NewDebtUseCase(
	txRunner TxRunner,
	customerRepo repository.CustomerRepository,
	installmentRepo repository.InstallmentRepository,
	paymentRepo repository.DebtPaymentRepository,
) *DebtUseCase {
	return &DebtUseCase{
		txRunner:        txRunner,
		customerRepo:    customerRepo,
		installmentRepo: installmentRepo,
		paymentRepo:     paymentRepo,
	}
}

// RecordDebt registra deuda nueva. Sobre deuda existente el monto es
// aditivo: se suma al total y al restante, nunca reemplaza. Si viene un
// plan de cuotas, la próxima fecha de vencimiento queda exactamente a un
// mes de la operación y se regeneran las cuotas no pagadas.
func (uc *DebtUseCase) RecordDebt(ctx context.Context, tenantID, customerID string, in dto.RecordDebtRequest) (*dto.CustomerResponse, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.InstallmentCount != nil && *in.InstallmentCount <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var customer *entity.Customer
	err := uc.txRunner.RunBilling(ctx, func(
		customerRepo repository.CustomerRepository,
		installmentRepo repository.InstallmentRepository,
		_ repository.InvoiceRepository,
		_ repository.DebtPaymentRepository,
	) error {
		var err error
		customer, err = customerRepo.GetForUpdate(customerID)
		if err != nil {
			return err
		}
		if customer == nil || customer.TenantID != tenantID {
			return domain.ErrNotFound
		}

		amount := in.Amount.Round(2)
		customer.HasDebt = true
		customer.DebtAmount = customer.DebtAmount.Add(amount).Round(2)
		customer.RemainingDebt = customer.RemainingDebt.Add(amount).Round(2)

		if in.InstallmentCount != nil {
			customer.HasInstallment = true
			customer.InstallmentCount = *in.InstallmentCount
			next := now.AddDate(0, 1, 0)
			customer.NextDebtDate = &next
			if err := regenerateInstallments(installmentRepo, customer, now); err != nil {
				return err
			}
		}

		customer.UpdatedAt = now
		return customerRepo.Update(customer)
	})
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// PayDebt abona contra la deuda restante. Falla con ErrOverpayment si el
// monto excede lo restante; si lo salda exacto, limpia todos los campos de
// deuda. En planes de cuotas la próxima fecha avanza un mes desde "ahora"
// (no desde la fecha anterior) y el caller puede redefinir las cuotas
// restantes.
func (uc *DebtUseCase) PayDebt(ctx context.Context, tenantID, customerID, actorID string, in dto.PayDebtRequest) (*dto.CustomerResponse, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.NewInstallmentCount != nil && *in.NewInstallmentCount <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var customer *entity.Customer
	err := uc.txRunner.RunBilling(ctx, func(
		customerRepo repository.CustomerRepository,
		installmentRepo repository.InstallmentRepository,
		_ repository.InvoiceRepository,
		paymentRepo repository.DebtPaymentRepository,
	) error {
		var err error
		customer, err = customerRepo.GetForUpdate(customerID)
		if err != nil {
			return err
		}
		if customer == nil || customer.TenantID != tenantID {
			return domain.ErrNotFound
		}
		if !customer.HasDebt {
			return domain.ErrConflict
		}
		amount := in.Amount.Round(2)
		if amount.GreaterThan(customer.RemainingDebt) {
			return domain.ErrOverpayment
		}

		customer.RemainingDebt = customer.RemainingDebt.Sub(amount).Round(2)
		customer.PaidDebt = customer.PaidDebt.Add(amount).Round(2)

		if customer.RemainingDebt.IsZero() {
			customer.ClearDebt()
			if err := installmentRepo.DeleteUnpaidByCustomer(customer.ID); err != nil {
				return err
			}
		} else if customer.HasInstallment {
			next := now.AddDate(0, 1, 0)
			customer.NextDebtDate = &next
			if in.NewInstallmentCount != nil {
				customer.InstallmentCount = *in.NewInstallmentCount
				if err := regenerateInstallments(installmentRepo, customer, now); err != nil {
					return err
				}
			}
		}

		customer.UpdatedAt = now
		if err := customerRepo.Update(customer); err != nil {
			return err
		}
		return paymentRepo.Create(&entity.DebtPayment{
			ID:         uuid.New().String(),
			TenantID:   tenantID,
			CustomerID: customer.ID,
			Amount:     amount,
			Kind:       entity.DebtPaymentDirect,
			CreatedAt:  now,
			CreatedBy:  actorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// ListInstallments lista las cuotas del plan de un cliente del tenant.
func (uc *DebtUseCase) ListInstallments(ctx context.Context, tenantID, customerID string) ([]*dto.InstallmentResponse, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.installmentRepo.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InstallmentResponse, 0, len(list))
	for _, i := range list {
		out = append(out, &dto.InstallmentResponse{
			ID:         i.ID,
			CustomerID: i.CustomerID,
			Seq:        i.Seq,
			Amount:     i.Amount,
			DueAt:      i.DueAt,
			Paid:       i.Paid,
			PaidAt:     i.PaidAt,
			InvoiceID:  i.InvoiceID,
		})
	}
	return out, nil
}

// ListPayments historial de pagos de deuda de un cliente del tenant.
func (uc *DebtUseCase) ListPayments(ctx context.Context, tenantID, customerID string, limit, offset int) ([]*dto.DebtPaymentResponse, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.paymentRepo.ListByCustomer(customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DebtPaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, &dto.DebtPaymentResponse{
			ID:            p.ID,
			CustomerID:    p.CustomerID,
			InstallmentID: p.InstallmentID,
			Amount:        p.Amount,
			Kind:          p.Kind,
			CreatedAt:     p.CreatedAt,
		})
	}
	return out, nil
}

// regenerateInstallments reemplaza las cuotas no pagadas del cliente con un
// plan nuevo que amortiza la deuda restante en InstallmentCount cuotas
// mensuales. Las cuotas ya pagadas son historia y no se tocan.
func regenerateInstallments(installmentRepo repository.InstallmentRepository, customer *entity.Customer, now time.Time) error {
	if err := installmentRepo.DeleteUnpaidByCustomer(customer.ID); err != nil {
		return err
	}
	amounts := domainbilling.Amortize(customer.RemainingDebt, customer.InstallmentCount)
	for i, amount := range amounts {
		if err := installmentRepo.Create(&entity.Installment{
			ID:         uuid.New().String(),
			TenantID:   customer.TenantID,
			CustomerID: customer.ID,
			Seq:        i + 1,
			Amount:     amount,
			DueAt:      now.AddDate(0, i+1, 0),
			CreatedAt:  now,
		}); err != nil {
			return err
		}
	}
	return nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
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
