package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/aquaserv-pro/internal/application/dto"
	"github.com/tu-usuario/aquaserv-pro/internal/domain"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

// PayInstallment paga una cuota del plan: marca la cuota como pagada, genera
// su factura snapshot y descuenta el monto del restante del cliente, todo en
// una sola transacción. Dos pagos concurrentes de la misma cuota se
// serializan con el lock de la fila; el segundo ve Paid=true y falla con
// ErrAlreadyPaid.
func (uc *DebtUseCase) PayInstallment(ctx context.Context, tenantID, installmentID, actorID string) (*dto.InvoiceResponse, error) {
	now := time.Now()
	var response *dto.InvoiceResponse
	err := uc.txRunner.RunBilling(ctx, func(
		customerRepo repository.CustomerRepository,
		installmentRepo repository.InstallmentRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.DebtPaymentRepository,
	) error {
		inst, err := installmentRepo.GetForUpdate(installmentID)
		if err != nil {
			return err
		}
		if inst == nil || inst.TenantID != tenantID {
			return domain.ErrNotFound
		}
		if inst.Paid {
			return domain.ErrAlreadyPaid
		}

		customer, err := customerRepo.GetForUpdate(inst.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}

		invoice := &entity.Invoice{
			ID:              uuid.New().String(),
			TenantID:        tenantID,
			Number:          fmt.Sprintf("FAC-%d", now.Unix()),
			CustomerID:      customer.ID,
			CustomerName:    customer.Name,
			CustomerPhone:   customer.Phone,
			CustomerAddress: customer.Address,
			InstallmentID:   inst.ID,
			Total:           inst.Amount,
			IssuedAt:        now,
			CreatedAt:       now,
		}
		if err := invoiceRepo.Create(invoice); err != nil {
			return err
		}
		line := &entity.InvoiceLine{
			ID:          uuid.New().String(),
			InvoiceID:   invoice.ID,
			Description: fmt.Sprintf("Cuota %d de %d", inst.Seq, customer.InstallmentCount),
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   inst.Amount,
			Subtotal:    inst.Amount,
		}
		if err := invoiceRepo.CreateLine(line); err != nil {
			return err
		}

		inst.Paid = true
		inst.PaidAt = &now
		inst.InvoiceID = invoice.ID
		if err := installmentRepo.Update(inst); err != nil {
			return err
		}

		customer.RemainingDebt = customer.RemainingDebt.Sub(inst.Amount).Round(2)
		customer.PaidDebt = customer.PaidDebt.Add(inst.Amount).Round(2)
		if !customer.RemainingDebt.GreaterThan(decimal.Zero) {
			customer.ClearDebt()
		} else {
			next := now.AddDate(0, 1, 0)
			customer.NextDebtDate = &next
		}
		customer.UpdatedAt = now
		if err := customerRepo.Update(customer); err != nil {
			return err
		}

		if err := paymentRepo.Create(&entity.DebtPayment{
			ID:            uuid.New().String(),
			TenantID:      tenantID,
			CustomerID:    customer.ID,
			InstallmentID: inst.ID,
			Amount:        inst.Amount,
			Kind:          entity.DebtPaymentInstallment,
			CreatedAt:     now,
			CreatedBy:     actorID,
		}); err != nil {
			return err
		}

		response = toInvoiceResponse(invoice, []*entity.InvoiceLine{line})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

func toInvoiceResponse(inv *entity.Invoice, lines []*entity.InvoiceLine) *dto.InvoiceResponse {
	out := &dto.InvoiceResponse{
		ID:              inv.ID,
		TenantID:        inv.TenantID,
		Number:          inv.Number,
		CustomerID:      inv.CustomerID,
		CustomerName:    inv.CustomerName,
		CustomerPhone:   inv.CustomerPhone,
		CustomerAddress: inv.CustomerAddress,
		JobID:           inv.JobID,
		InstallmentID:   inv.InstallmentID,
		Total:           inv.Total,
		IssuedAt:        inv.IssuedAt,
		Lines:           make([]dto.InvoiceLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.InvoiceLineResponse{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	return out
}
