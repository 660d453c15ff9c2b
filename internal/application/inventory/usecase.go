package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/aquaserv-pro/internal/application/dto"
	"github.com/tu-usuario/aquaserv-pro/internal/domain"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
)

// UseCase registra transacciones de inventario de forma transaccional
// (IN, OUT, ADJUSTMENT) con bloqueo de fila (SELECT FOR UPDATE) y
// Commit/Rollback, y mantiene el CRUD de artículos.
type UseCase struct {
	txRunner TxRunner
	itemRepo repository.InventoryItemRepository
	txnRepo  repository.InventoryTransactionRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, itemRepo repository.InventoryItemRepository, txnRepo repository.InventoryTransactionRepository) *UseCase {
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo, txnRepo: txnRepo}
}

// CreateItem crea un artículo. Si trae cantidad inicial, se registra como
// transacción IN para que el ledger reconstruya siempre el stock actual.
func (uc *UseCase) CreateItem(ctx context.Context, tenantID, actorID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" || in.UnitPrice.LessThan(decimal.Zero) || in.Quantity.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:               uuid.New().String(),
		TenantID:         tenantID,
		Name:             in.Name,
		Category:         in.Category,
		UnitPrice:        in.UnitPrice.Round(2),
		Quantity:         in.Quantity,
		CriticalQuantity: in.CriticalQuantity,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err := uc.txRunner.Run(ctx, func(itemRepo repository.InventoryItemRepository, txnRepo repository.InventoryTransactionRepository) error {
		if err := itemRepo.Create(item); err != nil {
			return err
		}
		if item.Quantity.GreaterThan(decimal.Zero) {
			return txnRepo.Create(&entity.InventoryTransaction{
				ID:        uuid.New().String(),
				TenantID:  tenantID,
				ItemID:    item.ID,
				Type:      entity.TxTypeIn,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Total:     item.Quantity.Mul(item.UnitPrice).Round(2),
				CreatedAt: now,
				CreatedBy: actorID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetItem obtiene un artículo del tenant.
func (uc *UseCase) GetItem(ctx context.Context, tenantID, id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// ListItems lista artículos del tenant.
func (uc *UseCase) ListItems(ctx context.Context, tenantID string, limit, offset int) ([]*dto.ItemResponse, error) {
	list, err := uc.itemRepo.ListByTenant(tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(list))
	for _, item := range list {
		out = append(out, toItemResponse(item))
	}
	return out, nil
}

// UpdateItem edita un artículo (nunca la cantidad: esa se muta por transacciones).
func (uc *UseCase) UpdateItem(ctx context.Context, tenantID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		item.Name = in.Name
	}
	if in.Category != "" {
		item.Category = in.Category
	}
	if in.UnitPrice.GreaterThan(decimal.Zero) {
		item.UnitPrice = in.UnitPrice.Round(2)
	}
	if in.CriticalQuantity.GreaterThanOrEqual(decimal.Zero) {
		item.CriticalQuantity = in.CriticalQuantity
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// RegisterTransaction registra un movimiento manual. Inicia transacción,
// bloquea la fila del artículo, aplica la lógica según tipo y hace
// Commit o Rollback.
func (uc *UseCase) RegisterTransaction(ctx context.Context, tenantID, actorID string, in dto.RegisterTransactionRequest) error {
	switch in.Type {
	case entity.TxTypeIn, entity.TxTypeOut:
		if in.ItemID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case entity.TxTypeAdjustment:
		if in.ItemID == "" || in.Quantity.IsZero() {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}

	// Validar que el artículo exista y sea del tenant (lectura fuera de la tx)
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return err
	}
	if item == nil || item.TenantID != tenantID {
		return domain.ErrNotFound
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(itemRepo repository.InventoryItemRepository, txnRepo repository.InventoryTransactionRepository) error {
		// Bloquea la fila del artículo para evitar condiciones de carrera
		locked, err := itemRepo.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}

		qty := in.Quantity
		if in.Type == entity.TxTypeOut {
			qty = in.Quantity.Neg()
		}
		newQty := locked.Quantity.Add(qty)
		if newQty.LessThan(decimal.Zero) {
			return domain.ErrInsufficientStock
		}
		locked.Quantity = newQty
		locked.UpdatedAt = now
		if err := itemRepo.Update(locked); err != nil {
			return err
		}
		return txnRepo.Create(&entity.InventoryTransaction{
			ID:        uuid.New().String(),
			TenantID:  tenantID,
			ItemID:    in.ItemID,
			Type:      in.Type,
			Quantity:  qty,
			UnitPrice: locked.UnitPrice,
			Total:     qty.Mul(locked.UnitPrice).Round(2),
			CreatedAt: now,
			CreatedBy: actorID,
		})
	})
}

// ListTransactions lista el ledger de un artículo del tenant.
func (uc *UseCase) ListTransactions(ctx context.Context, tenantID, itemID string, limit, offset int) ([]*dto.TransactionResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.txnRepo.ListByItem(itemID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, &dto.TransactionResponse{
			ID:        t.ID,
			ItemID:    t.ItemID,
			JobID:     t.JobID,
			Type:      t.Type,
			Quantity:  t.Quantity,
			UnitPrice: t.UnitPrice,
			Total:     t.Total,
			CreatedAt: t.CreatedAt,
		})
	}
	return out, nil
}

// ConsumeInTx descuenta stock usando los repositorios del caller (misma
// transacción). Lo usa la liquidación de entrega de trabajos; si retorna
// error (ej: ErrInsufficientStock) el caller debe hacer rollback completo.
// Devuelve el artículo bloqueado para que el caller capture el precio
// unitario vigente al momento del uso.
func (uc *UseCase) ConsumeInTx(
	itemRepo repository.InventoryItemRepository,
	txnRepo repository.InventoryTransactionRepository,
	tenantID, itemID, jobID, actorID string,
	quantity decimal.Decimal,
	now time.Time,
) (*entity.InventoryItem, error) {
	item, err := itemRepo.GetForUpdate(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	if item.Quantity.LessThan(quantity) {
		return nil, domain.ErrInsufficientStock
	}
	item.Quantity = item.Quantity.Sub(quantity)
	item.UpdatedAt = now
	if err := itemRepo.Update(item); err != nil {
		return nil, err
	}
	if err := txnRepo.Create(&entity.InventoryTransaction{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		ItemID:    itemID,
		JobID:     jobID,
		Type:      entity.TxTypeOut,
		Quantity:  quantity.Neg(),
		UnitPrice: item.UnitPrice,
		Total:     quantity.Neg().Mul(item.UnitPrice).Round(2),
		CreatedAt: now,
		CreatedBy: actorID,
	}); err != nil {
		return nil, err
	}
	return item, nil
}

func toItemResponse(item *entity.InventoryItem) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:               item.ID,
		TenantID:         item.TenantID,
		Name:             item.Name,
		Category:         item.Category,
		UnitPrice:        item.UnitPrice,
		Quantity:         item.Quantity,
		CriticalQuantity: item.CriticalQuantity,
		Critical:         item.IsCritical(),
		CreatedAt:        item.CreatedAt,
	}
}
