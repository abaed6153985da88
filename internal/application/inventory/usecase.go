package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-tiendas/internal/application/dto"
	"github.com/jhoicas/inventario-tiendas/internal/domain"
	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
	"github.com/jhoicas/inventario-tiendas/internal/domain/store"
)

// UseCase operaciones sobre el libro de inventario: una fila por
// (producto, tienda) con cantidad y stock mínimo mutuamente consistentes.
type UseCase struct {
	txRunner    TxRunner
	invRepo     repository.InventoryRepository
	productRepo repository.ProductRepository
	stores      *store.Directory
}

// NewUseCase construye el caso de uso del libro de inventario.
func NewUseCase(
	txRunner TxRunner,
	invRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	stores *store.Directory,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		invRepo:     invRepo,
		productRepo: productRepo,
		stores:      stores,
	}
}

// Create registra la primera entrada de stock de un producto en una tienda.
// Orden de validación: producto → tienda → duplicado → invariante.
// En éxito persiste la fila y un movimiento IN en la misma transacción.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	if in.Quantity <= 0 || in.MinStock <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if !uc.stores.IsValid(in.StoreID) {
		return nil, domain.ErrInvalidStore
	}
	existing, err := uc.invRepo.GetByProductAndStore(ctx, in.ProductID, in.StoreID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateRecord
	}
	// Una entrada de inventario nunca arranca por debajo de su propio umbral de alerta.
	if in.Quantity < in.MinStock {
		return nil, domain.ErrInvariantViolation
	}

	now := time.Now().UTC()
	record := &entity.InventoryRecord{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		StoreID:   in.StoreID,
		Quantity:  in.Quantity,
		MinStock:  in.MinStock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	targetStore := in.StoreID
	err = uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
	) error {
		if err := invRepo.Create(ctx, record); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:            uuid.New().String(),
			ProductID:     in.ProductID,
			TargetStoreID: &targetStore,
			Quantity:      in.Quantity,
			Type:          entity.MovementTypeIN,
			Timestamp:     now,
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	return toInventoryResponse(record), nil
}

// GetByID obtiene un registro de inventario por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.InventoryResponse, error) {
	record, err := uc.invRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrRecordNotFound
	}
	return toInventoryResponse(record), nil
}

// ListByStore lista el inventario de una tienda en orden de inserción.
// Una tienda sin inventario devuelve la lista vacía, no un error.
func (uc *UseCase) ListByStore(ctx context.Context, storeID string, page dto.PageRequest) (*dto.InventoryListResponse, error) {
	if !uc.stores.IsValid(storeID) {
		return nil, domain.ErrInvalidStore
	}
	page.DefaultPage()
	list, err := uc.invRepo.ListByStore(ctx, storeID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toInventoryResponse(r))
	}
	return &dto.InventoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update actualización parcial: solo cambian los campos presentes. El
// invariante quantity >= min_stock se revalida con los valores resultantes
// (el campo no enviado conserva su valor para la comparación). La secuencia
// leer-validar-escribir corre en una sola transacción con bloqueo de fila.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock != nil && *in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.InventoryResponse
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
	) error {
		record, err := invRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrRecordNotFound
		}
		// Relee con bloqueo para que dos updates concurrentes se serialicen.
		record, err = invRepo.GetForUpdate(ctx, record.ProductID, record.StoreID)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrRecordNotFound
		}
		if in.Quantity != nil {
			record.Quantity = *in.Quantity
		}
		if in.MinStock != nil {
			record.MinStock = *in.MinStock
		}
		if record.Quantity < record.MinStock {
			return domain.ErrInvariantViolation
		}
		record.UpdatedAt = time.Now().UTC()
		if err := invRepo.Update(ctx, record); err != nil {
			return err
		}
		out = toInventoryResponse(record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina un registro de inventario. Es una corrección administrativa,
// no un evento de stock: no se registra movimiento.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.invRepo.Delete(ctx, id)
}

// LowStockAlerts lista las filas con quantity <= min_stock, anotadas con
// severidad: "critical" si la cantidad es cero, "low" en el resto.
func (uc *UseCase) LowStockAlerts(ctx context.Context) ([]dto.LowStockAlertDTO, error) {
	list, err := uc.invRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.LowStockAlertDTO, 0, len(list))
	for _, r := range list {
		alerts = append(alerts, dto.LowStockAlertDTO{
			ProductID: r.ProductID,
			StoreID:   r.StoreID,
			Quantity:  r.Quantity,
			MinStock:  r.MinStock,
			Severity:  r.AlertSeverity(),
		})
	}
	return alerts, nil
}

func toInventoryResponse(r *entity.InventoryRecord) *dto.InventoryResponse {
	if r == nil {
		return nil
	}
	return &dto.InventoryResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		StoreID:   r.StoreID,
		Quantity:  r.Quantity,
		MinStock:  r.MinStock,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
