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

// TransferUseCase orquesta un traslado de stock entre tiendas como una sola
// operación lógica: validar → debitar origen → acreditar (o crear) destino →
// registrar movimiento. Los pasos de escritura corren en una transacción con
// bloqueo de fila (SELECT FOR UPDATE).
type TransferUseCase struct {
	txRunner        TxRunner
	productRepo     repository.ProductRepository
	stores          *store.Directory
	defaultMinStock int // min_stock del registro destino creado implícitamente
}

// NewTransferUseCase construye el motor de traslados.
func NewTransferUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	stores *store.Directory,
	defaultMinStock int,
) *TransferUseCase {
	if defaultMinStock <= 0 {
		defaultMinStock = 5
	}
	return &TransferUseCase{
		txRunner:        txRunner,
		productRepo:     productRepo,
		stores:          stores,
		defaultMinStock: defaultMinStock,
	}
}

// Transfer mueve quantity unidades del producto entre las dos tiendas.
//
// Regla de piso: el traslado debe dejar la tienda de origen estrictamente por
// encima de su stock mínimo; se rechaza cuando minStock >= quantity - q.
// Un traslado con origen == destino se rechaza como entrada inválida: sería un
// no-op que aun así dejaría un movimiento TRANSFER engañoso en el historial.
//
// Toda falla de validación deja el estado persistido sin cambios. Si el
// registro destino no existe se crea dentro de la misma transacción con
// cantidad 0 y el stock mínimo por defecto.
func (uc *TransferUseCase) Transfer(ctx context.Context, in dto.TransferRequest) (*dto.TransferResponse, error) {
	// El esquema HTTP ya exige quantity > 0; esta es defensa en profundidad.
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.SourceStoreID == in.TargetStoreID {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if !uc.stores.IsValid(in.SourceStoreID) || !uc.stores.IsValid(in.TargetStoreID) {
		return nil, domain.ErrInvalidStore
	}

	now := time.Now().UTC()
	var out *dto.TransferResponse
	// Dos traslados concurrentes sobre el mismo par pueden bloquearse en orden
	// cruzado; el TxRunner reintenta acotado los deadlocks/serialization.
	err = uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
	) error {
		source, err := invRepo.GetForUpdate(ctx, in.ProductID, in.SourceStoreID)
		if err != nil {
			return err
		}
		if source == nil {
			// Una tienda no puede despachar stock que nunca recibió.
			return domain.ErrRecordNotFound
		}
		if source.MinStock >= source.Quantity-in.Quantity {
			return domain.ErrInsufficientStock
		}

		target, err := invRepo.GetForUpdate(ctx, in.ProductID, in.TargetStoreID)
		if err != nil {
			return err
		}
		if target == nil {
			target = &entity.InventoryRecord{
				ID:        uuid.New().String(),
				ProductID: in.ProductID,
				StoreID:   in.TargetStoreID,
				Quantity:  0,
				MinStock:  uc.defaultMinStock,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := invRepo.Create(ctx, target); err != nil {
				return err
			}
		}

		source.Quantity -= in.Quantity
		source.UpdatedAt = now
		if err := invRepo.Update(ctx, source); err != nil {
			return err
		}
		target.Quantity += in.Quantity
		target.UpdatedAt = now
		if err := invRepo.Update(ctx, target); err != nil {
			return err
		}

		srcID, tgtID := in.SourceStoreID, in.TargetStoreID
		mov := &entity.Movement{
			ID:            uuid.New().String(),
			ProductID:     in.ProductID,
			SourceStoreID: &srcID,
			TargetStoreID: &tgtID,
			Quantity:      in.Quantity,
			Type:          entity.MovementTypeTRANSFER,
			Timestamp:     now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}

		out = &dto.TransferResponse{
			Message:     "transferencia completada con éxito",
			SourceStore: dto.TransferStoreResult{StoreID: in.SourceStoreID, Stock: source.Quantity},
			TargetStore: dto.TransferStoreResult{StoreID: in.TargetStoreID, Stock: target.Quantity},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
