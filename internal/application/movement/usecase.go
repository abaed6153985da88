// Package movement implementa el log de movimientos: el registro append-only
// de todo evento que afecta stock (IN, OUT, TRANSFER).
package movement

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

// UseCase operaciones sobre el log de movimientos.
type UseCase struct {
	movRepo repository.MovementRepository
	stores  *store.Directory
}

// NewUseCase construye el caso de uso.
func NewUseCase(movRepo repository.MovementRepository, stores *store.Directory) *UseCase {
	return &UseCase{movRepo: movRepo, stores: stores}
}

// Append registra un movimiento. El invariante tienda/tipo es obligatorio:
// IN exige destino, OUT exige origen, TRANSFER exige ambos. El timestamp lo
// asigna siempre el servidor (UTC); nunca se acepta un ID del cliente.
func (uc *UseCase) Append(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidMovement
	}
	for _, id := range []*string{in.SourceStoreID, in.TargetStoreID} {
		if id != nil && !uc.stores.IsValid(*id) {
			return nil, domain.ErrInvalidStore
		}
	}
	mov := &entity.Movement{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		SourceStoreID: in.SourceStoreID,
		TargetStoreID: in.TargetStoreID,
		Quantity:      in.Quantity,
		Type:          in.Type,
		Timestamp:     time.Now().UTC(),
	}
	if !mov.ValidStores() {
		return nil, domain.ErrInvalidMovement
	}
	if err := uc.movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// List devuelve movimientos del más reciente al más antiguo, con filtros
// opcionales. Un resultado vacío es un error (ErrNoMovementsFound): el
// consumidor distingue "no pasó nada" de "consulta con cero filas" solo así.
func (uc *UseCase) List(ctx context.Context, filter repository.MovementFilter, page dto.PageRequest) (*dto.MovementListResponse, error) {
	if filter.StoreID != nil && !uc.stores.IsValid(*filter.StoreID) {
		return nil, domain.ErrInvalidStore
	}
	page.DefaultPage()
	list, err := uc.movRepo.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrNoMovementsFound
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetByID obtiene un movimiento por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.MovementResponse, error) {
	mov, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrMovementNotFound
	}
	return toMovementResponse(mov), nil
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		SourceStoreID: m.SourceStoreID,
		TargetStoreID: m.TargetStoreID,
		Quantity:      m.Quantity,
		Type:          m.Type,
		Timestamp:     m.Timestamp,
	}
}
