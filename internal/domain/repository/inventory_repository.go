package repository

import (
	"context"

	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para InventoryRecord (DIP).
// Usado dentro de transacciones para garantizar consistencia del libro de inventario.
type InventoryRepository interface {
	Create(ctx context.Context, record *entity.InventoryRecord) error
	GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error)
	GetByProductAndStore(ctx context.Context, productID, storeID string) (*entity.InventoryRecord, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE); nil si no existe.
	GetForUpdate(ctx context.Context, productID, storeID string) (*entity.InventoryRecord, error)
	Update(ctx context.Context, record *entity.InventoryRecord) error
	Delete(ctx context.Context, id string) error
	ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.InventoryRecord, error)
	// ListLowStock devuelve las filas con quantity <= min_stock,
	// ordenadas por tienda y producto para resultados deterministas.
	ListLowStock(ctx context.Context) ([]*entity.InventoryRecord, error)
}
