package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
)

// ProductFilter filtros opcionales para listar productos.
type ProductFilter struct {
	Category *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// Delete elimina el producto; las filas de inventario caen en cascada
	// (FK ON DELETE CASCADE), los movimientos se conservan como historial.
	Delete(ctx context.Context, id string) error
}
