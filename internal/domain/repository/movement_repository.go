package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos.
// StoreID coincide si la tienda aparece como origen O como destino.
type MovementFilter struct {
	ProductID *string
	Type      *string
	DateFrom  *time.Time // movimientos con timestamp >= DateFrom
	StoreID   *string
}

// MovementRepository define el puerto de persistencia para Movement (DIP).
// El log es append-only: no hay Update ni Delete.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// List devuelve movimientos ordenados del más reciente al más antiguo.
	List(ctx context.Context, filter MovementFilter, limit, offset int) ([]*entity.Movement, error)
}
