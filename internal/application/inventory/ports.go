package inventory

import (
	"context"

	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de
// inventario y el log de movimientos.
//
// El adaptador reintenta (acotado) solo conflictos transitorios de escritura
// (serialization/deadlock); cuando agota los intentos devuelve
// domain.ErrConcurrentModification. Los errores de negocio nunca se reintentan.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
	) error) error
}
