package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/inventario-tiendas/internal/application/inventory"
	"github.com/jhoicas/inventario-tiendas/internal/domain"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
	"github.com/jhoicas/inventario-tiendas/pkg/logger"
)

// Verificación en compilación de que TxRunner implementa el puerto.
var _ inventory.TxRunner = (*TxRunner)(nil)

// maxTxAttempts tope de reintentos ante conflictos transitorios de escritura.
// Los errores de negocio nunca se reintentan.
const maxTxAttempts = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con
// reintento acotado de serialization failures y deadlocks.
type TxRunner struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, log *logger.Logger) *TxRunner {
	return &TxRunner{pool: pool, log: log}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Ante un conflicto transitorio (40001/40P01) reintenta
// hasta maxTxAttempts; agotados los intentos devuelve ErrConcurrentModification.
// La cancelación del contexto aborta la transacción completa (rollback).
func (r *TxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
) error) error {
	var lastErr error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		lastErr = r.runOnce(ctx, fn)
		if lastErr == nil || !isRetryableConflict(lastErr) {
			return lastErr
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.log.Warn().
			Int("attempt", attempt).
			Err(lastErr).
			Msg("conflicto de escritura en transacción, reintentando")
	}
	return fmt.Errorf("%w: %s", domain.ErrConcurrentModification, lastErr)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invRepo := NewInventoryRepository(tx)
	movRepo := NewMovementRepository(tx)

	if err := fn(invRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
