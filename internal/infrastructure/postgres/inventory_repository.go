package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-tiendas/internal/domain"
	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = "id, product_id, store_id, quantity, min_stock, created_at, updated_at"

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL
// (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func scanInventory(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	err := row.Scan(&rec.ID, &rec.ProductID, &rec.StoreID, &rec.Quantity, &rec.MinStock, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create persiste una nueva fila de inventario. El par (producto, tienda)
// es único; una carrera sobre el mismo par -> ErrDuplicateRecord.
func (r *InventoryRepo) Create(ctx context.Context, record *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory (id, product_id, store_id, quantity, min_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		record.ID, record.ProductID, record.StoreID, record.Quantity,
		record.MinStock, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateRecord
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// GetByID obtiene una fila de inventario por ID; nil si no existe.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE id = $1`
	rec, err := scanInventory(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return rec, nil
}

// GetByProductAndStore obtiene la fila del par (producto, tienda); nil si no existe.
func (r *InventoryRepo) GetByProductAndStore(ctx context.Context, productID, storeID string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE product_id = $1 AND store_id = $2`
	rec, err := scanInventory(r.q.QueryRow(ctx, query, productID, storeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory by product/store: %w", err)
	}
	return rec, nil
}

// GetForUpdate obtiene la fila del par y la bloquea (SELECT FOR UPDATE)
// hasta el fin de la transacción; nil si no existe.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, storeID string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE product_id = $1 AND store_id = $2 FOR UPDATE`
	rec, err := scanInventory(r.q.QueryRow(ctx, query, productID, storeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return rec, nil
}

// Update persiste cantidad y stock mínimo de una fila existente.
func (r *InventoryRepo) Update(ctx context.Context, record *entity.InventoryRecord) error {
	query := `
		UPDATE inventory SET quantity = $2, min_stock = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, record.ID, record.Quantity, record.MinStock, record.UpdatedAt)
	if err != nil {
		if isCheckViolation(err) {
			// La BD es la última línea: quantity/min_stock nunca negativos.
			return domain.ErrInvariantViolation
		}
		return fmt.Errorf("update inventory: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// Delete elimina una fila de inventario de forma permanente.
func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// ListByStore lista el inventario de una tienda en orden de inserción, paginado.
func (r *InventoryRepo) ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory WHERE store_id = $1
		ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory by store: %w", err)
	}
	defer rows.Close()
	return collectInventory(rows)
}

// ListLowStock lista las filas con quantity <= min_stock, ordenadas por
// tienda y producto para resultados deterministas.
func (r *InventoryRepo) ListLowStock(ctx context.Context) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory WHERE quantity <= min_stock
		ORDER BY store_id ASC, product_id ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return collectInventory(rows)
}

func collectInventory(rows pgx.Rows) ([]*entity.InventoryRecord, error) {
	var list []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.StoreID, &rec.Quantity, &rec.MinStock, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
