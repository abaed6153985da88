package inventory_test

import (
	"context"

	"github.com/jhoicas/inventario-tiendas/internal/domain"
	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
	"github.com/jhoicas/inventario-tiendas/internal/domain/store"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test en memoria. Reproducen el contrato de los repositorios
// Postgres (clones al leer, errores centinela en escrituras inválidas) para
// que los casos de uso se prueben sin base de datos.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testStore1 = "tienda-01"
	testStore2 = "tienda-02"
	testStore3 = "tienda-03"
)

func testDirectory() *store.Directory {
	return store.NewDirectory([]string{testStore1, testStore2, testStore3})
}

// ── productos ─────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	for _, existing := range f.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	c := *p
	f.products[p.ID] = &c
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (f *fakeProductRepo) List(_ context.Context, _ repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(f.products))
	for _, p := range f.products {
		c := *p
		out = append(out, &c)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	c := *p
	f.products[p.ID] = &c
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

// ── inventario ────────────────────────────────────────────────────────────────

type fakeInventoryRepo struct {
	byID  map[string]*entity.InventoryRecord
	order []string // orden de inserción, para listados deterministas
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{byID: make(map[string]*entity.InventoryRecord)}
}

func cloneRecord(r *entity.InventoryRecord) *entity.InventoryRecord {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

func (f *fakeInventoryRepo) find(productID, storeID string) *entity.InventoryRecord {
	for _, id := range f.order {
		r := f.byID[id]
		if r.ProductID == productID && r.StoreID == storeID {
			return r
		}
	}
	return nil
}

func (f *fakeInventoryRepo) Create(_ context.Context, record *entity.InventoryRecord) error {
	if f.find(record.ProductID, record.StoreID) != nil {
		return domain.ErrDuplicateRecord
	}
	f.byID[record.ID] = cloneRecord(record)
	f.order = append(f.order, record.ID)
	return nil
}

func (f *fakeInventoryRepo) GetByID(_ context.Context, id string) (*entity.InventoryRecord, error) {
	return cloneRecord(f.byID[id]), nil
}

func (f *fakeInventoryRepo) GetByProductAndStore(_ context.Context, productID, storeID string) (*entity.InventoryRecord, error) {
	return cloneRecord(f.find(productID, storeID)), nil
}

func (f *fakeInventoryRepo) GetForUpdate(_ context.Context, productID, storeID string) (*entity.InventoryRecord, error) {
	return cloneRecord(f.find(productID, storeID)), nil
}

func (f *fakeInventoryRepo) Update(_ context.Context, record *entity.InventoryRecord) error {
	if _, ok := f.byID[record.ID]; !ok {
		return domain.ErrRecordNotFound
	}
	// Espejo de los CHECK de la tabla: ninguna columna negativa.
	if record.Quantity < 0 || record.MinStock < 0 {
		return domain.ErrInvariantViolation
	}
	f.byID[record.ID] = cloneRecord(record)
	return nil
}

func (f *fakeInventoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(f.byID, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeInventoryRepo) ListByStore(_ context.Context, storeID string, limit, offset int) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for _, id := range f.order {
		if r := f.byID[id]; r.StoreID == storeID {
			out = append(out, cloneRecord(r))
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeInventoryRepo) ListLowStock(_ context.Context) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for _, id := range f.order {
		if r := f.byID[id]; r.Quantity <= r.MinStock {
			out = append(out, cloneRecord(r))
		}
	}
	return out, nil
}

// ── movimientos ───────────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	movements []*entity.Movement
}

func newFakeMovementRepo() *fakeMovementRepo { return &fakeMovementRepo{} }

func cloneMovement(m *entity.Movement) *entity.Movement {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

func (f *fakeMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	f.movements = append(f.movements, cloneMovement(m))
	return nil
}

func (f *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	for _, m := range f.movements {
		if m.ID == id {
			return cloneMovement(m), nil
		}
	}
	return nil, nil
}

func (f *fakeMovementRepo) List(_ context.Context, filter repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	// Del más reciente al más antiguo, como el repositorio real.
	for i := len(f.movements) - 1; i >= 0; i-- {
		m := f.movements[i]
		if filter.ProductID != nil && m.ProductID != *filter.ProductID {
			continue
		}
		if filter.Type != nil && m.Type != *filter.Type {
			continue
		}
		if filter.DateFrom != nil && m.Timestamp.Before(*filter.DateFrom) {
			continue
		}
		if filter.StoreID != nil {
			matches := (m.SourceStoreID != nil && *m.SourceStoreID == *filter.StoreID) ||
				(m.TargetStoreID != nil && *m.TargetStoreID == *filter.StoreID)
			if !matches {
				continue
			}
		}
		out = append(out, cloneMovement(m))
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// ── tx runner ─────────────────────────────────────────────────────────────────

// fakeTxRunner invoca fn directamente sobre los repos en memoria.
// No simula rollback: los tests verifican los errores que ocurren antes de
// cualquier escritura, igual que hace el motor real bajo FOR UPDATE.
type fakeTxRunner struct {
	inv *fakeInventoryRepo
	mov *fakeMovementRepo
	err error // si no es nil, Run falla sin ejecutar fn
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(f.inv, f.mov)
}

// ── fixture ───────────────────────────────────────────────────────────────────

type fixture struct {
	products *fakeProductRepo
	inv      *fakeInventoryRepo
	mov      *fakeMovementRepo
	tx       *fakeTxRunner
	stores   *store.Directory
}

func newFixture() *fixture {
	inv := newFakeInventoryRepo()
	mov := newFakeMovementRepo()
	return &fixture{
		products: newFakeProductRepo(),
		inv:      inv,
		mov:      mov,
		tx:       &fakeTxRunner{inv: inv, mov: mov},
		stores:   testDirectory(),
	}
}

func (f *fixture) seedProduct(p *entity.Product) {
	c := *p
	f.products.products[p.ID] = &c
}

func (f *fixture) seedRecord(r *entity.InventoryRecord) {
	f.inv.byID[r.ID] = cloneRecord(r)
	f.inv.order = append(f.inv.order, r.ID)
}
