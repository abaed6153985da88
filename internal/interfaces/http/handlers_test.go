package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-tiendas/internal/application/dto"
	"github.com/jhoicas/inventario-tiendas/internal/application/inventory"
	"github.com/jhoicas/inventario-tiendas/internal/application/movement"
	"github.com/jhoicas/inventario-tiendas/internal/application/usecase"
	"github.com/jhoicas/inventario-tiendas/internal/domain"
	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
	"github.com/jhoicas/inventario-tiendas/internal/domain/store"
	"github.com/jhoicas/inventario-tiendas/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/inventario-tiendas/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para levantar la app completa sin Postgres.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testStore1    = "tienda-01"
	testStore2    = "tienda-02"
	testProductID = "11111111-1111-1111-1111-111111111111"
	testRecordID  = "22222222-2222-2222-2222-222222222222"
)

type memProductRepo struct {
	products map[string]*entity.Product
}

func (m *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	for _, existing := range m.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	c := *p
	m.products[p.ID] = &c
	return nil
}

func (m *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (m *memProductRepo) List(_ context.Context, _ repository.ProductFilter, _, _ int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(m.products))
	for _, p := range m.products {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (m *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	c := *p
	m.products[p.ID] = &c
	return nil
}

func (m *memProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

type memInventoryRepo struct {
	byID  map[string]*entity.InventoryRecord
	order []string
}

func cloneRec(r *entity.InventoryRecord) *entity.InventoryRecord {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

func (m *memInventoryRepo) find(productID, storeID string) *entity.InventoryRecord {
	for _, id := range m.order {
		r := m.byID[id]
		if r.ProductID == productID && r.StoreID == storeID {
			return r
		}
	}
	return nil
}

func (m *memInventoryRepo) Create(_ context.Context, record *entity.InventoryRecord) error {
	if m.find(record.ProductID, record.StoreID) != nil {
		return domain.ErrDuplicateRecord
	}
	m.byID[record.ID] = cloneRec(record)
	m.order = append(m.order, record.ID)
	return nil
}

func (m *memInventoryRepo) GetByID(_ context.Context, id string) (*entity.InventoryRecord, error) {
	return cloneRec(m.byID[id]), nil
}

func (m *memInventoryRepo) GetByProductAndStore(_ context.Context, productID, storeID string) (*entity.InventoryRecord, error) {
	return cloneRec(m.find(productID, storeID)), nil
}

func (m *memInventoryRepo) GetForUpdate(_ context.Context, productID, storeID string) (*entity.InventoryRecord, error) {
	return cloneRec(m.find(productID, storeID)), nil
}

func (m *memInventoryRepo) Update(_ context.Context, record *entity.InventoryRecord) error {
	if _, ok := m.byID[record.ID]; !ok {
		return domain.ErrRecordNotFound
	}
	m.byID[record.ID] = cloneRec(record)
	return nil
}

func (m *memInventoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(m.byID, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memInventoryRepo) ListByStore(_ context.Context, storeID string, _, _ int) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for _, id := range m.order {
		if r := m.byID[id]; r.StoreID == storeID {
			out = append(out, cloneRec(r))
		}
	}
	return out, nil
}

func (m *memInventoryRepo) ListLowStock(_ context.Context) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for _, id := range m.order {
		if r := m.byID[id]; r.Quantity <= r.MinStock {
			out = append(out, cloneRec(r))
		}
	}
	return out, nil
}

type memMovementRepo struct {
	movements []*entity.Movement
}

func (m *memMovementRepo) Create(_ context.Context, mov *entity.Movement) error {
	c := *mov
	m.movements = append(m.movements, &c)
	return nil
}

func (m *memMovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	for _, mov := range m.movements {
		if mov.ID == id {
			c := *mov
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memMovementRepo) List(_ context.Context, filter repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for i := len(m.movements) - 1; i >= 0; i-- {
		mov := m.movements[i]
		if filter.Type != nil && mov.Type != *filter.Type {
			continue
		}
		if filter.ProductID != nil && mov.ProductID != *filter.ProductID {
			continue
		}
		c := *mov
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

type memTxRunner struct {
	inv *memInventoryRepo
	mov *memMovementRepo
}

func (m *memTxRunner) Run(_ context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
) error) error {
	return fn(m.inv, m.mov)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: app Fiber completa con el router real sobre repos en memoria.
// ──────────────────────────────────────────────────────────────────────────────

type testApp struct {
	app      *fiber.App
	products *memProductRepo
	inv      *memInventoryRepo
	mov      *memMovementRepo
}

func buildTestApp() *testApp {
	products := &memProductRepo{products: make(map[string]*entity.Product)}
	inv := &memInventoryRepo{byID: make(map[string]*entity.InventoryRecord)}
	mov := &memMovementRepo{}
	tx := &memTxRunner{inv: inv, mov: mov}
	stores := store.NewDirectory([]string{testStore1, testStore2})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:   usecase.NewProductUseCase(products),
		InventoryUC: inventory.NewUseCase(tx, inv, products, stores),
		TransferUC:  inventory.NewTransferUseCase(tx, products, stores, 5),
		MovementUC:  movement.NewUseCase(mov, stores),
		ReportPDF:   pdf.NewLowStockReportGenerator(),
	})
	return &testApp{app: app, products: products, inv: inv, mov: mov}
}

func (ta *testApp) seedProduct() {
	now := time.Now().UTC()
	ta.products.products[testProductID] = &entity.Product{
		ID:        testProductID,
		Name:      "Café molido 500g",
		Category:  "alimentos",
		Price:     decimal.NewFromInt(25),
		SKU:       "CAF-500",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (ta *testApp) seedRecord(storeID string, quantity, minStock int) {
	now := time.Now().UTC()
	id := testRecordID
	if storeID != testStore1 {
		id = "33333333-3333-3333-3333-333333333333"
	}
	ta.inv.byID[id] = &entity.InventoryRecord{
		ID:        id,
		ProductID: testProductID,
		StoreID:   storeID,
		Quantity:  quantity,
		MinStock:  minStock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	ta.inv.order = append(ta.inv.order, id)
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslados
// ──────────────────────────────────────────────────────────────────────────────

func TestHTTPTransfer_Exito(t *testing.T) {
	ta := buildTestApp()
	ta.seedProduct()
	ta.seedRecord(testStore1, 10, 2)

	resp := doJSON(t, ta.app, fiber.MethodPost, "/api/inventory/transfer", dto.TransferRequest{
		ProductID:     testProductID,
		SourceStoreID: testStore1,
		TargetStoreID: testStore2,
		Quantity:      3,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decodeJSON[dto.TransferResponse](t, resp)
	assert.Equal(t, 7, out.SourceStore.Stock)
	assert.Equal(t, 3, out.TargetStore.Stock)
	assert.Equal(t, "transferencia completada con éxito", out.Message)
}

func TestHTTPTransfer_StockInsuficiente(t *testing.T) {
	ta := buildTestApp()
	ta.seedProduct()
	ta.seedRecord(testStore1, 4, 3)

	resp := doJSON(t, ta.app, fiber.MethodPost, "/api/inventory/transfer", dto.TransferRequest{
		ProductID:     testProductID,
		SourceStoreID: testStore1,
		TargetStoreID: testStore2,
		Quantity:      3,
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	out := decodeJSON[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
}

func TestHTTPTransfer_CantidadCero(t *testing.T) {
	ta := buildTestApp()

	resp := doJSON(t, ta.app, fiber.MethodPost, "/api/inventory/transfer", dto.TransferRequest{
		ProductID:     testProductID,
		SourceStoreID: testStore1,
		TargetStoreID: testStore2,
		Quantity:      0,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	out := decodeJSON[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", out.Code)
}

func TestHTTPTransfer_TiendaInvalida(t *testing.T) {
	ta := buildTestApp()
	ta.seedProduct()
	ta.seedRecord(testStore1, 10, 2)

	resp := doJSON(t, ta.app, fiber.MethodPost, "/api/inventory/transfer", dto.TransferRequest{
		ProductID:     testProductID,
		SourceStoreID: testStore1,
		TargetStoreID: "bodega-fantasma",
		Quantity:      3,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	out := decodeJSON[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INVALID_STORE", out.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro de inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestHTTPInventoryCreate_Duplicado(t *testing.T) {
	ta := buildTestApp()
	ta.seedProduct()
	ta.seedRecord(testStore1, 10, 2)

	resp := doJSON(t, ta.app, fiber.MethodPost, "/api/inventory", dto.CreateInventoryRequest{
		ProductID: testProductID,
		StoreID:   testStore1,
		Quantity:  5,
		MinStock:  2,
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	out := decodeJSON[dto.ErrorResponse](t, resp)
	assert.Equal(t, "DUPLICATE_RECORD", out.Code)
}

func TestHTTPInventoryListByStore_Vacio(t *testing.T) {
	ta := buildTestApp()

	resp := doJSON(t, ta.app, fiber.MethodGet, "/api/stores/"+testStore2+"/inventory", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "tienda válida sin inventario responde 200")
	out := decodeJSON[dto.InventoryListResponse](t, resp)
	assert.Empty(t, out.Items)
}

func TestHTTPInventoryAlerts(t *testing.T) {
	ta := buildTestApp()
	ta.seedProduct()
	ta.seedRecord(testStore1, 0, 5)

	resp := doJSON(t, ta.app, fiber.MethodGet, "/api/inventory/alerts", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decodeJSON[struct {
		Total  int                    `json:"total"`
		Alerts []dto.LowStockAlertDTO `json:"alerts"`
	}](t, resp)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, entity.SeverityCritical, out.Alerts[0].Severity)
}

func TestHTTPInventoryAlertsReport_PDF(t *testing.T) {
	ta := buildTestApp()
	ta.seedProduct()
	ta.seedRecord(testStore1, 2, 5)

	resp := doJSON(t, ta.app, fiber.MethodGet, "/api/inventory/alerts/report", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")), "el cuerpo debe ser un PDF")
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos y productos
// ──────────────────────────────────────────────────────────────────────────────

func TestHTTPMovements_ListaVaciaEs404(t *testing.T) {
	ta := buildTestApp()

	resp := doJSON(t, ta.app, fiber.MethodGet, "/api/movements", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	out := decodeJSON[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NO_MOVEMENTS", out.Code)
}

func TestHTTPMovements_CrearIN(t *testing.T) {
	ta := buildTestApp()
	target := testStore1

	resp := doJSON(t, ta.app, fiber.MethodPost, "/api/movements", dto.CreateMovementRequest{
		ProductID:     testProductID,
		TargetStoreID: &target,
		Quantity:      10,
		Type:          entity.MovementTypeIN,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	out := decodeJSON[dto.MovementResponse](t, resp)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, entity.MovementTypeIN, out.Type)
}

func TestHTTPMovements_FechaInvalida(t *testing.T) {
	ta := buildTestApp()

	resp := doJSON(t, ta.app, fiber.MethodGet, "/api/movements?date=03-2026", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHTTPProducts_GetNoExiste(t *testing.T) {
	ta := buildTestApp()

	resp := doJSON(t, ta.app, fiber.MethodGet, "/api/products/no-existe", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHTTPProducts_CrearYLeer(t *testing.T) {
	ta := buildTestApp()

	resp := doJSON(t, ta.app, fiber.MethodPost, "/api/products", dto.CreateProductRequest{
		Name:  "Café molido 500g",
		Price: decimal.NewFromInt(25),
		SKU:   "CAF-500",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decodeJSON[dto.ProductResponse](t, resp)

	resp = doJSON(t, ta.app, fiber.MethodGet, "/api/products/"+created.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decodeJSON[dto.ProductResponse](t, resp)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "CAF-500", got.SKU)
}
