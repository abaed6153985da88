package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-tiendas/internal/application/inventory"
	"github.com/jhoicas/inventario-tiendas/internal/application/movement"
	"github.com/jhoicas/inventario-tiendas/internal/application/usecase"
	"github.com/jhoicas/inventario-tiendas/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	InventoryUC *inventory.UseCase
	TransferUC  *inventory.TransferUseCase
	MovementUC  *movement.UseCase
	ReportPDF   *pdf.LowStockReportGenerator
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo de productos
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Libro de inventario y traslados
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.TransferUC, deps.ReportPDF)
	inv := api.Group("/inventory")
	inv.Post("/", inventoryHandler.Create)
	inv.Post("/transfer", inventoryHandler.Transfer)
	inv.Get("/alerts", inventoryHandler.Alerts)
	inv.Get("/alerts/report", inventoryHandler.AlertsReport)
	inv.Get("/item/:id", inventoryHandler.GetByID)
	inv.Put("/:id", inventoryHandler.Update)
	inv.Delete("/:id", inventoryHandler.Delete)
	api.Get("/stores/:store_id/inventory", inventoryHandler.ListByStore)

	// Log de movimientos
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
}
