package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-tiendas/internal/application/dto"
	"github.com/jhoicas/inventario-tiendas/internal/application/inventory"
	"github.com/jhoicas/inventario-tiendas/internal/domain"
	"github.com/jhoicas/inventario-tiendas/internal/infrastructure/pdf"
)

// InventoryHandler maneja las peticiones HTTP del libro de inventario y los traslados.
type InventoryHandler struct {
	uc       *inventory.UseCase
	transfer *inventory.TransferUseCase
	report   *pdf.LowStockReportGenerator
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase, transfer *inventory.TransferUseCase, report *pdf.LowStockReportGenerator) *InventoryHandler {
	return &InventoryHandler{uc: uc, transfer: transfer, report: report}
}

// Create godoc
// @Summary      Crear entrada de inventario
// @Description  Registra la primera entrada de stock de un producto en una tienda y genera un movimiento IN.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "product_id, store_id, quantity, min_stock"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener registro de inventario por ID
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/item/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(out)
}

// ListByStore godoc
// @Summary      Listar inventario de una tienda
// @Description  Una tienda sin inventario devuelve la lista vacía, no un error.
// @Tags         inventory
// @Produce      json
// @Param        store_id  path   string  true   "ID de la tienda"
// @Param        limit     query  int     false  "Límite"   default(20)
// @Param        offset    query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stores/{store_id}/inventory [get]
func (h *InventoryHandler) ListByStore(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListByStore(c.Context(), c.Params("store_id"), page)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar registro de inventario
// @Description  Actualización parcial; el invariante quantity >= min_stock se revalida con los valores resultantes.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del registro"
// @Param        body  body  dto.UpdateInventoryRequest  true  "quantity y/o min_stock"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar registro de inventario
// @Description  Corrección administrativa: no genera movimiento.
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(fiber.Map{"message": "inventario eliminado correctamente"})
}

// Transfer godoc
// @Summary      Transferir stock entre tiendas
// @Description  Debita la tienda de origen y acredita la de destino en una sola transacción,
//
//	registrando un movimiento TRANSFER. El origen debe quedar estrictamente por
//	encima de su stock mínimo.
//
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "product_id, source_store_id, target_store_id, quantity"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfer [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser mayor a 0"})
	}
	out, err := h.transfer.Transfer(c.Context(), in)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Alertas de stock bajo
// @Description  Filas con quantity <= min_stock; severidad "critical" cuando la cantidad es 0, "low" en el resto.
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.LowStockAlertDTO
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	alerts, err := h.uc.LowStockAlerts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(alerts), "alerts": alerts})
}

// AlertsReport godoc
// @Summary      Reporte PDF de alertas de stock bajo
// @Tags         inventory
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/inventory/alerts/report [get]
func (h *InventoryHandler) AlertsReport(c *fiber.Ctx) error {
	alerts, err := h.uc.LowStockAlerts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	doc, err := h.report.Generate(alerts, time.Now().UTC())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="alertas-stock-bajo.pdf"`)
	return c.Send(doc)
}

// inventoryError traduce los errores de dominio del libro de inventario a HTTP.
func inventoryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "el producto no está registrado en la base de datos"})
	case errors.Is(err, domain.ErrInvalidStore):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STORE", Message: "tienda no registrada"})
	case errors.Is(err, domain.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "RECORD_NOT_FOUND", Message: "registro de inventario no encontrado"})
	case errors.Is(err, domain.ErrDuplicateRecord):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_RECORD", Message: "el producto ya está registrado en esta tienda"})
	case errors.Is(err, domain.ErrInvariantViolation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVARIANT_VIOLATION", Message: "la cantidad no puede ser menor al stock mínimo"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente en la tienda de origen"})
	case errors.Is(err, domain.ErrConcurrentModification):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENT_MODIFICATION", Message: "conflicto de concurrencia, reintente la operación"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
