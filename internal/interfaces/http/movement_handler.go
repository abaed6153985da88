package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-tiendas/internal/application/dto"
	"github.com/jhoicas/inventario-tiendas/internal/application/movement"
	"github.com/jhoicas/inventario-tiendas/internal/domain"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
)

// MovementHandler maneja las peticiones HTTP del log de movimientos.
type MovementHandler struct {
	uc *movement.UseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *movement.UseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar movimiento
// @Description  IN exige target_store_id, OUT exige source_store_id, TRANSFER exige ambos.
//
//	El id y el timestamp los asigna el servidor.
//
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Datos del movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Append(c.Context(), in)
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Description  Del más reciente al más antiguo. store_id coincide contra origen o destino.
//
//	Un resultado vacío devuelve 404.
//
// @Tags         movements
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        type        query  string  false  "Filtrar por tipo (IN, OUT, TRANSFER)"
// @Param        date        query  string  false  "Movimientos desde esta fecha (YYYY-MM-DD)"
// @Param        store_id    query  string  false  "Filtrar por tienda (origen o destino)"
// @Param        limit       query  int     false  "Límite"   default(20)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var filter repository.MovementFilter
	if v := c.Query("product_id"); v != "" {
		filter.ProductID = &v
	}
	if v := c.Query("type"); v != "" {
		filter.Type = &v
	}
	if v := c.Query("date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date inválida, formato YYYY-MM-DD"})
		}
		filter.DateFrom = &d
	}
	if v := c.Query("store_id"); v != "" {
		filter.StoreID = &v
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.Context(), filter, page)
	if err != nil {
		return movementError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movements
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return movementError(c, err)
	}
	return c.JSON(out)
}

// movementError traduce los errores de dominio del log de movimientos a HTTP.
func movementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidMovement):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_MOVEMENT", Message: "movimiento inválido para el tipo indicado"})
	case errors.Is(err, domain.ErrInvalidStore):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STORE", Message: "tienda no registrada"})
	case errors.Is(err, domain.ErrMovementNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
	case errors.Is(err, domain.ErrNoMovementsFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_MOVEMENTS", Message: "no hay movimientos registrados"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
