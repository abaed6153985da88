package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El handler HTTP los traduce a códigos 4xx; cualquier otro error es 500.
var (
	ErrProductNotFound        = errors.New("producto no encontrado")
	ErrInvalidStore           = errors.New("tienda no registrada")
	ErrRecordNotFound         = errors.New("registro de inventario no encontrado")
	ErrDuplicateRecord        = errors.New("el producto ya está registrado en esta tienda")
	ErrInvariantViolation     = errors.New("la cantidad no puede ser menor al stock mínimo")
	ErrInsufficientStock      = errors.New("stock insuficiente en la tienda de origen")
	ErrInvalidMovement        = errors.New("movimiento inválido para el tipo indicado")
	ErrMovementNotFound       = errors.New("movimiento no encontrado")
	ErrNoMovementsFound       = errors.New("no hay movimientos registrados")
	ErrConcurrentModification = errors.New("conflicto de concurrencia, reintentos agotados")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrInvalidInput           = errors.New("entrada inválida")
)
