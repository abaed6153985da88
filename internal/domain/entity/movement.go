package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIN       = "IN"       // entrada (requiere tienda destino)
	MovementTypeOUT      = "OUT"      // salida (requiere tienda origen)
	MovementTypeTRANSFER = "TRANSFER" // traslado entre tiendas (requiere ambas)
)

// Movement representa un evento de stock. Es append-only: nunca se
// modifica ni se elimina después de creado.
type Movement struct {
	ID            string
	ProductID     string
	SourceStoreID *string // nil para IN puro
	TargetStoreID *string // nil para OUT puro
	Quantity      int     // siempre > 0
	Type          string
	Timestamp     time.Time // asignado por el servidor, UTC
}

// ValidStores verifica el invariante tienda/tipo del movimiento.
func (m *Movement) ValidStores() bool {
	switch m.Type {
	case MovementTypeIN:
		return m.TargetStoreID != nil
	case MovementTypeOUT:
		return m.SourceStoreID != nil
	case MovementTypeTRANSFER:
		return m.SourceStoreID != nil && m.TargetStoreID != nil
	}
	return false
}
