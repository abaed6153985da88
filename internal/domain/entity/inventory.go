package entity

import "time"

// InventoryRecord representa el stock actual de un producto en una tienda.
// Invariante: a lo sumo una fila por (producto, tienda); Quantity y MinStock nunca negativos.
type InventoryRecord struct {
	ID        string
	ProductID string
	StoreID   string
	Quantity  int
	MinStock  int // umbral de alerta de stock bajo
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Severidades para alertas de stock bajo.
const (
	SeverityCritical = "critical" // quantity == 0
	SeverityLow      = "low"      // 0 < quantity <= min_stock
)

// AlertSeverity devuelve la severidad de alerta para el registro.
// Solo tiene sentido cuando Quantity <= MinStock.
func (r *InventoryRecord) AlertSeverity() string {
	if r.Quantity == 0 {
		return SeverityCritical
	}
	return SeverityLow
}
