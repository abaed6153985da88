package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El stock no vive aquí:
// se maneja por tienda en InventoryRecord.
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal // precio de venta, siempre > 0
	SKU         string          // código único, no vacío
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
