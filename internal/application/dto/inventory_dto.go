package dto

import "time"

// CreateInventoryRequest body para POST /api/inventory.
// La cantidad inicial no puede ser menor al stock mínimo.
type CreateInventoryRequest struct {
	ProductID string `json:"product_id"`
	StoreID   string `json:"store_id"`
	Quantity  int    `json:"quantity"`
	MinStock  int    `json:"min_stock"`
}

// UpdateInventoryRequest body para PUT /api/inventory/:id.
// Solo cambian los campos presentes; el invariante quantity >= min_stock
// se revalida con los valores resultantes.
type UpdateInventoryRequest struct {
	Quantity *int `json:"quantity,omitempty"`
	MinStock *int `json:"min_stock,omitempty"`
}

// InventoryResponse representación de un registro de inventario.
type InventoryResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	StoreID   string    `json:"store_id"`
	Quantity  int       `json:"quantity"`
	MinStock  int       `json:"min_stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InventoryListResponse página de registros de inventario de una tienda.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// TransferRequest body para POST /api/inventory/transfer.
type TransferRequest struct {
	ProductID     string `json:"product_id"`
	SourceStoreID string `json:"source_store_id"`
	TargetStoreID string `json:"target_store_id"`
	Quantity      int    `json:"quantity"`
}

// TransferStoreResult stock resultante en una de las dos tiendas del traslado.
type TransferStoreResult struct {
	StoreID string `json:"store_id"`
	Stock   int    `json:"stock"`
}

// TransferResponse resumen de un traslado completado.
type TransferResponse struct {
	Message     string              `json:"message"`
	SourceStore TransferStoreResult `json:"source_store"`
	TargetStore TransferStoreResult `json:"target_store"`
}

// LowStockAlertDTO una fila de la lista de alertas de stock bajo.
type LowStockAlertDTO struct {
	ProductID string `json:"product_id"`
	StoreID   string `json:"store_id"`
	Quantity  int    `json:"quantity"`
	MinStock  int    `json:"min_stock"`
	Severity  string `json:"severity"` // critical | low
}
