package dto

import "time"

// CreateMovementRequest body para POST /api/movements.
// El servidor asigna id y timestamp; nunca se aceptan del cliente.
type CreateMovementRequest struct {
	ProductID     string  `json:"product_id"`
	SourceStoreID *string `json:"source_store_id,omitempty"`
	TargetStoreID *string `json:"target_store_id,omitempty"`
	Quantity      int     `json:"quantity"`
	Type          string  `json:"type"` // IN, OUT, TRANSFER
}

// MovementResponse representación de un movimiento en respuestas.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	SourceStoreID *string   `json:"source_store_id"`
	TargetStoreID *string   `json:"target_store_id"`
	Quantity      int       `json:"quantity"`
	Type          string    `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
}

// MovementListResponse página de movimientos (del más reciente al más antiguo).
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
