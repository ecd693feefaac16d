package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is an immutable snapshot of one cart line at checkout time.
// Addon selections are embedded as a JSONB snapshot, never re-read from the
// catalog.
type OrderItem struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	OrderID      uuid.UUID     `json:"order_id" db:"order_id"`
	ProductID    uuid.UUID     `json:"product_id" db:"product_id"`
	ProductName  string        `json:"product_name" db:"product_name"`
	Quantity     int           `json:"quantity" db:"quantity"`
	UnitPrice    float64       `json:"unit_price" db:"unit_price"`
	Addons       AddonSnapshot `json:"addons" db:"addons"`
	Instructions *string       `json:"instructions" db:"instructions"`
	TotalPrice   float64       `json:"total_price" db:"total_price"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
}
