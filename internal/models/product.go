package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID            uuid.UUID `json:"id" db:"id"`
	VendorID      uuid.UUID `json:"vendor_id" db:"vendor_id"`
	Name          string    `json:"name" db:"name"`
	Description   *string   `json:"description" db:"description"`
	Price         float64   `json:"price" db:"price"`
	StockQuantity int       `json:"stock_quantity" db:"stock_quantity"`
	IsAvailable   bool      `json:"is_available" db:"is_available"`
	ImagePath     *string   `json:"image_path" db:"image_path"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	Addons []*Addon `json:"addons,omitempty" db:"-"`
}

// Addon is an optional priced modifier offered for a product. Prices here are
// catalog prices; carts and orders keep their own snapshots.
type Addon struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
