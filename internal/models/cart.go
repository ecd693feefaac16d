package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Cart holds a customer's in-progress line items for one vendor.
// At most one cart exists per (customer_id, vendor_id).
type Cart struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CustomerID uuid.UUID `json:"customer_id" db:"customer_id"`
	VendorID   uuid.UUID `json:"vendor_id" db:"vendor_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`

	Items []*CartItem `json:"items,omitempty" db:"-"`
}

// SelectedAddon is a priced modifier captured at selection time. Later
// catalog price changes never alter it.
type SelectedAddon struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price float64   `json:"price"`
}

// AddonSnapshot is the JSONB column type holding selected addons.
type AddonSnapshot []SelectedAddon

// Total sums the addon prices of the snapshot.
func (a AddonSnapshot) Total() float64 {
	var sum float64
	for _, ad := range a {
		sum += ad.Price
	}
	return sum
}

// Key returns an order-insensitive identity for the addon set, used for
// cart line merging.
func (a AddonSnapshot) Key() string {
	ids := make([]string, 0, len(a))
	for _, ad := range a {
		ids = append(ids, ad.ID.String())
	}
	sort.Strings(ids)
	key := ""
	for _, id := range ids {
		key += id + ","
	}
	return key
}

// CartItem is one product selection inside a cart. UnitPrice and Addons are
// immutable snapshots taken when the line was added.
type CartItem struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	CartID       uuid.UUID     `json:"cart_id" db:"cart_id"`
	ProductID    uuid.UUID     `json:"product_id" db:"product_id"`
	ProductName  string        `json:"product_name" db:"product_name"`
	Quantity     int           `json:"quantity" db:"quantity"`
	UnitPrice    float64       `json:"unit_price" db:"unit_price"`
	Addons       AddonSnapshot `json:"addons" db:"addons"`
	Instructions *string       `json:"instructions" db:"instructions"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// LineTotal computes (unit_price + addon prices) * quantity from the snapshot.
func (ci *CartItem) LineTotal() float64 {
	return (ci.UnitPrice + ci.Addons.Total()) * float64(ci.Quantity)
}

// MergeKey identifies lines eligible for quantity merging: same product,
// same addon set, same instructions.
func (ci *CartItem) MergeKey() string {
	instr := ""
	if ci.Instructions != nil {
		instr = *ci.Instructions
	}
	return ci.ProductID.String() + "|" + ci.Addons.Key() + "|" + instr
}

// CartSnapshot is the read-only materialization of a cart handed to checkout.
type CartSnapshot struct {
	CartID     uuid.UUID   `json:"cart_id"`
	CustomerID uuid.UUID   `json:"customer_id"`
	VendorID   uuid.UUID   `json:"vendor_id"`
	Lines      []*CartItem `json:"lines"`
	Subtotal   float64     `json:"subtotal"`
}
