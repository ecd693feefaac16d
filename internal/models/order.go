package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the closed set of order lifecycle states.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusAccepted       OrderStatus = "accepted"
	OrderStatusReadyForPickup OrderStatus = "ready_for_pickup"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// orderTransitions is the canonical transition table. ready_for_pickup and
// cancelled are terminal; ready_for_pickup doubles as the completed state.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusAccepted, OrderStatusCancelled},
	OrderStatusAccepted:       {OrderStatusReadyForPickup},
	OrderStatusReadyForPickup: {},
	OrderStatusCancelled:      {},
}

// Valid reports whether s is one of the four known statuses.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo reports whether the transition s -> next is legal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// statusMessages is the single display-text lookup used everywhere a
// customer-facing status message is needed.
var statusMessages = map[OrderStatus]string{
	OrderStatusPending:        "Your order has been received and is waiting for the vendor.",
	OrderStatusAccepted:       "Your order has been accepted and is being prepared.",
	OrderStatusReadyForPickup: "Your order is ready for pickup.",
	OrderStatusCancelled:      "Your order was declined by the vendor or cancelled.",
}

// StatusMessage returns the fixed customer-facing message for a status.
// Unknown statuses return an empty string.
func StatusMessage(s OrderStatus) string {
	return statusMessages[s]
}

// Payment methods accepted at checkout.
const (
	PaymentMethodCash   = "cash"
	PaymentMethodGCash  = "gcash"
	PaymentMethodOnline = "online"
)

type Order struct {
	ID                  uuid.UUID   `json:"id" db:"id"`
	OrderNumber         string      `json:"order_number" db:"order_number"`
	CustomerID          uuid.UUID   `json:"customer_id" db:"customer_id"`
	VendorID            uuid.UUID   `json:"vendor_id" db:"vendor_id"`
	Status              OrderStatus `json:"status" db:"status"`
	TotalAmount         float64     `json:"total_amount" db:"total_amount"`
	PaymentMethod       string      `json:"payment_method" db:"payment_method"`
	TableNumber         *int        `json:"table_number" db:"table_number"`
	SpecialInstructions *string     `json:"special_instructions" db:"special_instructions"`
	PaymentProofPath    *string     `json:"payment_proof_path" db:"payment_proof_path"`
	ReceiptPath         *string     `json:"receipt_path" db:"receipt_path"`
	CompletedAt         *time.Time  `json:"completed_at" db:"completed_at"`
	CreatedAt           time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at" db:"updated_at"`

	Items []*OrderItem `json:"items,omitempty" db:"-"`
}

// OrderListFilter holds filter criteria for order list queries.
type OrderListFilter struct {
	Status *OrderStatus `json:"status,omitempty"`
	Limit  int          `json:"limit,omitempty"`  // Page size (default: 50)
	Offset int          `json:"offset,omitempty"` // Page offset
}
