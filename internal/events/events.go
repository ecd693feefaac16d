package events

import (
	"fmt"

	"foodcourt/internal/models"

	"github.com/google/uuid"
)

// Event names on the wire.
const (
	EventOrderReceived   = "order.received"
	EventStatusChanged   = "order.status_changed"
	EventReceiptReady    = "order.receipt_ready"
	EventNewNotification = "notification.new"
)

// Channel naming convention. Each channel is scoped to exactly one
// recipient identity; subscription access control lives outside this core.
func VendorOrdersChannel(vendorID uuid.UUID) string {
	return fmt.Sprintf("vendor-orders.%s", vendorID)
}

func CustomerOrdersChannel(customerID uuid.UUID) string {
	return fmt.Sprintf("customer-orders.%s", customerID)
}

func VendorNotificationsChannel(vendorID uuid.UUID) string {
	return fmt.Sprintf("vendor-notifications.%s", vendorID)
}

// OrderReceived is published to the vendor when a new order lands.
type OrderReceived struct {
	Order *models.Order
}

func (e OrderReceived) Payload() map[string]any {
	items := make([]map[string]any, 0, len(e.Order.Items))
	for _, it := range e.Order.Items {
		items = append(items, map[string]any{
			"product_name": it.ProductName,
			"quantity":     it.Quantity,
			"unit_price":   it.UnitPrice,
			"addons":       it.Addons,
			"total_price":  it.TotalPrice,
		})
	}
	return map[string]any{
		"order_id":       e.Order.ID,
		"order_number":   e.Order.OrderNumber,
		"status":         e.Order.Status,
		"total_amount":   e.Order.TotalAmount,
		"payment_method": e.Order.PaymentMethod,
		"table_number":   e.Order.TableNumber,
		"items":          items,
	}
}

// OrderStatusChanged is published to both the vendor and the customer after
// a committed transition.
type OrderStatusChanged struct {
	Order     *models.Order
	OldStatus models.OrderStatus
	NewStatus models.OrderStatus
}

func (e OrderStatusChanged) Payload() map[string]any {
	return map[string]any{
		"order_id":     e.Order.ID,
		"order_number": e.Order.OrderNumber,
		"old_status":   e.OldStatus,
		"new_status":   e.NewStatus,
		"message":      models.StatusMessage(e.NewStatus),
	}
}

// ReceiptReady is published to the customer once a completed order's receipt
// object exists.
type ReceiptReady struct {
	Order       *models.Order
	ReceiptPath string
}

func (e ReceiptReady) Payload() map[string]any {
	return map[string]any{
		"order_id":     e.Order.ID,
		"order_number": e.Order.OrderNumber,
		"receipt_path": e.ReceiptPath,
	}
}

// NewNotification mirrors a ledger row onto the recipient's channel.
type NewNotification struct {
	Notification *models.Notification
}

func (e NewNotification) Payload() map[string]any {
	return map[string]any{
		"id":       e.Notification.ID,
		"type":     e.Notification.Type,
		"title":    e.Notification.Title,
		"message":  e.Notification.Message,
		"order_id": e.Notification.OrderID,
	}
}
