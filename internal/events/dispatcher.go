package events

import (
	"context"
	"log"

	"foodcourt/internal/models"
)

// Dispatcher fans committed state transitions out to the interested private
// channels. Delivery is at-most-once and best-effort: every publish error is
// logged and swallowed, and nothing here may run before the owning database
// transaction has committed. The notification ledger is the durable fallback
// for recipients that miss a publish.
type Dispatcher struct {
	publisher Publisher
}

func NewDispatcher(publisher Publisher) *Dispatcher {
	return &Dispatcher{publisher: publisher}
}

// PublishOrderReceived notifies the vendor of a freshly placed order. Fires
// only for pending orders.
func (d *Dispatcher) PublishOrderReceived(ctx context.Context, order *models.Order) {
	if order.Status != models.OrderStatusPending {
		return
	}
	event := OrderReceived{Order: order}
	d.publish(ctx, VendorOrdersChannel(order.VendorID), EventOrderReceived, event.Payload())
}

// PublishStatusChanged notifies both parties of a committed transition.
// Statuses outside the canonical set are dropped.
func (d *Dispatcher) PublishStatusChanged(ctx context.Context, order *models.Order, oldStatus, newStatus models.OrderStatus) {
	if !newStatus.Valid() {
		log.Printf("dispatcher: dropping status change to unknown status %q for order %s", newStatus, order.OrderNumber)
		return
	}
	event := OrderStatusChanged{Order: order, OldStatus: oldStatus, NewStatus: newStatus}
	payload := event.Payload()
	d.publish(ctx, VendorOrdersChannel(order.VendorID), EventStatusChanged, payload)
	d.publish(ctx, CustomerOrdersChannel(order.CustomerID), EventStatusChanged, payload)
}

// PublishReceiptReady notifies the customer that the receipt object exists.
func (d *Dispatcher) PublishReceiptReady(ctx context.Context, order *models.Order, receiptPath string) {
	event := ReceiptReady{Order: order, ReceiptPath: receiptPath}
	d.publish(ctx, CustomerOrdersChannel(order.CustomerID), EventReceiptReady, event.Payload())
}

// PublishNewNotification mirrors a ledger row onto the recipient's channel.
func (d *Dispatcher) PublishNewNotification(ctx context.Context, n *models.Notification) {
	event := NewNotification{Notification: n}
	channel := CustomerOrdersChannel(n.RecipientID)
	if n.RecipientType == models.RecipientVendor {
		channel = VendorNotificationsChannel(n.RecipientID)
	}
	d.publish(ctx, channel, EventNewNotification, event.Payload())
}

func (d *Dispatcher) publish(ctx context.Context, channel, eventName string, payload any) {
	if err := d.publisher.Publish(ctx, channel, eventName, payload); err != nil {
		log.Printf("dispatcher: publish %s to %s failed: %v", eventName, channel, err)
	}
}
