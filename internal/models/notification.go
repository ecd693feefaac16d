package models

import (
	"time"

	"github.com/google/uuid"
)

// RecipientType identifies which side of the marketplace owns a notification.
type RecipientType string

const (
	RecipientVendor   RecipientType = "vendor"
	RecipientCustomer RecipientType = "customer"
)

// NotificationType categorizes ledger entries.
type NotificationType string

const (
	NotificationTypeOrder   NotificationType = "order"
	NotificationTypePayment NotificationType = "payment"
	NotificationTypeSystem  NotificationType = "system"
	NotificationTypeGeneral NotificationType = "general"
)

// Valid reports whether t is a known notification type.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeOrder, NotificationTypePayment, NotificationTypeSystem, NotificationTypeGeneral:
		return true
	}
	return false
}

// Recipient is the (type, id) pair every ledger operation is scoped to.
type Recipient struct {
	Type RecipientType
	ID   uuid.UUID
}

// Notification is one durable ledger row, owned by exactly one recipient.
type Notification struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	RecipientType RecipientType    `json:"recipient_type" db:"recipient_type"`
	RecipientID   uuid.UUID        `json:"recipient_id" db:"recipient_id"`
	Type          NotificationType `json:"type" db:"type"`
	Title         string           `json:"title" db:"title"`
	Message       string           `json:"message" db:"message"`
	OrderID       *uuid.UUID       `json:"order_id" db:"order_id"`
	IsRead        bool             `json:"is_read" db:"is_read"`
	ReadAt        *time.Time       `json:"read_at" db:"read_at"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
}

// NotificationFilter holds filter criteria for ledger list queries.
type NotificationFilter struct {
	Type       *NotificationType `json:"type,omitempty"`
	UnreadOnly bool              `json:"unread_only,omitempty"`
	Limit      int               `json:"limit,omitempty"`  // Page size (default: 50)
	Offset     int               `json:"offset,omitempty"` // Page offset
}
