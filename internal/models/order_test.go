package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusAccepted, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusReadyForPickup, false},
		{OrderStatusAccepted, OrderStatusReadyForPickup, true},
		{OrderStatusAccepted, OrderStatusCancelled, false},
		{OrderStatusAccepted, OrderStatusPending, false},
		{OrderStatusReadyForPickup, OrderStatusPending, false},
		{OrderStatusReadyForPickup, OrderStatusAccepted, false},
		{OrderStatusReadyForPickup, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusAccepted, false},
		{OrderStatusCancelled, OrderStatusReadyForPickup, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.Terminal())
	assert.False(t, OrderStatusAccepted.Terminal())
	assert.True(t, OrderStatusReadyForPickup.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderStatusPending.Valid())
	assert.True(t, OrderStatusCancelled.Valid())
	assert.False(t, OrderStatus("completed").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestStatusMessage(t *testing.T) {
	// Declines and cancellations share one message. The customer always
	// sees the decline wording regardless of who ended the order.
	assert.Contains(t, StatusMessage(OrderStatusCancelled), "declined by the vendor")
	assert.NotEmpty(t, StatusMessage(OrderStatusPending))
	assert.NotEmpty(t, StatusMessage(OrderStatusAccepted))
	assert.NotEmpty(t, StatusMessage(OrderStatusReadyForPickup))
	assert.Empty(t, StatusMessage(OrderStatus("unknown")))
}
