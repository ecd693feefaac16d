package common

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Typed error taxonomy. Handlers map these onto HTTP statuses; services and
// repositories never return bare framework errors to callers.

// ValidationError rejects malformed input before any state mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NotFoundError covers both missing entities and entities owned by someone
// else, so existence is not leaked across owners.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ForbiddenError: authenticated but not authorized for this entity.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	if e.Reason == "" {
		return "forbidden"
	}
	return e.Reason
}

// IllegalStateError: the requested transition is not legal from the current
// state. Current is included so the caller can resynchronize.
type IllegalStateError struct {
	Current   string
	Requested string
}

func (e *IllegalStateError) Error() string {
	return fmt.Sprintf("cannot transition to %s from current status %s", e.Requested, e.Current)
}

// InsufficientStockError: requested quantity exceeds available stock.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// EmptyCartError: checkout attempted with no line items.
type EmptyCartError struct{}

func (e *EmptyCartError) Error() string {
	return "cart is empty"
}

// TransientError wraps database or transport failures the caller may retry.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// Transient wraps err as a TransientError unless it already carries one of
// the client-facing types above.
func Transient(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		ve *ValidationError
		nf *NotFoundError
		fe *ForbiddenError
		il *IllegalStateError
		is *InsufficientStockError
		ec *EmptyCartError
	)
	if errors.As(err, &ve) || errors.As(err, &nf) || errors.As(err, &fe) ||
		errors.As(err, &il) || errors.As(err, &is) || errors.As(err, &ec) {
		return err
	}
	return &TransientError{Op: op, Err: err}
}
