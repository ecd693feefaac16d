package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	CustomerIDKey contextKey = "customer_id"
	VendorIDKey   contextKey = "vendor_id"
	RoleKey       contextKey = "role"
)

// Roles supplied by the authentication layer.
const (
	RoleCustomer   = "customer"
	RoleVendor     = "vendor"
	RoleSuperadmin = "superadmin"
)

// GetCustomerIDFromContext extracts the authenticated customer ID.
func GetCustomerIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(CustomerIDKey).(uuid.UUID)
	return id, ok
}

// GetVendorIDFromContext extracts the authenticated vendor ID.
func GetVendorIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(VendorIDKey).(uuid.UUID)
	return id, ok
}

// GetRoleFromContext extracts the authenticated role.
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendError maps the typed error taxonomy onto HTTP responses.
func SendError(c echo.Context, err error) error {
	var (
		ve *ValidationError
		nf *NotFoundError
		fe *ForbiddenError
		il *IllegalStateError
		is *InsufficientStockError
		ec *EmptyCartError
		tr *TransientError
	)
	switch {
	case errors.As(err, &ve):
		details := map[string]string{}
		if ve.Field != "" {
			details[ve.Field] = ve.Reason
		}
		return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", ve.Error(), details))
	case errors.As(err, &nf):
		return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", nf.Error(), nil))
	case errors.As(err, &fe):
		return c.JSON(http.StatusForbidden, CreateErrorResponse("FORBIDDEN", fe.Error(), nil))
	case errors.As(err, &il):
		return c.JSON(http.StatusBadRequest, CreateErrorResponse("ILLEGAL_STATE", il.Error(),
			map[string]string{"current_status": il.Current}))
	case errors.As(err, &is):
		return c.JSON(http.StatusConflict, CreateErrorResponse("INSUFFICIENT_STOCK", is.Error(), nil))
	case errors.As(err, &ec):
		return c.JSON(http.StatusBadRequest, CreateErrorResponse("EMPTY_CART", ec.Error(), nil))
	case errors.As(err, &tr):
		return c.JSON(http.StatusServiceUnavailable, CreateErrorResponse("TRANSIENT_ERROR", "service temporarily unavailable", nil))
	default:
		return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", "operation could not be completed", nil))
	}
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendUnauthorizedError sends an unauthorized error response
func SendUnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, CreateErrorResponse("UNAUTHORIZED", "Unauthorized access", nil))
}

// ValidateUUID validates UUID format
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	if strings.TrimSpace(idStr) == "" {
		return uuid.Nil, &ValidationError{Field: fieldName, Reason: "is required"}
	}
	id, err := uuid.Parse(strings.TrimSpace(idStr))
	if err != nil {
		return uuid.Nil, &ValidationError{Field: fieldName, Reason: "invalid UUID format"}
	}
	return id, nil
}

// ValidatePaginationParams validates pagination parameters
func ValidatePaginationParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50 // Default
	}
	if limit > 200 {
		limit = 200 // Maximum
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ValidateQuantity validates line item quantities.
func ValidateQuantity(qty int) error {
	if qty < 1 {
		return &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	if qty > 100 {
		return &ValidationError{Field: "quantity", Reason: "cannot exceed 100 per line"}
	}
	return nil
}

// ValidatePaymentMethod validates checkout payment methods.
func ValidatePaymentMethod(method string) error {
	switch method {
	case "cash", "gcash", "online":
		return nil
	}
	return &ValidationError{
		Field:  "payment_method",
		Reason: fmt.Sprintf("must be one of: cash, gcash, online (got %q)", method),
	}
}

// SafeString safely handles string pointer operations
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
