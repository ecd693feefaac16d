package handlers

import (
	"context"
	"net/http"

	"foodcourt/internal/common"
	"foodcourt/internal/models"
	"foodcourt/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// VendorOrderHandlers handles HTTP requests for vendor-side order management
type VendorOrderHandlers struct {
	orderService services.OrderServiceInterface
}

// NewVendorOrderHandlers creates a new vendor order handlers instance
func NewVendorOrderHandlers(orderService services.OrderServiceInterface) *VendorOrderHandlers {
	return &VendorOrderHandlers{orderService: orderService}
}

func (h *VendorOrderHandlers) vendorAndOrder(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	vendorID, ok := common.GetVendorIDFromContext(c.Request().Context())
	if !ok {
		return uuid.Nil, uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "Vendor not found")
	}
	orderID, err := common.ValidateUUID(c.Param("id"), "order_id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return vendorID, orderID, nil
}

// ListOrders handles GET /v1/vendor/orders
func (h *VendorOrderHandlers) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	vendorID, ok := common.GetVendorIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	filter, err := orderFilterFromQuery(c)
	if err != nil {
		return common.SendError(c, err)
	}

	orders, err := h.orderService.ListVendorOrders(ctx, vendorID, filter)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// GetOrder handles GET /v1/vendor/orders/:id
func (h *VendorOrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	vendorID, orderID, err := h.vendorAndOrder(c)
	if err != nil {
		return common.SendError(c, err)
	}

	order, err := h.orderService.GetVendorOrder(ctx, vendorID, orderID)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}

// AcceptOrder handles POST /v1/vendor/orders/:id/accept
func (h *VendorOrderHandlers) AcceptOrder(c echo.Context) error {
	return h.transition(c, h.orderService.Accept, "Order accepted")
}

// DeclineOrder handles POST /v1/vendor/orders/:id/decline
func (h *VendorOrderHandlers) DeclineOrder(c echo.Context) error {
	return h.transition(c, h.orderService.Decline, "Order declined")
}

// MarkReady handles POST /v1/vendor/orders/:id/ready
func (h *VendorOrderHandlers) MarkReady(c echo.Context) error {
	return h.transition(c, h.orderService.MarkReady, "Order ready for pickup")
}

func (h *VendorOrderHandlers) transition(c echo.Context,
	fn func(ctx context.Context, vendorID, orderID uuid.UUID) (*models.Order, error), message string) error {
	ctx := c.Request().Context()

	vendorID, orderID, err := h.vendorAndOrder(c)
	if err != nil {
		return common.SendError(c, err)
	}

	order, err := fn(ctx, vendorID, orderID)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": message,
		"order":   order,
	})
}
