package handlers

import (
	"net/http"
	"strings"

	"foodcourt/internal/common"
	"foodcourt/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CartHandlers handles HTTP requests for the customer cart
type CartHandlers struct {
	cartService services.CartServiceInterface
}

// NewCartHandlers creates a new cart handlers instance
func NewCartHandlers(cartService services.CartServiceInterface) *CartHandlers {
	return &CartHandlers{cartService: cartService}
}

// GetCart handles GET /v1/cart/:vendorId
func (h *CartHandlers) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, ok := common.GetCustomerIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	vendorID, err := common.ValidateUUID(c.Param("vendorId"), "vendor_id")
	if err != nil {
		return common.SendError(c, err)
	}

	snapshot, err := h.cartService.Get(ctx, customerID, vendorID)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, snapshot)
}

// AddItem handles POST /v1/cart/items. The vendor is derived from the
// product; one cart per customer-vendor pair is created on demand.
func (h *CartHandlers) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, ok := common.GetCustomerIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req struct {
		ProductID    string   `json:"product_id"`
		Quantity     int      `json:"quantity"`
		AddonIDs     []string `json:"addon_ids"`
		Instructions *string  `json:"instructions"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	productID, err := common.ValidateUUID(req.ProductID, "product_id")
	if err != nil {
		return common.SendError(c, err)
	}
	addonIDs := make([]uuid.UUID, 0, len(req.AddonIDs))
	for _, raw := range req.AddonIDs {
		id, err := common.ValidateUUID(raw, "addon_ids")
		if err != nil {
			return common.SendError(c, err)
		}
		addonIDs = append(addonIDs, id)
	}
	if req.Instructions != nil && strings.TrimSpace(*req.Instructions) == "" {
		req.Instructions = nil
	}

	item, err := h.cartService.AddItem(ctx, customerID, &services.AddItemInput{
		ProductID:    productID,
		Quantity:     req.Quantity,
		AddonIDs:     addonIDs,
		Instructions: req.Instructions,
	})
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Item added to cart",
		"item":    item,
	})
}

// UpdateItem handles PATCH /v1/cart/items/:itemId
func (h *CartHandlers) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, ok := common.GetCustomerIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	itemID, err := common.ValidateUUID(c.Param("itemId"), "item_id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	item, err := h.cartService.UpdateItem(ctx, customerID, itemID, req.Quantity)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Cart item updated",
		"item":    item,
	})
}

// RemoveItem handles DELETE /v1/cart/items/:itemId
func (h *CartHandlers) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, ok := common.GetCustomerIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	itemID, err := common.ValidateUUID(c.Param("itemId"), "item_id")
	if err != nil {
		return common.SendError(c, err)
	}

	if err := h.cartService.RemoveItem(ctx, customerID, itemID); err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Cart item removed",
	})
}

// ClearCart handles DELETE /v1/cart/:vendorId
func (h *CartHandlers) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, ok := common.GetCustomerIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	vendorID, err := common.ValidateUUID(c.Param("vendorId"), "vendor_id")
	if err != nil {
		return common.SendError(c, err)
	}

	if err := h.cartService.Clear(ctx, customerID, &vendorID); err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Cart cleared",
	})
}
