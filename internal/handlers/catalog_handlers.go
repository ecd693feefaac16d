package handlers

import (
	"net/http"
	"strconv"

	"foodcourt/internal/common"
	"foodcourt/internal/services"

	"github.com/labstack/echo/v4"
)

// CatalogHandlers handles the public browse endpoints
type CatalogHandlers struct {
	catalogService services.CatalogServiceInterface
}

// NewCatalogHandlers creates a new catalog handlers instance
func NewCatalogHandlers(catalogService services.CatalogServiceInterface) *CatalogHandlers {
	return &CatalogHandlers{catalogService: catalogService}
}

func pageFromQuery(c echo.Context) (int, int) {
	limit, offset := 0, 0
	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}
	if raw := c.QueryParam("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			offset = v
		}
	}
	return limit, offset
}

// ListVendors handles GET /v1/vendors
func (h *CatalogHandlers) ListVendors(c echo.Context) error {
	ctx := c.Request().Context()

	limit, offset := pageFromQuery(c)
	vendors, err := h.catalogService.ListVendors(ctx, limit, offset)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"vendors": vendors,
	})
}

// GetVendor handles GET /v1/vendors/:id
func (h *CatalogHandlers) GetVendor(c echo.Context) error {
	ctx := c.Request().Context()

	vendorID, err := common.ValidateUUID(c.Param("id"), "vendor_id")
	if err != nil {
		return common.SendError(c, err)
	}

	vendor, err := h.catalogService.GetVendor(ctx, vendorID)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, vendor)
}

// ListVendorProducts handles GET /v1/vendors/:id/products
func (h *CatalogHandlers) ListVendorProducts(c echo.Context) error {
	ctx := c.Request().Context()

	vendorID, err := common.ValidateUUID(c.Param("id"), "vendor_id")
	if err != nil {
		return common.SendError(c, err)
	}

	limit, offset := pageFromQuery(c)
	products, err := h.catalogService.ListVendorProducts(ctx, vendorID, limit, offset)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
	})
}
