package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"foodcourt/internal/common"
	"foodcourt/internal/models"
	"foodcourt/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles HTTP requests for customer-side orders
type OrderHandlers struct {
	orderService   services.OrderServiceInterface
	storageService services.StorageService
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderService services.OrderServiceInterface, storageService services.StorageService) *OrderHandlers {
	return &OrderHandlers{
		orderService:   orderService,
		storageService: storageService,
	}
}

// Checkout handles POST /v1/orders/checkout
func (h *OrderHandlers) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, ok := common.GetCustomerIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req struct {
		VendorID            string  `json:"vendor_id"`
		PaymentMethod       string  `json:"payment_method"`
		TableNumber         *int    `json:"table_number"`
		SpecialInstructions *string `json:"special_instructions"`
		PaymentProofPath    *string `json:"payment_proof_path"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	vendorID, err := common.ValidateUUID(req.VendorID, "vendor_id")
	if err != nil {
		return common.SendError(c, err)
	}

	order, err := h.orderService.PlaceOrder(ctx, customerID, vendorID, &services.PlaceOrderInput{
		PaymentMethod:       req.PaymentMethod,
		TableNumber:         req.TableNumber,
		SpecialInstructions: req.SpecialInstructions,
		PaymentProofPath:    req.PaymentProofPath,
	})
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Order placed",
		"order":   order,
	})
}

// GetOrder handles GET /v1/orders/:id
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, ok := common.GetCustomerIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	orderID, err := common.ValidateUUID(c.Param("id"), "order_id")
	if err != nil {
		return common.SendError(c, err)
	}

	order, err := h.orderService.GetCustomerOrder(ctx, customerID, orderID)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}

// ListOrders handles GET /v1/orders
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, ok := common.GetCustomerIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	filter, err := orderFilterFromQuery(c)
	if err != nil {
		return common.SendError(c, err)
	}

	orders, err := h.orderService.ListCustomerOrders(ctx, customerID, filter)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// CancelOrder handles POST /v1/orders/:id/cancel
func (h *OrderHandlers) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, ok := common.GetCustomerIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	orderID, err := common.ValidateUUID(c.Param("id"), "order_id")
	if err != nil {
		return common.SendError(c, err)
	}

	order, err := h.orderService.Cancel(ctx, customerID, orderID)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Order cancelled",
		"order":   order,
	})
}

// UploadPaymentProof handles POST /v1/orders/:id/payment-proof. The image
// goes to object storage; only the object path lands on the order row.
func (h *OrderHandlers) UploadPaymentProof(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, ok := common.GetCustomerIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	orderID, err := common.ValidateUUID(c.Param("id"), "order_id")
	if err != nil {
		return common.SendError(c, err)
	}

	file, err := c.FormFile("proof")
	if err != nil {
		return common.SendClientError(c, "Missing proof file")
	}
	src, err := file.Open()
	if err != nil {
		return common.SendClientError(c, "Unable to read proof file")
	}
	defer src.Close()

	objectName := fmt.Sprintf("%s/%d-%s", orderID, time.Now().Unix(), file.Filename)
	contentType := file.Header.Get("Content-Type")
	if err := h.storageService.UploadObject(ctx, services.BucketPaymentProofs, objectName, src, file.Size, contentType); err != nil {
		return common.SendError(c, common.Transient("upload payment proof", err))
	}

	path := services.BucketPaymentProofs + "/" + objectName
	if err := h.orderService.AttachPaymentProof(ctx, customerID, orderID, path); err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":            "Payment proof uploaded",
		"payment_proof_path": path,
	})
}

// GetReceipt handles GET /v1/orders/:id/receipt, returning a presigned URL.
func (h *OrderHandlers) GetReceipt(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, ok := common.GetCustomerIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	orderID, err := common.ValidateUUID(c.Param("id"), "order_id")
	if err != nil {
		return common.SendError(c, err)
	}

	order, err := h.orderService.GetCustomerOrder(ctx, customerID, orderID)
	if err != nil {
		return common.SendError(c, err)
	}
	if order.ReceiptPath == nil {
		return common.SendError(c, &common.NotFoundError{Resource: "receipt"})
	}

	url, err := h.storageService.GetPresignedURL(services.BucketReceipts, objectNameFromPath(*order.ReceiptPath), 15*time.Minute)
	if err != nil {
		return common.SendError(c, common.Transient("presign receipt", err))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"receipt_url": url,
	})
}

// objectNameFromPath strips the "bucket/" prefix stored on the order row.
func objectNameFromPath(path string) string {
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}

// orderFilterFromQuery parses the shared status/limit/offset query params.
func orderFilterFromQuery(c echo.Context) (*models.OrderListFilter, error) {
	filter := &models.OrderListFilter{}
	if raw := c.QueryParam("status"); raw != "" {
		status := models.OrderStatus(raw)
		if !status.Valid() {
			return nil, &common.ValidationError{Field: "status", Reason: "unknown order status"}
		}
		filter.Status = &status
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.Limit = v
		}
	}
	if raw := c.QueryParam("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.Offset = v
		}
	}
	return filter, nil
}
