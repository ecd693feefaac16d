package handlers

import (
	"net/http"
	"strconv"

	"foodcourt/internal/common"
	"foodcourt/internal/models"
	"foodcourt/internal/services"

	"github.com/labstack/echo/v4"
)

// NotificationHandlers handles HTTP requests for the notification ledger.
// The same routes serve customers and vendors; the recipient comes from
// the authenticated identity, never from the request.
type NotificationHandlers struct {
	notificationService services.NotificationServiceInterface
}

// NewNotificationHandlers creates a new notification handlers instance
func NewNotificationHandlers(notificationService services.NotificationServiceInterface) *NotificationHandlers {
	return &NotificationHandlers{notificationService: notificationService}
}

// recipientFromContext resolves the ledger recipient from the JWT claims.
func recipientFromContext(c echo.Context) (models.Recipient, bool) {
	ctx := c.Request().Context()
	role, ok := common.GetRoleFromContext(ctx)
	if !ok {
		return models.Recipient{}, false
	}
	switch role {
	case common.RoleVendor:
		id, ok := common.GetVendorIDFromContext(ctx)
		if !ok {
			return models.Recipient{}, false
		}
		return models.Recipient{Type: models.RecipientVendor, ID: id}, true
	default:
		id, ok := common.GetCustomerIDFromContext(ctx)
		if !ok {
			return models.Recipient{}, false
		}
		return models.Recipient{Type: models.RecipientCustomer, ID: id}, true
	}
}

// ListNotifications handles GET /v1/notifications
func (h *NotificationHandlers) ListNotifications(c echo.Context) error {
	ctx := c.Request().Context()

	recipient, ok := recipientFromContext(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	filter := &models.NotificationFilter{}
	if raw := c.QueryParam("type"); raw != "" {
		t := models.NotificationType(raw)
		if !t.Valid() {
			return common.SendError(c, &common.ValidationError{Field: "type", Reason: "unknown notification type"})
		}
		filter.Type = &t
	}
	if raw := c.QueryParam("unread"); raw != "" {
		filter.UnreadOnly = raw == "true" || raw == "1"
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

	notifications, err := h.notificationService.List(ctx, recipient, filter)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"limit":         filter.Limit,
		"offset":        filter.Offset,
	})
}

// UnreadCount handles GET /v1/notifications/unread-count
func (h *NotificationHandlers) UnreadCount(c echo.Context) error {
	ctx := c.Request().Context()

	recipient, ok := recipientFromContext(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	count, err := h.notificationService.UnreadCount(ctx, recipient)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"unread_count": count,
	})
}

// MarkRead handles POST /v1/notifications/:id/read
func (h *NotificationHandlers) MarkRead(c echo.Context) error {
	ctx := c.Request().Context()

	recipient, ok := recipientFromContext(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	notificationID, err := common.ValidateUUID(c.Param("id"), "notification_id")
	if err != nil {
		return common.SendError(c, err)
	}

	if err := h.notificationService.MarkRead(ctx, recipient, notificationID); err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Notification marked as read",
	})
}

// MarkAllRead handles POST /v1/notifications/read-all
func (h *NotificationHandlers) MarkAllRead(c echo.Context) error {
	ctx := c.Request().Context()

	recipient, ok := recipientFromContext(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if err := h.notificationService.MarkAllRead(ctx, recipient); err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "All notifications marked as read",
	})
}

// Cleanup handles DELETE /v1/notifications?older_than_days=30
func (h *NotificationHandlers) Cleanup(c echo.Context) error {
	ctx := c.Request().Context()

	recipient, ok := recipientFromContext(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	olderThanDays := 30
	if raw := c.QueryParam("older_than_days"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return common.SendClientError(c, "older_than_days must be a positive integer")
		}
		olderThanDays = v
	}

	deleted, err := h.notificationService.Cleanup(ctx, recipient, olderThanDays)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"deleted": deleted,
	})
}
