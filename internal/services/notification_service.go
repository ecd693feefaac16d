package services

import (
	"context"
	"log"
	"time"

	"foodcourt/internal/caching"
	"foodcourt/internal/common"
	"foodcourt/internal/events"
	"foodcourt/internal/models"
	"foodcourt/internal/repositories"

	"github.com/google/uuid"
)

const unreadCountTTL = 5 * time.Minute

// NotificationServiceInterface is the durable ledger of delivered events.
// It is the fallback path for recipients that were offline when the event
// dispatcher published; ledger writes and publishes never block each other.
type NotificationServiceInterface interface {
	Record(ctx context.Context, recipient models.Recipient, notifType models.NotificationType, title, message string, orderID *uuid.UUID) (*models.Notification, error)
	MarkRead(ctx context.Context, recipient models.Recipient, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, recipient models.Recipient) error
	UnreadCount(ctx context.Context, recipient models.Recipient) (int, error)
	List(ctx context.Context, recipient models.Recipient, filter *models.NotificationFilter) ([]*models.Notification, error)
	Cleanup(ctx context.Context, recipient models.Recipient, olderThanDays int) (int64, error)
}

type notificationService struct {
	repo       repositories.NotificationRepository
	cacheSvc   caching.CacheService
	dispatcher *events.Dispatcher
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo repositories.NotificationRepository, cacheSvc caching.CacheService, dispatcher *events.Dispatcher) NotificationServiceInterface {
	return &notificationService{
		repo:       repo,
		cacheSvc:   cacheSvc,
		dispatcher: dispatcher,
	}
}

// Record appends one unread ledger row for one recipient. A status change
// targeting both parties produces two independent calls. The mirrored
// channel publish is best-effort.
func (s *notificationService) Record(ctx context.Context, recipient models.Recipient, notifType models.NotificationType, title, message string, orderID *uuid.UUID) (*models.Notification, error) {
	if title == "" {
		return nil, &common.ValidationError{Field: "title", Reason: "is required"}
	}
	n := &models.Notification{
		ID:            uuid.New(),
		RecipientType: recipient.Type,
		RecipientID:   recipient.ID,
		Type:          notifType,
		Title:         title,
		Message:       message,
		OrderID:       orderID,
		CreatedAt:     time.Now(),
	}
	if err := s.repo.Insert(ctx, n); err != nil {
		return nil, common.Transient("record notification", err)
	}

	s.invalidateUnread(ctx, recipient)
	s.dispatcher.PublishNewNotification(ctx, n)
	return n, nil
}

// MarkRead is idempotent: marking an already-read notification is a no-op.
func (s *notificationService) MarkRead(ctx context.Context, recipient models.Recipient, notificationID uuid.UUID) error {
	affected, err := s.repo.MarkRead(ctx, recipient, notificationID)
	if err != nil {
		return common.Transient("mark notification read", err)
	}
	if affected == 0 {
		exists, err := s.repo.Exists(ctx, recipient, notificationID)
		if err != nil {
			return common.Transient("check notification", err)
		}
		if !exists {
			return &common.NotFoundError{Resource: "notification"}
		}
		return nil // already read
	}
	s.invalidateUnread(ctx, recipient)
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, recipient models.Recipient) error {
	if _, err := s.repo.MarkAllRead(ctx, recipient); err != nil {
		return common.Transient("mark all notifications read", err)
	}
	s.invalidateUnread(ctx, recipient)
	return nil
}

func (s *notificationService) UnreadCount(ctx context.Context, recipient models.Recipient) (int, error) {
	if count, ok, err := s.cacheSvc.GetUnreadCount(ctx, recipient); err == nil && ok {
		return count, nil
	}
	count, err := s.repo.UnreadCount(ctx, recipient)
	if err != nil {
		return 0, common.Transient("count unread notifications", err)
	}
	if err := s.cacheSvc.SetUnreadCount(ctx, recipient, count, unreadCountTTL); err != nil {
		log.Printf("notification: cache unread count: %v", err)
	}
	return count, nil
}

func (s *notificationService) List(ctx context.Context, recipient models.Recipient, filter *models.NotificationFilter) ([]*models.Notification, error) {
	filter.Limit, filter.Offset = common.ValidatePaginationParams(filter.Limit, filter.Offset)
	notifications, err := s.repo.List(ctx, recipient, filter)
	if err != nil {
		return nil, common.Transient("list notifications", err)
	}
	return notifications, nil
}

// Cleanup bulk-deletes this recipient's notifications past the retention
// window and returns the number removed.
func (s *notificationService) Cleanup(ctx context.Context, recipient models.Recipient, olderThanDays int) (int64, error) {
	if olderThanDays < 1 {
		return 0, &common.ValidationError{Field: "older_than_days", Reason: "must be at least 1"}
	}
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	deleted, err := s.repo.DeleteOlderThan(ctx, recipient, cutoff)
	if err != nil {
		return 0, common.Transient("cleanup notifications", err)
	}
	s.invalidateUnread(ctx, recipient)
	return deleted, nil
}

func (s *notificationService) invalidateUnread(ctx context.Context, recipient models.Recipient) {
	if err := s.cacheSvc.InvalidateUnreadCount(ctx, recipient); err != nil {
		log.Printf("notification: invalidate unread cache: %v", err)
	}
}
