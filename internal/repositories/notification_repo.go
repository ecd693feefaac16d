package repositories

import (
	"context"
	"fmt"
	"time"

	"foodcourt/internal/models"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Insert(ctx context.Context, n *models.Notification) error
	MarkRead(ctx context.Context, recipient models.Recipient, notificationID uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, recipient models.Recipient) (int64, error)
	UnreadCount(ctx context.Context, recipient models.Recipient) (int, error)
	List(ctx context.Context, recipient models.Recipient, filter *models.NotificationFilter) ([]*models.Notification, error)
	Exists(ctx context.Context, recipient models.Recipient, notificationID uuid.UUID) (bool, error)
	DeleteOlderThan(ctx context.Context, recipient models.Recipient, cutoff time.Time) (int64, error)
	DeleteAllOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type notificationRepo struct {
	db Database
}

func NewNotificationRepo(db Database) NotificationRepository {
	return &notificationRepo{db: db}
}

const notificationColumns = `id, recipient_type, recipient_id, type, title, message, order_id, is_read, read_at, created_at`

func (r *notificationRepo) Insert(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (id, recipient_type, recipient_id, type, title, message, order_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, NOW())
	`
	_, err := r.db.Exec(ctx, query, n.ID, n.RecipientType, n.RecipientID, n.Type,
		n.Title, n.Message, n.OrderID)
	return err
}

// MarkRead flips the read flag. Already-read rows are excluded from the
// WHERE clause so the operation is naturally idempotent; the caller checks
// row existence separately to distinguish no-op from not-found.
func (r *notificationRepo) MarkRead(ctx context.Context, recipient models.Recipient, notificationID uuid.UUID) (int64, error) {
	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE id = $1 AND recipient_type = $2 AND recipient_id = $3 AND is_read = FALSE
	`
	tag, err := r.db.Exec(ctx, query, notificationID, recipient.Type, recipient.ID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, recipient models.Recipient) (int64, error) {
	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE recipient_type = $1 AND recipient_id = $2 AND is_read = FALSE
	`
	tag, err := r.db.Exec(ctx, query, recipient.Type, recipient.ID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *notificationRepo) UnreadCount(ctx context.Context, recipient models.Recipient) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM notifications
		WHERE recipient_type = $1 AND recipient_id = $2 AND is_read = FALSE
	`
	err := r.db.QueryRow(ctx, query, recipient.Type, recipient.ID).Scan(&count)
	return count, err
}

func (r *notificationRepo) List(ctx context.Context, recipient models.Recipient, filter *models.NotificationFilter) ([]*models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE recipient_type = $1 AND recipient_id = $2`
	args := []any{recipient.Type, recipient.ID}
	n := 2
	if filter.Type != nil {
		n++
		query += fmt.Sprintf(` AND type = $%d`, n)
		args = append(args, *filter.Type)
	}
	if filter.UnreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC`
	n++
	query += fmt.Sprintf(` LIMIT $%d`, n)
	args = append(args, filter.Limit)
	n++
	query += fmt.Sprintf(` OFFSET $%d`, n)
	args = append(args, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		notif := &models.Notification{}
		if err := rows.Scan(&notif.ID, &notif.RecipientType, &notif.RecipientID, &notif.Type,
			&notif.Title, &notif.Message, &notif.OrderID, &notif.IsRead, &notif.ReadAt,
			&notif.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, notif)
	}
	return notifications, rows.Err()
}

func (r *notificationRepo) Exists(ctx context.Context, recipient models.Recipient, notificationID uuid.UUID) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE id = $1 AND recipient_type = $2 AND recipient_id = $3
		)
	`
	err := r.db.QueryRow(ctx, query, notificationID, recipient.Type, recipient.ID).Scan(&exists)
	return exists, err
}

func (r *notificationRepo) DeleteOlderThan(ctx context.Context, recipient models.Recipient, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM notifications
		WHERE recipient_type = $1 AND recipient_id = $2 AND created_at < $3
	`
	tag, err := r.db.Exec(ctx, query, recipient.Type, recipient.ID, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteAllOlderThan is the retention job's bulk path across all recipients.
func (r *notificationRepo) DeleteAllOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
