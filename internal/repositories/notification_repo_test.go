package repositories

import (
	"context"
	"testing"
	"time"

	"foodcourt/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type NotificationRepoTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	repo      NotificationRepository
	recipient models.Recipient
	context   context.Context
}

func (suite *NotificationRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewNotificationRepo(mock)
	suite.recipient = models.Recipient{Type: models.RecipientVendor, ID: uuid.New()}
	suite.context = context.Background()
}

func (suite *NotificationRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestNotificationRepoTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationRepoTestSuite))
}

func (suite *NotificationRepoTestSuite) TestInsert() {
	orderID := uuid.New()
	n := &models.Notification{
		ID:            uuid.New(),
		RecipientType: suite.recipient.Type,
		RecipientID:   suite.recipient.ID,
		Type:          models.NotificationTypeOrder,
		Title:         "New order ORD-000042",
		Message:       "Order ORD-000042 received: 2 item(s), total 300.00.",
		OrderID:       &orderID,
	}

	suite.mock.ExpectExec(`INSERT INTO notifications`).
		WithArgs(n.ID, n.RecipientType, n.RecipientID, n.Type, n.Title, n.Message, n.OrderID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Insert(suite.context, n)
	assert.NoError(suite.T(), err)
}

func (suite *NotificationRepoTestSuite) TestMarkRead_FirstCallFlips() {
	notificationID := uuid.New()

	suite.mock.ExpectExec(`UPDATE notifications`).
		WithArgs(notificationID, suite.recipient.Type, suite.recipient.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	affected, err := suite.repo.MarkRead(suite.context, suite.recipient, notificationID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), affected)
}

func (suite *NotificationRepoTestSuite) TestMarkRead_AlreadyReadAffectsNothing() {
	notificationID := uuid.New()

	suite.mock.ExpectExec(`UPDATE notifications`).
		WithArgs(notificationID, suite.recipient.Type, suite.recipient.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	affected, err := suite.repo.MarkRead(suite.context, suite.recipient, notificationID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(0), affected)
}

func (suite *NotificationRepoTestSuite) TestUnreadCount() {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notifications`).
		WithArgs(suite.recipient.Type, suite.recipient.ID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	count, err := suite.repo.UnreadCount(suite.context, suite.recipient)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, count)
}

func (suite *NotificationRepoTestSuite) TestList_UnreadOnlyWithType() {
	notifType := models.NotificationTypeOrder
	filter := &models.NotificationFilter{
		Type:       &notifType,
		UnreadOnly: true,
		Limit:      50,
		Offset:     0,
	}
	now := time.Now()
	orderID := uuid.New()

	rows := pgxmock.NewRows([]string{"id", "recipient_type", "recipient_id", "type", "title",
		"message", "order_id", "is_read", "read_at", "created_at"}).
		AddRow(uuid.New(), suite.recipient.Type, suite.recipient.ID, notifType,
			"Order ORD-000042 accepted", "Order ORD-000042 moved from pending to accepted.",
			&orderID, false, (*time.Time)(nil), now)

	suite.mock.ExpectQuery(`SELECT .* FROM notifications WHERE recipient_type = \$1 AND recipient_id = \$2 AND type = \$3 AND is_read = FALSE`).
		WithArgs(suite.recipient.Type, suite.recipient.ID, notifType, 50, 0).
		WillReturnRows(rows)

	notifications, err := suite.repo.List(suite.context, suite.recipient, filter)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), notifications, 1)
	assert.False(suite.T(), notifications[0].IsRead)
}

func (suite *NotificationRepoTestSuite) TestDeleteAllOlderThan() {
	cutoff := time.Now().AddDate(0, 0, -30)

	suite.mock.ExpectExec(`DELETE FROM notifications WHERE created_at < \$1`).
		WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 12))

	deleted, err := suite.repo.DeleteAllOlderThan(suite.context, cutoff)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(12), deleted)
}
