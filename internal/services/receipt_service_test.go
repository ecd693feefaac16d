package services

import (
	"context"
	"io"
	"testing"
	"time"

	"foodcourt/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStorage records uploads in memory.
type captureStorage struct {
	bucket  string
	object  string
	content []byte
	err     error
}

func (c *captureStorage) UploadObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	if c.err != nil {
		return c.err
	}
	c.bucket = bucketName
	c.object = objectName
	c.content, _ = io.ReadAll(reader)
	return nil
}

func (c *captureStorage) GetPresignedURL(bucketName, objectName string, expiry time.Duration) (string, error) {
	return "", nil
}

func (c *captureStorage) DeleteObject(ctx context.Context, bucketName, objectName string) error {
	return nil
}

func (c *captureStorage) EnsureBucketExists(ctx context.Context, bucketName string) error {
	return nil
}

func TestReceiptGenerate(t *testing.T) {
	completed := time.Date(2026, 8, 30, 12, 30, 0, 0, time.UTC)
	order := &models.Order{
		ID:            uuid.New(),
		OrderNumber:   "ORD-000042",
		TotalAmount:   390,
		PaymentMethod: models.PaymentMethodCash,
		CompletedAt:   &completed,
		Items: []*models.OrderItem{
			{
				ProductName: "Chicken Adobo",
				Quantity:    3,
				UnitPrice:   120,
				Addons:      models.AddonSnapshot{{Name: "Extra rice", Price: 10}},
				TotalPrice:  390,
			},
		},
	}

	storage := &captureStorage{}
	svc := NewReceiptService(storage)

	path, err := svc.Generate(context.Background(), order)
	require.NoError(t, err)

	assert.Equal(t, "receipts/ord-000042.txt", path)
	assert.Equal(t, BucketReceipts, storage.bucket)
	assert.Equal(t, "ord-000042.txt", storage.object)

	rendered := string(storage.content)
	assert.Contains(t, rendered, "ORD-000042")
	assert.Contains(t, rendered, "3x Chicken Adobo @ 120.00")
	assert.Contains(t, rendered, "+ Extra rice 10.00")
	assert.Contains(t, rendered, "TOTAL 390.00")
	assert.Contains(t, rendered, "Paid via cash")
}

func TestReceiptGenerate_UploadFailure(t *testing.T) {
	storage := &captureStorage{err: io.ErrClosedPipe}
	svc := NewReceiptService(storage)

	_, err := svc.Generate(context.Background(), &models.Order{OrderNumber: "ORD-000001"})
	assert.Error(t, err)
}
