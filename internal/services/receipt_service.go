package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"foodcourt/internal/models"
)

// ReceiptService renders a completed order into a receipt object and stores
// it. Generation is best-effort relative to the transition that triggered
// it; a failed upload never rolls back the committed status change.
type ReceiptService interface {
	Generate(ctx context.Context, order *models.Order) (string, error)
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`FOODCOURT RECEIPT
Order {{.Order.OrderNumber}}
{{range .Order.Items}}{{.Quantity}}x {{.ProductName}} @ {{printf "%.2f" .UnitPrice}}{{range .Addons}}
   + {{.Name}} {{printf "%.2f" .Price}}{{end}}
   line total {{printf "%.2f" .TotalPrice}}
{{end}}TOTAL {{printf "%.2f" .Order.TotalAmount}}
Paid via {{.Order.PaymentMethod}}
{{if .Order.CompletedAt}}Completed {{.Order.CompletedAt.Format "2006-01-02 15:04"}}{{end}}
`))

type receiptService struct {
	storage StorageService
}

func NewReceiptService(storage StorageService) ReceiptService {
	return &receiptService{storage: storage}
}

// Generate renders and uploads the receipt, returning the object path.
func (s *receiptService) Generate(ctx context.Context, order *models.Order) (string, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, map[string]any{"Order": order}); err != nil {
		return "", fmt.Errorf("render receipt for %s: %w", order.OrderNumber, err)
	}

	objectName := fmt.Sprintf("%s.txt", strings.ToLower(order.OrderNumber))
	if err := s.storage.UploadObject(ctx, BucketReceipts, objectName,
		bytes.NewReader(buf.Bytes()), int64(buf.Len()), "text/plain"); err != nil {
		return "", fmt.Errorf("upload receipt for %s: %w", order.OrderNumber, err)
	}
	return BucketReceipts + "/" + objectName, nil
}
