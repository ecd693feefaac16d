package services

import (
	"context"
	"fmt"
	"log"

	"foodcourt/internal/common"
	"foodcourt/internal/events"
	"foodcourt/internal/models"
	"foodcourt/internal/repositories"

	"github.com/google/uuid"
)

// OrderServiceInterface owns the order lifecycle: transactional creation
// from a cart snapshot and the guarded status transitions. Event publication
// and ledger writes happen strictly after the owning transaction commits and
// are best-effort.
type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, customerID, vendorID uuid.UUID, in *PlaceOrderInput) (*models.Order, error)
	Accept(ctx context.Context, vendorID, orderID uuid.UUID) (*models.Order, error)
	Decline(ctx context.Context, vendorID, orderID uuid.UUID) (*models.Order, error)
	MarkReady(ctx context.Context, vendorID, orderID uuid.UUID) (*models.Order, error)
	Cancel(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error)
	GetCustomerOrder(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error)
	GetVendorOrder(ctx context.Context, vendorID, orderID uuid.UUID) (*models.Order, error)
	ListCustomerOrders(ctx context.Context, customerID uuid.UUID, filter *models.OrderListFilter) ([]*models.Order, error)
	ListVendorOrders(ctx context.Context, vendorID uuid.UUID, filter *models.OrderListFilter) ([]*models.Order, error)
	AttachPaymentProof(ctx context.Context, customerID, orderID uuid.UUID, path string) error
}

// PlaceOrderInput carries the checkout request fields.
type PlaceOrderInput struct {
	PaymentMethod       string
	TableNumber         *int
	SpecialInstructions *string
	PaymentProofPath    *string
}

type orderService struct {
	orderRepo  repositories.OrderRepository
	cartSvc    CartServiceInterface
	notifSvc   NotificationServiceInterface
	receiptSvc ReceiptService
	dispatcher *events.Dispatcher
}

// NewOrderService creates a new order service instance
func NewOrderService(orderRepo repositories.OrderRepository, cartSvc CartServiceInterface,
	notifSvc NotificationServiceInterface, receiptSvc ReceiptService, dispatcher *events.Dispatcher) OrderServiceInterface {
	return &orderService{
		orderRepo:  orderRepo,
		cartSvc:    cartSvc,
		notifSvc:   notifSvc,
		receiptSvc: receiptSvc,
		dispatcher: dispatcher,
	}
}

// PlaceOrder materializes the customer's cart, computes the total from the
// snapshots, and persists order + items + cart-clear in one transaction.
// On any failure nothing is visible afterwards and the cart is unchanged.
func (s *orderService) PlaceOrder(ctx context.Context, customerID, vendorID uuid.UUID, in *PlaceOrderInput) (*models.Order, error) {
	if err := common.ValidatePaymentMethod(in.PaymentMethod); err != nil {
		return nil, err
	}
	if in.TableNumber != nil && *in.TableNumber < 1 {
		return nil, &common.ValidationError{Field: "table_number", Reason: "must be positive"}
	}

	snapshot, err := s.cartSvc.Materialize(ctx, customerID, vendorID)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:                  uuid.New(),
		CustomerID:          customerID,
		VendorID:            vendorID,
		Status:              models.OrderStatusPending,
		TotalAmount:         snapshot.Subtotal,
		PaymentMethod:       in.PaymentMethod,
		TableNumber:         in.TableNumber,
		SpecialInstructions: in.SpecialInstructions,
		PaymentProofPath:    in.PaymentProofPath,
	}
	for _, line := range snapshot.Lines {
		order.Items = append(order.Items, &models.OrderItem{
			ID:           uuid.New(),
			OrderID:      order.ID,
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			Addons:       line.Addons,
			Instructions: line.Instructions,
			TotalPrice:   line.LineTotal(),
		})
	}

	if err := s.orderRepo.PlaceOrder(ctx, order, snapshot.CartID); err != nil {
		return nil, common.Transient("place order", err)
	}

	// The transaction is committed; everything below is best-effort.
	s.dispatcher.PublishOrderReceived(ctx, order)
	s.recordLedger(ctx, models.Recipient{Type: models.RecipientVendor, ID: order.VendorID},
		fmt.Sprintf("New order %s", order.OrderNumber),
		fmt.Sprintf("Order %s received: %d item(s), total %.2f.", order.OrderNumber, len(order.Items), order.TotalAmount),
		order)

	return order, nil
}

// Accept moves a pending order to accepted. Vendor action.
func (s *orderService) Accept(ctx context.Context, vendorID, orderID uuid.UUID) (*models.Order, error) {
	return s.transitionByVendor(ctx, vendorID, orderID, models.OrderStatusAccepted, false)
}

// Decline moves a pending order to cancelled. Vendor action.
func (s *orderService) Decline(ctx context.Context, vendorID, orderID uuid.UUID) (*models.Order, error) {
	return s.transitionByVendor(ctx, vendorID, orderID, models.OrderStatusCancelled, false)
}

// MarkReady moves an accepted order to ready_for_pickup, the terminal
// fulfilled state, stamping the completion time.
func (s *orderService) MarkReady(ctx context.Context, vendorID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.transitionByVendor(ctx, vendorID, orderID, models.OrderStatusReadyForPickup, true)
	if err != nil {
		return nil, err
	}
	s.generateReceipt(ctx, order)
	return order, nil
}

// Cancel moves a pending order to cancelled. Customer action.
func (s *orderService) Cancel(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, common.Transient("load order", err)
	}
	if order == nil {
		return nil, &common.NotFoundError{Resource: "order"}
	}
	if order.CustomerID != customerID {
		return nil, &common.ForbiddenError{Reason: "order belongs to another customer"}
	}
	return s.applyTransition(ctx, order, models.OrderStatusCancelled, false)
}

func (s *orderService) transitionByVendor(ctx context.Context, vendorID, orderID uuid.UUID, to models.OrderStatus, stampCompleted bool) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, common.Transient("load order", err)
	}
	if order == nil {
		return nil, &common.NotFoundError{Resource: "order"}
	}
	if order.VendorID != vendorID {
		return nil, &common.ForbiddenError{Reason: "order belongs to another vendor"}
	}
	return s.applyTransition(ctx, order, to, stampCompleted)
}

// applyTransition runs the guarded status update. The current status is a
// precondition of the UPDATE, so of two concurrent attempts exactly one
// succeeds; the loser re-reads and reports the fresh state.
func (s *orderService) applyTransition(ctx context.Context, order *models.Order, to models.OrderStatus, stampCompleted bool) (*models.Order, error) {
	from := order.Status
	if !from.CanTransitionTo(to) {
		return nil, &common.IllegalStateError{Current: string(from), Requested: string(to)}
	}

	affected, err := s.orderRepo.UpdateStatusGuard(ctx, order.ID, from, to, stampCompleted)
	if err != nil {
		return nil, common.Transient("update order status", err)
	}
	if affected == 0 {
		fresh, err := s.orderRepo.GetByID(ctx, order.ID)
		if err != nil {
			return nil, common.Transient("reload order", err)
		}
		current := string(from)
		if fresh != nil {
			current = string(fresh.Status)
		}
		return nil, &common.IllegalStateError{Current: current, Requested: string(to)}
	}

	updated, err := s.orderRepo.GetByID(ctx, order.ID)
	if err != nil || updated == nil {
		// The transition committed; fall back to the in-memory view.
		updated = order
		updated.Status = to
	}

	// Committed. Publish and record per recipient, best-effort.
	s.dispatcher.PublishStatusChanged(ctx, updated, from, to)
	s.recordLedger(ctx, models.Recipient{Type: models.RecipientVendor, ID: updated.VendorID},
		fmt.Sprintf("Order %s %s", updated.OrderNumber, to),
		fmt.Sprintf("Order %s moved from %s to %s.", updated.OrderNumber, from, to),
		updated)
	s.recordLedger(ctx, models.Recipient{Type: models.RecipientCustomer, ID: updated.CustomerID},
		fmt.Sprintf("Order %s update", updated.OrderNumber),
		models.StatusMessage(to),
		updated)

	return updated, nil
}

func (s *orderService) recordLedger(ctx context.Context, recipient models.Recipient, title, message string, order *models.Order) {
	orderID := order.ID
	if _, err := s.notifSvc.Record(ctx, recipient, models.NotificationTypeOrder, title, message, &orderID); err != nil {
		log.Printf("order: ledger write for %s %s failed: %v", recipient.Type, recipient.ID, err)
	}
}

func (s *orderService) generateReceipt(ctx context.Context, order *models.Order) {
	loaded, err := s.orderRepo.GetWithItems(ctx, order.ID)
	if err != nil || loaded == nil {
		log.Printf("order: load items for receipt %s: %v", order.OrderNumber, err)
		return
	}
	path, err := s.receiptSvc.Generate(ctx, loaded)
	if err != nil {
		log.Printf("order: generate receipt %s: %v", order.OrderNumber, err)
		return
	}
	if err := s.orderRepo.SetReceiptPath(ctx, order.ID, path); err != nil {
		log.Printf("order: store receipt path %s: %v", order.OrderNumber, err)
	}
	order.ReceiptPath = &path
	s.dispatcher.PublishReceiptReady(ctx, loaded, path)
}

func (s *orderService) GetCustomerOrder(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, common.Transient("load order", err)
	}
	if order == nil || order.CustomerID != customerID {
		return nil, &common.NotFoundError{Resource: "order"}
	}
	return order, nil
}

func (s *orderService) GetVendorOrder(ctx context.Context, vendorID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, common.Transient("load order", err)
	}
	if order == nil || order.VendorID != vendorID {
		return nil, &common.NotFoundError{Resource: "order"}
	}
	return order, nil
}

func (s *orderService) ListCustomerOrders(ctx context.Context, customerID uuid.UUID, filter *models.OrderListFilter) ([]*models.Order, error) {
	filter.Limit, filter.Offset = common.ValidatePaginationParams(filter.Limit, filter.Offset)
	orders, err := s.orderRepo.ListByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, common.Transient("list orders", err)
	}
	return orders, nil
}

func (s *orderService) ListVendorOrders(ctx context.Context, vendorID uuid.UUID, filter *models.OrderListFilter) ([]*models.Order, error) {
	filter.Limit, filter.Offset = common.ValidatePaginationParams(filter.Limit, filter.Offset)
	orders, err := s.orderRepo.ListByVendor(ctx, vendorID, filter)
	if err != nil {
		return nil, common.Transient("list orders", err)
	}
	return orders, nil
}

// AttachPaymentProof stores the uploaded proof path and notifies the vendor.
func (s *orderService) AttachPaymentProof(ctx context.Context, customerID, orderID uuid.UUID, path string) error {
	affected, err := s.orderRepo.SetPaymentProof(ctx, orderID, customerID, path)
	if err != nil {
		return common.Transient("attach payment proof", err)
	}
	if affected == 0 {
		return &common.NotFoundError{Resource: "order"}
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil || order == nil {
		return nil
	}
	oid := order.ID
	if _, err := s.notifSvc.Record(ctx,
		models.Recipient{Type: models.RecipientVendor, ID: order.VendorID},
		models.NotificationTypePayment,
		fmt.Sprintf("Payment proof for %s", order.OrderNumber),
		fmt.Sprintf("The customer uploaded a payment proof for order %s.", order.OrderNumber),
		&oid); err != nil {
		log.Printf("order: payment proof ledger write failed: %v", err)
	}
	return nil
}
