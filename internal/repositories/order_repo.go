package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"foodcourt/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderRepository interface {
	PlaceOrder(ctx context.Context, order *models.Order, cartID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatusGuard(ctx context.Context, orderID uuid.UUID, from, to models.OrderStatus, stampCompleted bool) (int64, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, filter *models.OrderListFilter) ([]*models.Order, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, filter *models.OrderListFilter) ([]*models.Order, error)
	SetPaymentProof(ctx context.Context, orderID, customerID uuid.UUID, path string) (int64, error)
	SetReceiptPath(ctx context.Context, orderID uuid.UUID, path string) error
	DeleteNonPendingOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type orderRepo struct {
	db Database
}

func NewOrderRepo(db Database) OrderRepository {
	return &orderRepo{db: db}
}

const orderColumns = `id, order_number, customer_id, vendor_id, status, total_amount, payment_method, table_number, special_instructions, payment_proof_path, receipt_path, completed_at, created_at, updated_at`

// PlaceOrder persists the order, its item snapshots, and the source cart
// removal as one transaction. The order number comes from a dedicated
// sequence and is additionally guarded by a UNIQUE constraint on
// orders.order_number, so concurrent checkouts cannot collide. On any error
// the whole transaction rolls back and the cart is left untouched.
func (r *orderRepo) PlaceOrder(ctx context.Context, order *models.Order, cartID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin checkout transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var seq int64
	if err = tx.QueryRow(ctx, `SELECT nextval('order_number_seq')`).Scan(&seq); err != nil {
		return fmt.Errorf("reserve order number: %w", err)
	}
	order.OrderNumber = fmt.Sprintf("ORD-%06d", seq)

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (id, order_number, customer_id, vendor_id, status, total_amount, payment_method, table_number, special_instructions, payment_proof_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`, order.ID, order.OrderNumber, order.CustomerID, order.VendorID, order.Status,
		order.TotalAmount, order.PaymentMethod, order.TableNumber, order.SpecialInstructions,
		order.PaymentProofPath).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		var addons []byte
		addons, err = json.Marshal(item.Addons)
		if err != nil {
			return fmt.Errorf("encode addon snapshot: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price, addons, instructions, total_price, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		`, item.ID, order.ID, item.ProductID, item.ProductName, item.Quantity,
			item.UnitPrice, addons, item.Instructions, item.TotalPrice)
		if err != nil {
			return fmt.Errorf("insert order item %s: %w", item.ProductName, err)
		}
	}

	if _, err = tx.Exec(ctx, `DELETE FROM carts WHERE id = $1`, cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit checkout transaction: %w", err)
	}
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order := &models.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&order.ID, &order.OrderNumber, &order.CustomerID,
		&order.VendorID, &order.Status, &order.TotalAmount, &order.PaymentMethod,
		&order.TableNumber, &order.SpecialInstructions, &order.PaymentProofPath,
		&order.ReceiptPath, &order.CompletedAt, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := r.GetByID(ctx, id)
	if err != nil || order == nil {
		return order, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, addons, instructions, total_price, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item := &models.OrderItem{}
		var addons []byte
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &addons, &item.Instructions,
			&item.TotalPrice, &item.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(addons, &item.Addons); err != nil {
			return nil, fmt.Errorf("decode addon snapshot for order item %s: %w", item.ID, err)
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatusGuard performs the single-writer status transition: the
// current status is a precondition in the WHERE clause, so two concurrent
// attempts on the same order serialize into one affected row and one zero.
func (r *orderRepo) UpdateStatusGuard(ctx context.Context, orderID uuid.UUID, from, to models.OrderStatus, stampCompleted bool) (int64, error) {
	query := `
		UPDATE orders
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`
	if stampCompleted {
		query = `
		UPDATE orders
		SET status = $3, completed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = $2
	`
	}
	tag, err := r.db.Exec(ctx, query, orderID, from, to)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *orderRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter *models.OrderListFilter) ([]*models.Order, error) {
	return r.list(ctx, "customer_id", customerID, filter)
}

func (r *orderRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID, filter *models.OrderListFilter) ([]*models.Order, error) {
	return r.list(ctx, "vendor_id", vendorID, filter)
}

func (r *orderRepo) list(ctx context.Context, ownerCol string, ownerID uuid.UUID, filter *models.OrderListFilter) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + ownerCol + ` = $1`
	args := []any{ownerID}
	n := 1
	if filter.Status != nil {
		n++
		query += fmt.Sprintf(` AND status = $%d`, n)
		args = append(args, *filter.Status)
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

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.OrderNumber, &order.CustomerID, &order.VendorID,
			&order.Status, &order.TotalAmount, &order.PaymentMethod, &order.TableNumber,
			&order.SpecialInstructions, &order.PaymentProofPath, &order.ReceiptPath,
			&order.CompletedAt, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// SetPaymentProof is customer-scoped in SQL; a foreign order affects zero rows.
func (r *orderRepo) SetPaymentProof(ctx context.Context, orderID, customerID uuid.UUID, path string) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET payment_proof_path = $3, updated_at = NOW()
		WHERE id = $1 AND customer_id = $2
	`, orderID, customerID, path)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *orderRepo) SetReceiptPath(ctx context.Context, orderID uuid.UUID, path string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE orders
		SET receipt_path = $2, updated_at = NOW()
		WHERE id = $1
	`, orderID, path)
	return err
}

// DeleteNonPendingOlderThan is the only delete path for orders. Pending
// orders are never removed.
func (r *orderRepo) DeleteNonPendingOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM orders
		WHERE status <> $1 AND created_at < $2
	`, models.OrderStatusPending, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
