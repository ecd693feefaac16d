package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"foodcourt/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CartRepository interface {
	GetOrCreate(ctx context.Context, customerID, vendorID uuid.UUID) (*models.Cart, error)
	GetWithItems(ctx context.Context, customerID, vendorID uuid.UUID) (*models.Cart, error)
	GetItemForCustomer(ctx context.Context, customerID, itemID uuid.UUID) (*models.CartItem, error)
	InsertItem(ctx context.Context, item *models.CartItem) error
	AddQuantity(ctx context.Context, itemID uuid.UUID, delta int) (*models.CartItem, error)
	SetQuantity(ctx context.Context, customerID, itemID uuid.UUID, quantity int) (int64, error)
	DeleteItem(ctx context.Context, customerID, itemID uuid.UUID) (int64, error)
	Clear(ctx context.Context, customerID uuid.UUID, vendorID *uuid.UUID) error
}

type cartRepo struct {
	db Database
}

func NewCartRepo(db Database) CartRepository {
	return &cartRepo{db: db}
}

// GetOrCreate returns the customer's cart for a vendor, creating it on first
// use. The UNIQUE(customer_id, vendor_id) constraint keeps this race-free.
func (r *cartRepo) GetOrCreate(ctx context.Context, customerID, vendorID uuid.UUID) (*models.Cart, error) {
	cart := &models.Cart{}
	query := `
		INSERT INTO carts (id, customer_id, vendor_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (customer_id, vendor_id) DO UPDATE SET updated_at = NOW()
		RETURNING id, customer_id, vendor_id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, uuid.New(), customerID, vendorID).Scan(
		&cart.ID, &cart.CustomerID, &cart.VendorID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *cartRepo) GetWithItems(ctx context.Context, customerID, vendorID uuid.UUID) (*models.Cart, error) {
	cart := &models.Cart{}
	query := `
		SELECT id, customer_id, vendor_id, created_at, updated_at
		FROM carts
		WHERE customer_id = $1 AND vendor_id = $2
	`
	err := r.db.QueryRow(ctx, query, customerID, vendorID).Scan(
		&cart.ID, &cart.CustomerID, &cart.VendorID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	itemsQuery := `
		SELECT id, cart_id, product_id, product_name, quantity, unit_price, addons, instructions, created_at, updated_at
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item := &models.CartItem{}
		var addons []byte
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &addons, &item.Instructions,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(addons, &item.Addons); err != nil {
			return nil, fmt.Errorf("decode addon snapshot for cart item %s: %w", item.ID, err)
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *cartRepo) GetItemForCustomer(ctx context.Context, customerID, itemID uuid.UUID) (*models.CartItem, error) {
	item := &models.CartItem{}
	var addons []byte
	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.product_name, ci.quantity, ci.unit_price, ci.addons, ci.instructions, ci.created_at, ci.updated_at
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		WHERE ci.id = $1 AND c.customer_id = $2
	`
	err := r.db.QueryRow(ctx, query, itemID, customerID).Scan(&item.ID, &item.CartID,
		&item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice, &addons,
		&item.Instructions, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(addons, &item.Addons); err != nil {
		return nil, fmt.Errorf("decode addon snapshot for cart item %s: %w", item.ID, err)
	}
	return item, nil
}

func (r *cartRepo) InsertItem(ctx context.Context, item *models.CartItem) error {
	addons, err := json.Marshal(item.Addons)
	if err != nil {
		return fmt.Errorf("encode addon snapshot: %w", err)
	}
	query := `
		INSERT INTO cart_items (id, cart_id, product_id, product_name, quantity, unit_price, addons, instructions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query, item.ID, item.CartID, item.ProductID, item.ProductName,
		item.Quantity, item.UnitPrice, addons, item.Instructions)
	return err
}

// AddQuantity increments a merged line in place.
func (r *cartRepo) AddQuantity(ctx context.Context, itemID uuid.UUID, delta int) (*models.CartItem, error) {
	item := &models.CartItem{}
	var addons []byte
	query := `
		UPDATE cart_items
		SET quantity = quantity + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, cart_id, product_id, product_name, quantity, unit_price, addons, instructions, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, itemID, delta).Scan(&item.ID, &item.CartID,
		&item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice, &addons,
		&item.Instructions, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(addons, &item.Addons); err != nil {
		return nil, fmt.Errorf("decode addon snapshot for cart item %s: %w", item.ID, err)
	}
	return item, nil
}

// SetQuantity overwrites a line's quantity. Ownership is enforced in SQL so
// a foreign item id affects zero rows.
func (r *cartRepo) SetQuantity(ctx context.Context, customerID, itemID uuid.UUID, quantity int) (int64, error) {
	query := `
		UPDATE cart_items ci
		SET quantity = $3, updated_at = NOW()
		FROM carts c
		WHERE ci.id = $1 AND ci.cart_id = c.id AND c.customer_id = $2
	`
	tag, err := r.db.Exec(ctx, query, itemID, customerID, quantity)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *cartRepo) DeleteItem(ctx context.Context, customerID, itemID uuid.UUID) (int64, error) {
	query := `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.id = $1 AND ci.cart_id = c.id AND c.customer_id = $2
	`
	tag, err := r.db.Exec(ctx, query, itemID, customerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Clear removes the customer's carts and their items, optionally scoped to
// one vendor. cart_items rows go away via ON DELETE CASCADE.
func (r *cartRepo) Clear(ctx context.Context, customerID uuid.UUID, vendorID *uuid.UUID) error {
	if vendorID != nil {
		_, err := r.db.Exec(ctx, `DELETE FROM carts WHERE customer_id = $1 AND vendor_id = $2`, customerID, *vendorID)
		return err
	}
	_, err := r.db.Exec(ctx, `DELETE FROM carts WHERE customer_id = $1`, customerID)
	return err
}
