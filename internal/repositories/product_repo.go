package repositories

import (
	"context"
	"errors"

	"foodcourt/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetAddons(ctx context.Context, productID uuid.UUID, addonIDs []uuid.UUID) ([]*models.Addon, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]*models.Product, error)
}

type productRepo struct {
	db Database
}

func NewProductRepo(db Database) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product := &models.Product{}
	query := `
		SELECT id, vendor_id, name, description, price, stock_quantity, is_available, image_path, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&product.ID, &product.VendorID, &product.Name,
		&product.Description, &product.Price, &product.StockQuantity, &product.IsAvailable,
		&product.ImagePath, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return product, nil
}

// GetAddons returns the catalog addons of a product restricted to addonIDs.
// Addons belonging to other products are silently absent from the result so
// the caller can detect invalid selections by comparing counts.
func (r *productRepo) GetAddons(ctx context.Context, productID uuid.UUID, addonIDs []uuid.UUID) ([]*models.Addon, error) {
	if len(addonIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, product_id, name, price, created_at
		FROM addons
		WHERE product_id = $1 AND id = ANY($2)
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query, productID, addonIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addons []*models.Addon
	for rows.Next() {
		addon := &models.Addon{}
		if err := rows.Scan(&addon.ID, &addon.ProductID, &addon.Name, &addon.Price, &addon.CreatedAt); err != nil {
			return nil, err
		}
		addons = append(addons, addon)
	}
	return addons, rows.Err()
}

func (r *productRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]*models.Product, error) {
	query := `
		SELECT id, vendor_id, name, description, price, stock_quantity, is_available, image_path, created_at, updated_at
		FROM products
		WHERE vendor_id = $1 AND is_available = TRUE
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, vendorID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.VendorID, &product.Name, &product.Description,
			&product.Price, &product.StockQuantity, &product.IsAvailable, &product.ImagePath,
			&product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
