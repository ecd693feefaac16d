package repositories

import (
	"context"
	"errors"

	"foodcourt/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VendorRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	List(ctx context.Context, limit, offset int) ([]*models.Vendor, error)
}

type vendorRepo struct {
	db Database
}

func NewVendorRepo(db Database) VendorRepository {
	return &vendorRepo{db: db}
}

func (r *vendorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	vendor := &models.Vendor{}
	query := `
		SELECT id, name, stall_no, is_active, created_at, updated_at
		FROM vendors
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&vendor.ID, &vendor.Name, &vendor.StallNo,
		&vendor.IsActive, &vendor.CreatedAt, &vendor.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return vendor, nil
}

func (r *vendorRepo) List(ctx context.Context, limit, offset int) ([]*models.Vendor, error) {
	query := `
		SELECT id, name, stall_no, is_active, created_at, updated_at
		FROM vendors
		WHERE is_active = TRUE
		ORDER BY name
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*models.Vendor
	for rows.Next() {
		vendor := &models.Vendor{}
		if err := rows.Scan(&vendor.ID, &vendor.Name, &vendor.StallNo, &vendor.IsActive,
			&vendor.CreatedAt, &vendor.UpdatedAt); err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}
	return vendors, rows.Err()
}
