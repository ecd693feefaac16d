package services

import (
	"context"
	"log"
	"time"

	"foodcourt/internal/caching"
	"foodcourt/internal/common"
	"foodcourt/internal/models"
	"foodcourt/internal/repositories"

	"github.com/google/uuid"
)

const vendorProductsTTL = 2 * time.Minute

// CatalogServiceInterface exposes the read-only browse surface: active
// vendors and their menus. Menus are cached per vendor in Redis.
type CatalogServiceInterface interface {
	ListVendors(ctx context.Context, limit, offset int) ([]*models.Vendor, error)
	GetVendor(ctx context.Context, vendorID uuid.UUID) (*models.Vendor, error)
	ListVendorProducts(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]*models.Product, error)
}

type catalogService struct {
	vendorRepo  repositories.VendorRepository
	productRepo repositories.ProductRepository
	cacheSvc    caching.CacheService
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(vendorRepo repositories.VendorRepository, productRepo repositories.ProductRepository, cacheSvc caching.CacheService) CatalogServiceInterface {
	return &catalogService{
		vendorRepo:  vendorRepo,
		productRepo: productRepo,
		cacheSvc:    cacheSvc,
	}
}

func (s *catalogService) ListVendors(ctx context.Context, limit, offset int) ([]*models.Vendor, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	vendors, err := s.vendorRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, common.Transient("list vendors", err)
	}
	return vendors, nil
}

func (s *catalogService) GetVendor(ctx context.Context, vendorID uuid.UUID) (*models.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, common.Transient("load vendor", err)
	}
	if vendor == nil {
		return nil, &common.NotFoundError{Resource: "vendor"}
	}
	return vendor, nil
}

// ListVendorProducts serves the full menu from cache when the default page
// is requested; paginated requests always hit the database.
func (s *catalogService) ListVendorProducts(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]*models.Product, error) {
	defaultPage := limit == 0 && offset == 0
	if defaultPage {
		cached, err := s.cacheSvc.GetVendorProducts(ctx, vendorID)
		if err != nil {
			log.Printf("catalog: product cache read for vendor %s: %v", vendorID, err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	limit, offset = common.ValidatePaginationParams(limit, offset)
	products, err := s.productRepo.ListByVendor(ctx, vendorID, limit, offset)
	if err != nil {
		return nil, common.Transient("list vendor products", err)
	}

	if defaultPage {
		if err := s.cacheSvc.SetVendorProducts(ctx, vendorID, products, vendorProductsTTL); err != nil {
			log.Printf("catalog: product cache write for vendor %s: %v", vendorID, err)
		}
	}
	return products, nil
}
