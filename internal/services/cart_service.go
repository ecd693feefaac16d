package services

import (
	"context"

	"foodcourt/internal/common"
	"foodcourt/internal/models"
	"foodcourt/internal/repositories"

	"github.com/google/uuid"
)

// CartServiceInterface defines the cart aggregator operations. All mutations
// touch only cart rows; no events are emitted from this component.
type CartServiceInterface interface {
	AddItem(ctx context.Context, customerID uuid.UUID, in *AddItemInput) (*models.CartItem, error)
	UpdateItem(ctx context.Context, customerID, itemID uuid.UUID, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, customerID, itemID uuid.UUID) error
	Clear(ctx context.Context, customerID uuid.UUID, vendorID *uuid.UUID) error
	Materialize(ctx context.Context, customerID, vendorID uuid.UUID) (*models.CartSnapshot, error)
	Get(ctx context.Context, customerID, vendorID uuid.UUID) (*models.CartSnapshot, error)
}

// AddItemInput carries one add-to-cart request.
type AddItemInput struct {
	ProductID    uuid.UUID
	Quantity     int
	AddonIDs     []uuid.UUID
	Instructions *string
}

type cartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	vendorRepo  repositories.VendorRepository
}

// NewCartService creates a new cart service instance
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, vendorRepo repositories.VendorRepository) CartServiceInterface {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		vendorRepo:  vendorRepo,
	}
}

// AddItem validates the selection against the catalog, snapshots prices, and
// either merges into an identical existing line or appends a new one.
func (s *cartService) AddItem(ctx context.Context, customerID uuid.UUID, in *AddItemInput) (*models.CartItem, error) {
	if err := common.ValidateQuantity(in.Quantity); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, common.Transient("load product", err)
	}
	if product == nil {
		return nil, &common.NotFoundError{Resource: "product"}
	}
	if !product.IsAvailable {
		return nil, &common.ValidationError{Field: "product_id", Reason: "product is not available"}
	}
	if product.StockQuantity < in.Quantity {
		return nil, &common.InsufficientStockError{
			ProductID: product.ID,
			Requested: in.Quantity,
			Available: product.StockQuantity,
		}
	}

	vendor, err := s.vendorRepo.GetByID(ctx, product.VendorID)
	if err != nil {
		return nil, common.Transient("load vendor", err)
	}
	if vendor == nil || !vendor.IsActive {
		return nil, &common.ValidationError{Field: "product_id", Reason: "vendor is not accepting orders"}
	}

	snapshot, err := s.snapshotAddons(ctx, product.ID, in.AddonIDs)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetOrCreate(ctx, customerID, product.VendorID)
	if err != nil {
		return nil, common.Transient("open cart", err)
	}

	loaded, err := s.cartRepo.GetWithItems(ctx, customerID, product.VendorID)
	if err != nil {
		return nil, common.Transient("load cart", err)
	}

	candidate := &models.CartItem{
		ID:           uuid.New(),
		CartID:       cart.ID,
		ProductID:    product.ID,
		ProductName:  product.Name,
		Quantity:     in.Quantity,
		UnitPrice:    product.Price,
		Addons:       snapshot,
		Instructions: in.Instructions,
	}

	// Merge semantics: an existing line with identical product, addon set
	// and instructions absorbs the quantity instead of duplicating.
	if loaded != nil {
		for _, existing := range loaded.Items {
			if existing.MergeKey() != candidate.MergeKey() {
				continue
			}
			if product.StockQuantity < existing.Quantity+in.Quantity {
				return nil, &common.InsufficientStockError{
					ProductID: product.ID,
					Requested: existing.Quantity + in.Quantity,
					Available: product.StockQuantity,
				}
			}
			merged, err := s.cartRepo.AddQuantity(ctx, existing.ID, in.Quantity)
			if err != nil {
				return nil, common.Transient("merge cart line", err)
			}
			return merged, nil
		}
	}

	if err := s.cartRepo.InsertItem(ctx, candidate); err != nil {
		return nil, common.Transient("insert cart line", err)
	}
	return candidate, nil
}

func (s *cartService) snapshotAddons(ctx context.Context, productID uuid.UUID, addonIDs []uuid.UUID) (models.AddonSnapshot, error) {
	if len(addonIDs) == 0 {
		return models.AddonSnapshot{}, nil
	}
	addons, err := s.productRepo.GetAddons(ctx, productID, addonIDs)
	if err != nil {
		return nil, common.Transient("load addons", err)
	}
	if len(addons) != len(addonIDs) {
		return nil, &common.ValidationError{Field: "addon_ids", Reason: "one or more addons do not belong to this product"}
	}
	snapshot := make(models.AddonSnapshot, 0, len(addons))
	for _, a := range addons {
		snapshot = append(snapshot, models.SelectedAddon{ID: a.ID, Name: a.Name, Price: a.Price})
	}
	return snapshot, nil
}

// UpdateItem overwrites a line's quantity.
func (s *cartService) UpdateItem(ctx context.Context, customerID, itemID uuid.UUID, quantity int) (*models.CartItem, error) {
	if err := common.ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	affected, err := s.cartRepo.SetQuantity(ctx, customerID, itemID, quantity)
	if err != nil {
		return nil, common.Transient("update cart line", err)
	}
	if affected == 0 {
		return nil, &common.NotFoundError{Resource: "cart item"}
	}
	item, err := s.cartRepo.GetItemForCustomer(ctx, customerID, itemID)
	if err != nil {
		return nil, common.Transient("reload cart line", err)
	}
	if item == nil {
		return nil, &common.NotFoundError{Resource: "cart item"}
	}
	return item, nil
}

func (s *cartService) RemoveItem(ctx context.Context, customerID, itemID uuid.UUID) error {
	affected, err := s.cartRepo.DeleteItem(ctx, customerID, itemID)
	if err != nil {
		return common.Transient("remove cart line", err)
	}
	if affected == 0 {
		return &common.NotFoundError{Resource: "cart item"}
	}
	return nil
}

func (s *cartService) Clear(ctx context.Context, customerID uuid.UUID, vendorID *uuid.UUID) error {
	if err := s.cartRepo.Clear(ctx, customerID, vendorID); err != nil {
		return common.Transient("clear cart", err)
	}
	return nil
}

// Materialize returns the current lines with computed per-line totals. It is
// read-only; the order state machine calls it as the sole source for
// checkout.
func (s *cartService) Materialize(ctx context.Context, customerID, vendorID uuid.UUID) (*models.CartSnapshot, error) {
	cart, err := s.cartRepo.GetWithItems(ctx, customerID, vendorID)
	if err != nil {
		return nil, common.Transient("load cart", err)
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, &common.EmptyCartError{}
	}

	snapshot := &models.CartSnapshot{
		CartID:     cart.ID,
		CustomerID: cart.CustomerID,
		VendorID:   cart.VendorID,
		Lines:      cart.Items,
	}
	for _, line := range cart.Items {
		snapshot.Subtotal += line.LineTotal()
	}
	return snapshot, nil
}

// Get is the read path for the cart screen; unlike Materialize an empty or
// absent cart is not an error.
func (s *cartService) Get(ctx context.Context, customerID, vendorID uuid.UUID) (*models.CartSnapshot, error) {
	cart, err := s.cartRepo.GetWithItems(ctx, customerID, vendorID)
	if err != nil {
		return nil, common.Transient("load cart", err)
	}
	if cart == nil {
		return &models.CartSnapshot{CustomerID: customerID, VendorID: vendorID}, nil
	}
	snapshot := &models.CartSnapshot{
		CartID:     cart.ID,
		CustomerID: cart.CustomerID,
		VendorID:   cart.VendorID,
		Lines:      cart.Items,
	}
	for _, line := range cart.Items {
		snapshot.Subtotal += line.LineTotal()
	}
	return snapshot, nil
}
