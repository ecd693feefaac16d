package services

import (
	"context"
	"testing"

	"foodcourt/internal/common"
	"foodcourt/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// Mock repositories

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetOrCreate(ctx context.Context, customerID, vendorID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, customerID, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartRepository) GetWithItems(ctx context.Context, customerID, vendorID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, customerID, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartRepository) GetItemForCustomer(ctx context.Context, customerID, itemID uuid.UUID) (*models.CartItem, error) {
	args := m.Called(ctx, customerID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *MockCartRepository) InsertItem(ctx context.Context, item *models.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) AddQuantity(ctx context.Context, itemID uuid.UUID, delta int) (*models.CartItem, error) {
	args := m.Called(ctx, itemID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *MockCartRepository) SetQuantity(ctx context.Context, customerID, itemID uuid.UUID, quantity int) (int64, error) {
	args := m.Called(ctx, customerID, itemID, quantity)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCartRepository) DeleteItem(ctx context.Context, customerID, itemID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID, itemID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCartRepository) Clear(ctx context.Context, customerID uuid.UUID, vendorID *uuid.UUID) error {
	args := m.Called(ctx, customerID, vendorID)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetAddons(ctx context.Context, productID uuid.UUID, addonIDs []uuid.UUID) ([]*models.Addon, error) {
	args := m.Called(ctx, productID, addonIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Addon), args.Error(1)
}

func (m *MockProductRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]*models.Product, error) {
	args := m.Called(ctx, vendorID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vendor), args.Error(1)
}

func (m *MockVendorRepository) List(ctx context.Context, limit, offset int) ([]*models.Vendor, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vendor), args.Error(1)
}

// CartServiceTestSuite defines the test suite
type CartServiceTestSuite struct {
	suite.Suite
	mockCartRepo    *MockCartRepository
	mockProductRepo *MockProductRepository
	mockVendorRepo  *MockVendorRepository
	service         CartServiceInterface
	customerID      uuid.UUID
	vendorID        uuid.UUID
	product         *models.Product
	vendor          *models.Vendor
	cart            *models.Cart
}

func (suite *CartServiceTestSuite) SetupTest() {
	suite.mockCartRepo = &MockCartRepository{}
	suite.mockProductRepo = &MockProductRepository{}
	suite.mockVendorRepo = &MockVendorRepository{}
	suite.service = NewCartService(suite.mockCartRepo, suite.mockProductRepo, suite.mockVendorRepo)

	suite.customerID = uuid.New()
	suite.vendorID = uuid.New()
	suite.product = &models.Product{
		ID:            uuid.New(),
		VendorID:      suite.vendorID,
		Name:          "Chicken Adobo",
		Price:         120,
		StockQuantity: 10,
		IsAvailable:   true,
	}
	suite.vendor = &models.Vendor{ID: suite.vendorID, Name: "Stall 3", IsActive: true}
	suite.cart = &models.Cart{
		ID:         uuid.New(),
		CustomerID: suite.customerID,
		VendorID:   suite.vendorID,
	}
}

func (suite *CartServiceTestSuite) TearDownTest() {
	suite.mockCartRepo.AssertExpectations(suite.T())
	suite.mockProductRepo.AssertExpectations(suite.T())
	suite.mockVendorRepo.AssertExpectations(suite.T())
}

func TestCartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}

func (suite *CartServiceTestSuite) TestAddItem_NewLine() {
	suite.mockProductRepo.On("GetByID", mock.Anything, suite.product.ID).Return(suite.product, nil).Once()
	suite.mockVendorRepo.On("GetByID", mock.Anything, suite.vendorID).Return(suite.vendor, nil).Once()
	suite.mockCartRepo.On("GetOrCreate", mock.Anything, suite.customerID, suite.vendorID).Return(suite.cart, nil).Once()
	suite.mockCartRepo.On("GetWithItems", mock.Anything, suite.customerID, suite.vendorID).Return(suite.cart, nil).Once()
	suite.mockCartRepo.On("InsertItem", mock.Anything, mock.AnythingOfType("*models.CartItem")).Return(nil).Once()

	item, err := suite.service.AddItem(context.Background(), suite.customerID, &AddItemInput{
		ProductID: suite.product.ID,
		Quantity:  2,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.cart.ID, item.CartID)
	assert.Equal(suite.T(), 2, item.Quantity)
	assert.InDelta(suite.T(), 120.0, item.UnitPrice, 0.001)
	assert.Equal(suite.T(), "Chicken Adobo", item.ProductName)
}

func (suite *CartServiceTestSuite) TestAddItem_MergesIdenticalLine() {
	existing := &models.CartItem{
		ID:        uuid.New(),
		CartID:    suite.cart.ID,
		ProductID: suite.product.ID,
		Quantity:  3,
		UnitPrice: 120,
	}
	suite.cart.Items = []*models.CartItem{existing}
	merged := &models.CartItem{
		ID:        existing.ID,
		CartID:    suite.cart.ID,
		ProductID: suite.product.ID,
		Quantity:  5,
		UnitPrice: 120,
	}

	suite.mockProductRepo.On("GetByID", mock.Anything, suite.product.ID).Return(suite.product, nil).Once()
	suite.mockVendorRepo.On("GetByID", mock.Anything, suite.vendorID).Return(suite.vendor, nil).Once()
	suite.mockCartRepo.On("GetOrCreate", mock.Anything, suite.customerID, suite.vendorID).Return(suite.cart, nil).Once()
	suite.mockCartRepo.On("GetWithItems", mock.Anything, suite.customerID, suite.vendorID).Return(suite.cart, nil).Once()
	suite.mockCartRepo.On("AddQuantity", mock.Anything, existing.ID, 2).Return(merged, nil).Once()

	item, err := suite.service.AddItem(context.Background(), suite.customerID, &AddItemInput{
		ProductID: suite.product.ID,
		Quantity:  2,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), existing.ID, item.ID)
	assert.Equal(suite.T(), 5, item.Quantity)
}

func (suite *CartServiceTestSuite) TestAddItem_DifferentAddonsDoNotMerge() {
	existing := &models.CartItem{
		ID:        uuid.New(),
		CartID:    suite.cart.ID,
		ProductID: suite.product.ID,
		Quantity:  1,
		UnitPrice: 120,
		Addons:    models.AddonSnapshot{{ID: uuid.New(), Name: "Egg", Price: 12}},
	}
	suite.cart.Items = []*models.CartItem{existing}

	suite.mockProductRepo.On("GetByID", mock.Anything, suite.product.ID).Return(suite.product, nil).Once()
	suite.mockVendorRepo.On("GetByID", mock.Anything, suite.vendorID).Return(suite.vendor, nil).Once()
	suite.mockCartRepo.On("GetOrCreate", mock.Anything, suite.customerID, suite.vendorID).Return(suite.cart, nil).Once()
	suite.mockCartRepo.On("GetWithItems", mock.Anything, suite.customerID, suite.vendorID).Return(suite.cart, nil).Once()
	suite.mockCartRepo.On("InsertItem", mock.Anything, mock.AnythingOfType("*models.CartItem")).Return(nil).Once()

	item, err := suite.service.AddItem(context.Background(), suite.customerID, &AddItemInput{
		ProductID: suite.product.ID,
		Quantity:  1,
	})

	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), existing.ID, item.ID)
}

func (suite *CartServiceTestSuite) TestAddItem_InsufficientStock() {
	suite.product.StockQuantity = 1

	suite.mockProductRepo.On("GetByID", mock.Anything, suite.product.ID).Return(suite.product, nil).Once()

	_, err := suite.service.AddItem(context.Background(), suite.customerID, &AddItemInput{
		ProductID: suite.product.ID,
		Quantity:  2,
	})

	var stockErr *common.InsufficientStockError
	assert.ErrorAs(suite.T(), err, &stockErr)
	assert.Equal(suite.T(), 1, stockErr.Available)
}

func (suite *CartServiceTestSuite) TestAddItem_MergeRespectsCombinedStock() {
	existing := &models.CartItem{
		ID:        uuid.New(),
		CartID:    suite.cart.ID,
		ProductID: suite.product.ID,
		Quantity:  9,
		UnitPrice: 120,
	}
	suite.cart.Items = []*models.CartItem{existing}

	suite.mockProductRepo.On("GetByID", mock.Anything, suite.product.ID).Return(suite.product, nil).Once()
	suite.mockVendorRepo.On("GetByID", mock.Anything, suite.vendorID).Return(suite.vendor, nil).Once()
	suite.mockCartRepo.On("GetOrCreate", mock.Anything, suite.customerID, suite.vendorID).Return(suite.cart, nil).Once()
	suite.mockCartRepo.On("GetWithItems", mock.Anything, suite.customerID, suite.vendorID).Return(suite.cart, nil).Once()

	_, err := suite.service.AddItem(context.Background(), suite.customerID, &AddItemInput{
		ProductID: suite.product.ID,
		Quantity:  2,
	})

	var stockErr *common.InsufficientStockError
	assert.ErrorAs(suite.T(), err, &stockErr)
	assert.Equal(suite.T(), 11, stockErr.Requested)
}

func (suite *CartServiceTestSuite) TestAddItem_UnavailableProduct() {
	suite.product.IsAvailable = false

	suite.mockProductRepo.On("GetByID", mock.Anything, suite.product.ID).Return(suite.product, nil).Once()

	_, err := suite.service.AddItem(context.Background(), suite.customerID, &AddItemInput{
		ProductID: suite.product.ID,
		Quantity:  1,
	})

	var valErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &valErr)
}

func (suite *CartServiceTestSuite) TestAddItem_InactiveVendor() {
	suite.vendor.IsActive = false

	suite.mockProductRepo.On("GetByID", mock.Anything, suite.product.ID).Return(suite.product, nil).Once()
	suite.mockVendorRepo.On("GetByID", mock.Anything, suite.vendorID).Return(suite.vendor, nil).Once()

	_, err := suite.service.AddItem(context.Background(), suite.customerID, &AddItemInput{
		ProductID: suite.product.ID,
		Quantity:  1,
	})

	var valErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &valErr)
}

func (suite *CartServiceTestSuite) TestAddItem_UnknownAddonRejected() {
	addonID := uuid.New()

	suite.mockProductRepo.On("GetByID", mock.Anything, suite.product.ID).Return(suite.product, nil).Once()
	suite.mockVendorRepo.On("GetByID", mock.Anything, suite.vendorID).Return(suite.vendor, nil).Once()
	suite.mockProductRepo.On("GetAddons", mock.Anything, suite.product.ID, []uuid.UUID{addonID}).
		Return([]*models.Addon{}, nil).Once()

	_, err := suite.service.AddItem(context.Background(), suite.customerID, &AddItemInput{
		ProductID: suite.product.ID,
		Quantity:  1,
		AddonIDs:  []uuid.UUID{addonID},
	})

	var valErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &valErr)
	assert.Equal(suite.T(), "addon_ids", valErr.Field)
}

func (suite *CartServiceTestSuite) TestAddItem_ZeroQuantityRejected() {
	_, err := suite.service.AddItem(context.Background(), suite.customerID, &AddItemInput{
		ProductID: suite.product.ID,
		Quantity:  0,
	})

	var valErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &valErr)
}

func (suite *CartServiceTestSuite) TestUpdateItem_MissingLine() {
	itemID := uuid.New()
	suite.mockCartRepo.On("SetQuantity", mock.Anything, suite.customerID, itemID, 2).Return(int64(0), nil).Once()

	_, err := suite.service.UpdateItem(context.Background(), suite.customerID, itemID, 2)

	var nf *common.NotFoundError
	assert.ErrorAs(suite.T(), err, &nf)
}

func (suite *CartServiceTestSuite) TestMaterialize_ComputesSubtotal() {
	suite.cart.Items = []*models.CartItem{
		{
			ID:        uuid.New(),
			Quantity:  2,
			UnitPrice: 120,
			Addons:    models.AddonSnapshot{{ID: uuid.New(), Price: 15}},
		},
		{
			ID:        uuid.New(),
			Quantity:  1,
			UnitPrice: 80,
		},
	}
	suite.mockCartRepo.On("GetWithItems", mock.Anything, suite.customerID, suite.vendorID).Return(suite.cart, nil).Once()

	snapshot, err := suite.service.Materialize(context.Background(), suite.customerID, suite.vendorID)

	assert.NoError(suite.T(), err)
	assert.InDelta(suite.T(), 350.0, snapshot.Subtotal, 0.001)
	assert.Len(suite.T(), snapshot.Lines, 2)
	assert.Equal(suite.T(), suite.cart.ID, snapshot.CartID)
}

func (suite *CartServiceTestSuite) TestMaterialize_EmptyCart() {
	suite.mockCartRepo.On("GetWithItems", mock.Anything, suite.customerID, suite.vendorID).Return(suite.cart, nil).Once()

	_, err := suite.service.Materialize(context.Background(), suite.customerID, suite.vendorID)

	var empty *common.EmptyCartError
	assert.ErrorAs(suite.T(), err, &empty)
}

func (suite *CartServiceTestSuite) TestGet_AbsentCartIsEmptySnapshot() {
	suite.mockCartRepo.On("GetWithItems", mock.Anything, suite.customerID, suite.vendorID).Return(nil, nil).Once()

	snapshot, err := suite.service.Get(context.Background(), suite.customerID, suite.vendorID)

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), snapshot.Lines)
	assert.Zero(suite.T(), snapshot.Subtotal)
}
