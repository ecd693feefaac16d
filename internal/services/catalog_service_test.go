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

// CatalogServiceTestSuite defines the test suite
type CatalogServiceTestSuite struct {
	suite.Suite
	mockVendorRepo  *MockVendorRepository
	mockProductRepo *MockProductRepository
	mockCache       *MockCacheService
	service         CatalogServiceInterface
	vendorID        uuid.UUID
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.mockVendorRepo = &MockVendorRepository{}
	suite.mockProductRepo = &MockProductRepository{}
	suite.mockCache = &MockCacheService{}
	suite.service = NewCatalogService(suite.mockVendorRepo, suite.mockProductRepo, suite.mockCache)
	suite.vendorID = uuid.New()
}

func (suite *CatalogServiceTestSuite) TearDownTest() {
	suite.mockVendorRepo.AssertExpectations(suite.T())
	suite.mockProductRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func (suite *CatalogServiceTestSuite) TestGetVendor_Missing() {
	suite.mockVendorRepo.On("GetByID", mock.Anything, suite.vendorID).Return(nil, nil).Once()

	_, err := suite.service.GetVendor(context.Background(), suite.vendorID)

	var nf *common.NotFoundError
	assert.ErrorAs(suite.T(), err, &nf)
}

func (suite *CatalogServiceTestSuite) TestListVendorProducts_CacheHit() {
	cached := []*models.Product{{ID: uuid.New(), VendorID: suite.vendorID, Name: "Lumpia"}}
	suite.mockCache.On("GetVendorProducts", mock.Anything, suite.vendorID).Return(cached, nil).Once()

	products, err := suite.service.ListVendorProducts(context.Background(), suite.vendorID, 0, 0)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached, products)
}

func (suite *CatalogServiceTestSuite) TestListVendorProducts_CacheMissFillsCache() {
	fresh := []*models.Product{{ID: uuid.New(), VendorID: suite.vendorID, Name: "Lumpia"}}
	suite.mockCache.On("GetVendorProducts", mock.Anything, suite.vendorID).Return(nil, nil).Once()
	suite.mockProductRepo.On("ListByVendor", mock.Anything, suite.vendorID, 50, 0).Return(fresh, nil).Once()
	suite.mockCache.On("SetVendorProducts", mock.Anything, suite.vendorID, fresh, vendorProductsTTL).Return(nil).Once()

	products, err := suite.service.ListVendorProducts(context.Background(), suite.vendorID, 0, 0)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), fresh, products)
}

func (suite *CatalogServiceTestSuite) TestListVendorProducts_PaginatedSkipsCache() {
	page := []*models.Product{{ID: uuid.New(), VendorID: suite.vendorID}}
	suite.mockProductRepo.On("ListByVendor", mock.Anything, suite.vendorID, 10, 20).Return(page, nil).Once()

	products, err := suite.service.ListVendorProducts(context.Background(), suite.vendorID, 10, 20)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), page, products)
}
