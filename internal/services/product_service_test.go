package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopping/internal/models"
	"shopping/internal/repositories"
	"shopping/internal/services"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetNewest(limit int64) ([]models.Product, error) {
	args := m.Called(limit)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByCompany(company string) ([]models.Product, error) {
	args := m.Called(company)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(id string, update *models.ProductUpdate) (*models.Product, error) {
	args := m.Called(id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: primitive.NewObjectID(), Company: "Acme", Title: "Sneaker", Price: 10.0},
		{ID: primitive.NewObjectID(), Company: "Globex", Title: "Jacket", Price: 20.0},
	}

	mockRepo.On("GetAll").Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetNewestProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: primitive.NewObjectID(), Company: "Acme", Title: "Newest", Price: 30.0},
	}

	// The service owns the limit; the repository just gets told 5.
	mockRepo.On("GetNewest", int64(services.NewestLimit)).Return(expectedProducts, nil).Once()

	products, err := service.GetNewestProducts()

	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductsByCompany(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: primitive.NewObjectID(), Company: "Acme", Title: "Sneaker", Price: 10.0},
	}

	mockRepo.On("GetByCompany", "Acme").Return(expectedProducts, nil).Once()

	products, err := service.GetProductsByCompany("Acme")

	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	id := primitive.NewObjectID()
	expectedProduct := &models.Product{ID: id, Company: "Acme", Title: "Sneaker", Price: 10.0}

	// Test successful retrieval
	mockRepo.On("GetByID", id.Hex()).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(id.Hex())
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	missing := primitive.NewObjectID().Hex()
	mockRepo.On("GetByID", missing).Return(nil, repositories.ErrNotFound).Once()
	product, err = service.GetProductByID(missing)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	newProduct := &models.Product{Company: "Acme", Title: "Sneaker", Description: "Runs fast", Image: "http://img/s.png", Price: 50.0}

	// Test successful creation
	mockRepo.On("Create", newProduct).Return(nil).Once()
	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", newProduct).Return(fmt.Errorf("database error")).Once()
	err = service.CreateProduct(newProduct)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	id := primitive.NewObjectID()
	newPrice := 42.0
	update := &models.ProductUpdate{Price: &newPrice}
	updatedProduct := &models.Product{ID: id, Company: "Acme", Title: "Sneaker", Price: newPrice}

	// Test successful update
	mockRepo.On("Update", id.Hex(), update).Return(updatedProduct, nil).Once()
	product, err := service.UpdateProduct(id.Hex(), update)
	assert.NoError(t, err)
	assert.Equal(t, updatedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test update failure (product not found in repo)
	missing := primitive.NewObjectID().Hex()
	mockRepo.On("Update", missing, update).Return(nil, repositories.ErrNotFound).Once()
	product, err = service.UpdateProduct(missing, update)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	id := primitive.NewObjectID().Hex()

	// Test successful deletion
	mockRepo.On("Delete", id).Return(nil).Once()
	err := service.DeleteProduct(id)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test deletion failure (product not found)
	missing := primitive.NewObjectID().Hex()
	mockRepo.On("Delete", missing).Return(repositories.ErrNotFound).Once()
	err = service.DeleteProduct(missing)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
