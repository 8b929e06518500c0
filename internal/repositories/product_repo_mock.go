package repositories

import (
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopping/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// Records are kept in insertion order so GetNewest behaves like the store's
// reverse natural order. Identifier handling matches the MongoDB
// implementation, including ErrInvalidID on malformed hex.
type MockProductRepository struct {
	products []models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make([]models.Product, 0),
	}
}

// GetAll returns all products in insertion order.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetNewest returns up to limit products, newest first.
func (r *MockProductRepository) GetNewest(limit int64) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, 0, limit)
	for i := len(r.products) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, r.products[i])
	}
	return out, nil
}

// GetByCompany returns all products whose company field equals company.
func (r *MockProductRepository) GetByCompany(company string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, 0)
	for _, p := range r.products {
		if p.Company == company {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetByID returns a product by its hex ObjectID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == oid {
			product := p
			return &product, nil
		}
	}
	return nil, ErrNotFound
}

// Create appends a new product, assigning an ID and timestamps.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products = append(r.products, *product)
	return nil
}

// Update merge-overwrites the supplied fields onto an existing product.
func (r *MockProductRepository) Update(id string, update *models.ProductUpdate) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID != oid {
			continue
		}
		p := &r.products[i]
		if update.Company != nil {
			p.Company = *update.Company
		}
		if update.Title != nil {
			p.Title = *update.Title
		}
		if update.Description != nil {
			p.Description = *update.Description
		}
		if update.Image != nil {
			p.Image = *update.Image
		}
		if update.Price != nil {
			p.Price = *update.Price
		}
		if update.Size != nil {
			p.Size = *update.Size
		}
		if update.Color != nil {
			p.Color = *update.Color
		}
		updated := *p
		return &updated, nil
	}
	return nil, ErrNotFound
}

// Delete removes a product by its hex ObjectID.
func (r *MockProductRepository) Delete(id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID == oid {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
