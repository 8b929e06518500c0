package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"shopping/internal/models"
	"shopping/internal/repositories"
	"shopping/pkg/rabbitmq"
)

// NewestLimit is how many records the "newest" listing returns.
const NewestLimit = 5

// ProductService handles business logic related to products. Successful
// writes emit a best-effort change event to RabbitMQ.
type ProductService struct {
	repo     repositories.ProductRepository
	mqClient *rabbitmq.Client
}

// NewProductService creates a new ProductService. mqClient may be nil, in
// which case no events are published.
func NewProductService(repo repositories.ProductRepository, mqClient *rabbitmq.Client) *ProductService {
	return &ProductService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetNewestProducts retrieves the most recently created products.
func (s *ProductService) GetNewestProducts() ([]models.Product, error) {
	return s.repo.GetNewest(NewestLimit)
}

// GetProductsByCompany retrieves all products grouped under a company.
func (s *ProductService) GetProductsByCompany(company string) ([]models.Product, error) {
	return s.repo.GetByCompany(company)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.publishEvent("product.created", product.ID.Hex())
	return nil
}

// UpdateProduct merge-overwrites the supplied fields onto an existing
// product and returns the post-update record.
func (s *ProductService) UpdateProduct(id string, update *models.ProductUpdate) (*models.Product, error) {
	product, err := s.repo.Update(id, update)
	if err != nil {
		return nil, err
	}
	s.publishEvent("product.updated", id)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publishEvent("product.deleted", id)
	return nil
}

// publishEvent emits a catalog change event. Failures are logged and never
// surfaced to the caller; the write already succeeded.
func (s *ProductService) publishEvent(eventType, productID string) {
	if s.mqClient == nil {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"event_id":   uuid.New().String(),
		"type":       eventType,
		"product_id": productID,
		"occurred":   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for product %s: %v", eventType, productID, err)
		return
	}

	if err := s.mqClient.Publish("catalog", eventType, body); err != nil {
		log.Printf("Warning: failed to publish %s event for product %s: %v", eventType, productID, err)
	}
}
