package repositories

import (
	"errors"

	"shopping/internal/models"
)

// Sentinel errors shared by all repository implementations. Handlers decide
// how each maps onto the wire; repositories only classify.
var (
	// ErrNotFound indicates the identifier was well-formed but no record has it.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID indicates the identifier is not a valid ObjectID hex string.
	ErrInvalidID = errors.New("invalid record id")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetNewest(limit int64) ([]models.Product, error)
	GetByCompany(company string) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(id string, update *models.ProductUpdate) (*models.Product, error)
	Delete(id string) error
}
