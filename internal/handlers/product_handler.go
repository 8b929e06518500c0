package handlers

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"shopping/internal/models"
	"shopping/internal/repositories"
	"shopping/internal/services"
)

// FieldError is one entry of the accumulated create-validation result.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// requiredFieldMessages maps struct field names to the message returned when
// the field is missing from a create payload.
var requiredFieldMessages = map[string]string{
	"Company":     "Please enter a company name",
	"Title":       "Please enter a title",
	"Description": "Please enter a description",
	"Image":       "Please enter an image url",
	"Price":       "Please enter a price",
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newValidator(),
	}
}

// newValidator builds a validator that reports field names as they appear
// on the wire.
func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// RegisterRoutes registers the product routes with the Fiber app. Listing is
// public; everything else runs behind the admin gate.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, adminGate fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", adminGate, h.HandleGetProduct)
	productRoutes.Post("/", adminGate, h.HandleCreateProduct)
	productRoutes.Put("/:id", adminGate, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", adminGate, h.HandleDeleteProduct)
}

// HandleListProducts lists products. The "new" modifier wins over
// "collection"; the two never compose.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	queryNew := c.Query("new")
	queryCollection := c.Query("collection")

	var products []models.Product
	var err error
	switch {
	case queryNew != "":
		products, err = h.service.GetNewestProducts()
	case queryCollection != "":
		products, err = h.service.GetProductsByCompany(queryCollection)
	default:
		products, err = h.service.GetAllProducts()
	}
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return serverError(c)
	}
	return c.JSON(products)
}

// HandleGetProduct retrieves a single product. An absent record is reported
// as a 200 with a null body, a malformed id as 400.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	product, err := h.service.GetProductByID(id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrInvalidID):
			return productDoesNotExist(c)
		case errors.Is(err, repositories.ErrNotFound):
			return c.JSON(nil)
		default:
			log.Printf("Error getting product %s: %v", id, err)
			return serverError(c)
		}
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product. All five required fields are
// checked for presence and every failure is reported, in field order. A
// present-but-zero price is accepted; only an absent one is an error.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req models.ProductCreate
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create product body: %v", err)
		return invalidBody(c, err)
	}

	if err := h.validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			log.Printf("Error validating create product body: %v", err)
			return serverError(c)
		}
		fieldErrors := make([]FieldError, 0, len(validationErrors))
		for _, e := range validationErrors {
			msg, ok := requiredFieldMessages[e.StructField()]
			if !ok {
				msg = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.StructField(), e.Tag())
			}
			fieldErrors = append(fieldErrors, FieldError{Field: e.Field(), Message: msg})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": fieldErrors,
		})
	}

	product := req.Product()
	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return serverError(c)
	}
	return c.JSON(product)
}

// HandleUpdateProduct merge-overwrites the supplied fields onto an existing
// product. Unlike create, the body is not validated.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var update models.ProductUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing update product body: %v", err)
		return invalidBody(c, err)
	}

	product, err := h.service.UpdateProduct(id, &update)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidID) || errors.Is(err, repositories.ErrNotFound) {
			return productDoesNotExist(c)
		}
		log.Printf("Error updating product %s: %v", id, err)
		return serverError(c)
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteProduct(id); err != nil {
		if errors.Is(err, repositories.ErrInvalidID) || errors.Is(err, repositories.ErrNotFound) {
			return productDoesNotExist(c)
		}
		log.Printf("Error deleting product %s: %v", id, err)
		return serverError(c)
	}
	return c.JSON(fiber.Map{
		"msg": "Product is successfully deleted",
	})
}

func invalidBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

func productDoesNotExist(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"msg": "product doesn't exist",
	})
}

func serverError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Server Error",
	})
}
