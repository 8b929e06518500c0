package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a catalog entry as persisted; size and color are
// optional variant metadata.
type Product struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Company     string             `json:"company" bson:"company"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"desc" bson:"desc"`
	Image       string             `json:"img" bson:"img"`
	Price       float64            `json:"price" bson:"price"`
	Size        string             `json:"size,omitempty" bson:"size,omitempty"`
	Color       string             `json:"color,omitempty" bson:"color,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProductCreate is the create-request shape. The five tagged fields are
// required; price is a pointer so an explicit zero is distinguishable from
// a missing field.
type ProductCreate struct {
	Company     string   `json:"company" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"desc" validate:"required"`
	Image       string   `json:"img" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
	Size        string   `json:"size,omitempty"`
	Color       string   `json:"color,omitempty"`
}

// Product builds the record to persist. Callers must have validated the
// request first; Price is dereferenced.
func (pc *ProductCreate) Product() Product {
	return Product{
		Company:     pc.Company,
		Title:       pc.Title,
		Description: pc.Description,
		Image:       pc.Image,
		Price:       *pc.Price,
		Size:        pc.Size,
		Color:       pc.Color,
	}
}

// ProductUpdate carries the fields of a partial update. Only non-nil fields
// are written; everything else on the stored record is left untouched.
type ProductUpdate struct {
	Company     *string  `json:"company,omitempty"`
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"desc,omitempty"`
	Image       *string  `json:"img,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Size        *string  `json:"size,omitempty"`
	Color       *string  `json:"color,omitempty"`
}
