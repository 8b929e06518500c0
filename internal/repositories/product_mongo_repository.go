package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopping/internal/models"
)

// MongoProductRepository is a MongoDB implementation of ProductRepository.
type MongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a new instance of MongoProductRepository
// backed by the given collection.
func NewMongoProductRepository(collection *mongo.Collection) *MongoProductRepository {
	return &MongoProductRepository{
		collection: collection,
	}
}

// GetAll retrieves all products in the store's natural order.
func (r *MongoProductRepository) GetAll() ([]models.Product, error) {
	return r.find(bson.M{}, nil)
}

// GetNewest retrieves the most recently created products, newest first.
// ObjectIDs embed their creation time, so reverse _id order is creation order.
func (r *MongoProductRepository) GetNewest(limit int64) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}).SetLimit(limit)
	return r.find(bson.M{}, opts)
}

// GetByCompany retrieves all products whose company field equals company.
func (r *MongoProductRepository) GetByCompany(company string) ([]models.Product, error) {
	return r.find(bson.M{"company": company}, nil)
}

func (r *MongoProductRepository) find(filter bson.M, opts *options.FindOptions) ([]models.Product, error) {
	ctx := context.Background()

	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.collection.Find(ctx, filter, opts)
	} else {
		cursor, err = r.collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its hex ObjectID.
func (r *MongoProductRepository) GetByID(id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var product models.Product
	err = r.collection.FindOne(context.Background(), bson.M{"_id": oid}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product. The store-generated ID and timestamps are
// written back onto the passed product.
func (r *MongoProductRepository) Create(product *models.Product) error {
	now := time.Now().UTC()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := r.collection.InsertOne(context.Background(), product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update merge-overwrites the supplied fields onto an existing product and
// returns the post-update record.
func (r *MongoProductRepository) Update(id string, update *models.ProductUpdate) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Company != nil {
		set["company"] = *update.Company
	}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["desc"] = *update.Description
	}
	if update.Image != nil {
		set["img"] = *update.Image
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Size != nil {
		set["size"] = *update.Size
	}
	if update.Color != nil {
		set["color"] = *update.Color
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	err = r.collection.FindOneAndUpdate(
		context.Background(),
		bson.M{"_id": oid},
		bson.M{"$set": set},
		opts,
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return &updated, nil
}

// Delete removes a product by its hex ObjectID.
func (r *MongoProductRepository) Delete(id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := r.collection.DeleteOne(context.Background(), bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
