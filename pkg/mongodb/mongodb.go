package mongodb

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config holds MongoDB connection details.
type Config struct {
	URI string
}

// Connect establishes the process-lifetime MongoDB connection and verifies
// it with a ping. The service is useless without storage, so callers are
// expected to fail fast on error rather than retry.
func Connect(cfg Config) (*mongo.Client, error) {
	ctx := context.Background()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		// Best effort cleanup; the caller is about to exit anyway.
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Println("MongoDB Connected...")
	return client, nil
}

// Disconnect closes the MongoDB connection.
func Disconnect(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	if err := client.Disconnect(context.Background()); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}
