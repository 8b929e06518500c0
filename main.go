package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"

	"shopping/internal/handlers"
	"shopping/internal/middleware"
	"shopping/internal/repositories"
	"shopping/internal/services"
	"shopping/pkg/mongodb"
	"shopping/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	// Set up Viper to read configuration from environment variables
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "shopping")
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")
	jwtSecret := viper.GetString("JWT_SECRET")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize MongoDB ---
	// Fail fast: the service is useless without storage, so a failed
	// connection terminates the process with no retry.
	mongoClient, err := mongodb.Connect(mongodb.Config{
		URI: viper.GetString("MONGO_URI"),
	})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	db := mongoClient.Database(viper.GetString("MONGO_DB"))

	// --- Initialize RabbitMQ Client ---
	// Event publishing is optional; with no URL configured the service runs
	// without emitting catalog events.
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close() // Ensure the connection is closed on exit
	} else {
		log.Println("RABBITMQ_URL not set, catalog event publishing disabled")
	}

	// --- Initialize Repositories ---
	productRepo := repositories.NewMongoProductRepository(db.Collection("products"))
	userRepo := repositories.NewMongoUserRepository(db.Collection("users"))

	// --- Initialize App ---
	app := buildApp(productRepo, userRepo, mqClient, jwtSecret)

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	// Shutdown Fiber app
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	if err := mongodb.Disconnect(mongoClient); err != nil {
		log.Printf("Error during MongoDB disconnect: %v", err)
	}

	// RabbitMQ connection close is handled by defer above
	log.Println("Server gracefully stopped")
}

// buildApp wires repositories, services, handlers, and routes into a Fiber
// app. Kept separate from main so tests can assemble the same app around
// in-memory repositories.
func buildApp(
	productRepo repositories.ProductRepository,
	userRepo repositories.UserRepository,
	mqClient *rabbitmq.Client,
	jwtSecret string,
) *fiber.App {
	// --- Initialize Services ---
	productService := services.NewProductService(productRepo, mqClient)
	authService := services.NewAuthService(userRepo, jwtSecret)

	// --- Initialize Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	authHandler := handlers.NewAuthHandler(authService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	api := app.Group("/api")

	// Authentication routes (public)
	authHandler.RegisterRoutes(api)

	// Product routes; listing is public, writes and single fetch sit behind
	// the admin gate.
	productHandler.RegisterRoutes(api, middleware.AdminRequired(authService))

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}
