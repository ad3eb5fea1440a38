package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	handler "github.com/the-ivan/fintech-demo/internal/adapter/primary/http"
	"github.com/the-ivan/fintech-demo/internal/adapter/secondary/database"
	"github.com/the-ivan/fintech-demo/internal/adapter/secondary/memory"
	"github.com/the-ivan/fintech-demo/internal/adapter/secondary/messaging"
	"github.com/the-ivan/fintech-demo/internal/constant/model/db"
	"github.com/the-ivan/fintech-demo/internal/core/service"
	"github.com/the-ivan/fintech-demo/internal/port/output"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	dbConnStr := os.Getenv("DATABASE_URL")
	amqpURL := os.Getenv("RABBITMQ_URL")
	port := getEnv("PORT", "8080")

	// Initialize secondary adapters: Repository and Ledger (implement output ports)
	// An empty DATABASE_URL selects the in-memory store.
	var paymentRepo output.PaymentRepository
	var ledger output.IdempotencyLedger
	if dbConnStr != "" {
		dbConn, err := db.NewDB(dbConnStr)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer dbConn.Close()

		gormRepo := database.NewGormPaymentRepository(dbConn.DB)
		paymentRepo = gormRepo
		ledger = gormRepo
		log.Println("Using Postgres payment store")
	} else {
		memRepo := memory.NewPaymentRepository()
		paymentRepo = memRepo
		ledger = memRepo
		log.Println("Using in-memory payment store")
	}

	// Initialize secondary adapter: Messaging (implements output port)
	// An empty RABBITMQ_URL selects the no-op publisher.
	var msgClient output.PaymentMessaging
	if amqpURL != "" {
		var err error
		msgClient, err = messaging.NewRabbitMQClient(amqpURL)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
	} else {
		msgClient = messaging.NewNoopClient()
	}
	defer msgClient.Close()

	// Initialize core service (implements input port)
	paymentService := service.NewPaymentService(paymentRepo, ledger, msgClient)

	// Initialize primary adapter: HTTP handler (uses input port)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	// Initialize Echo
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Routes
	api := e.Group("/api/v1")
	api.POST("/payments", paymentHandler.CreatePayment)
	api.GET("/payments/:id", paymentHandler.GetPayment)

	// Health check
	e.GET("/health", paymentHandler.HealthCheck)

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
