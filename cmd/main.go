package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"github.com/redis/go-redis/v9"

	"foodcourt/internal/caching"
	"foodcourt/internal/common"
	"foodcourt/internal/events"
	"foodcourt/internal/handlers"
	"foodcourt/internal/jobs/background"
	"foodcourt/internal/middleware"
	"foodcourt/internal/repositories"
	"foodcourt/internal/services"
	"foodcourt/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	jwksURL := os.Getenv("AUTH_JWKS_URL")
	if jwtSecret == "" && jwksURL == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	storageSvc, err := services.NewMinioStorage(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize storage service: %v", err)
	}
	for _, bucket := range []string{services.BucketPaymentProofs, services.BucketReceipts} {
		if err := storageSvc.EnsureBucketExists(context.Background(), bucket); err != nil {
			log.Fatalf("Failed to ensure bucket %s: %v", bucket, err)
		}
	}

	// Create repositories
	vendorRepo := repositories.NewVendorRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	cartRepo := repositories.NewCartRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	notificationRepo := repositories.NewNotificationRepo(pool)

	// Create cache service and event dispatcher
	cacheSvc := caching.NewRedisCacheServiceWithClient(redisClient)
	publisher := events.NewRedisPublisherWithClient(redisClient)
	dispatcher := events.NewDispatcher(publisher)

	// Create services
	cartSvc := services.NewCartService(cartRepo, productRepo, vendorRepo)
	catalogSvc := services.NewCatalogService(vendorRepo, productRepo, cacheSvc)
	notificationSvc := services.NewNotificationService(notificationRepo, cacheSvc, dispatcher)
	receiptSvc := services.NewReceiptService(storageSvc)
	orderSvc := services.NewOrderService(orderRepo, cartSvc, notificationSvc, receiptSvc, dispatcher)

	// Create handlers
	cartHandlers := handlers.NewCartHandlers(cartSvc)
	catalogHandlers := handlers.NewCatalogHandlers(catalogSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc, storageSvc)
	vendorOrderHandlers := handlers.NewVendorOrderHandlers(orderSvc)
	notificationHandlers := handlers.NewNotificationHandlers(notificationSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, redisClient)

	// Background retention jobs
	retention := background.DefaultRetention()
	if raw := os.Getenv("NOTIFICATION_RETENTION_DAYS"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			retention.NotificationDays = v
		}
	}
	if raw := os.Getenv("ORDER_RETENTION_DAYS"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			retention.OrderDays = v
		}
	}
	scheduler := background.NewJobScheduler(notificationRepo, orderRepo, retention)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	// JWT middleware
	jwtMiddleware, err := middleware.NewJWTMiddleware(middleware.AuthConfig{
		Secret:  jwtSecret,
		JWKSURL: jwksURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize JWT middleware: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	// API routes
	v1 := e.Group("/v1")

	// Public browse routes
	v1.GET("/vendors", catalogHandlers.ListVendors)
	v1.GET("/vendors/:id", catalogHandlers.GetVendor)
	v1.GET("/vendors/:id/products", catalogHandlers.ListVendorProducts)

	// Customer routes
	customer := v1.Group("")
	customer.Use(jwtMiddleware)
	customer.Use(middleware.RequireRole(common.RoleCustomer))

	customer.GET("/cart/:vendorId", cartHandlers.GetCart)
	customer.DELETE("/cart/:vendorId", cartHandlers.ClearCart)
	customer.POST("/cart/items", cartHandlers.AddItem)
	customer.PATCH("/cart/items/:itemId", cartHandlers.UpdateItem)
	customer.DELETE("/cart/items/:itemId", cartHandlers.RemoveItem)

	customer.POST("/orders/checkout", orderHandlers.Checkout)
	customer.GET("/orders", orderHandlers.ListOrders)
	customer.GET("/orders/:id", orderHandlers.GetOrder)
	customer.POST("/orders/:id/cancel", orderHandlers.CancelOrder)
	customer.POST("/orders/:id/payment-proof", orderHandlers.UploadPaymentProof)
	customer.GET("/orders/:id/receipt", orderHandlers.GetReceipt)

	// Vendor routes
	vendor := v1.Group("/vendor")
	vendor.Use(jwtMiddleware)
	vendor.Use(middleware.RequireRole(common.RoleVendor))

	vendor.GET("/orders", vendorOrderHandlers.ListOrders)
	vendor.GET("/orders/:id", vendorOrderHandlers.GetOrder)
	vendor.POST("/orders/:id/accept", vendorOrderHandlers.AcceptOrder)
	vendor.POST("/orders/:id/decline", vendorOrderHandlers.DeclineOrder)
	vendor.POST("/orders/:id/ready", vendorOrderHandlers.MarkReady)

	// Notification routes (role resolved from the token)
	notifications := v1.Group("/notifications")
	notifications.Use(jwtMiddleware)

	notifications.GET("", notificationHandlers.ListNotifications)
	notifications.GET("/unread-count", notificationHandlers.UnreadCount)
	notifications.POST("/read-all", notificationHandlers.MarkAllRead)
	notifications.POST("/:id/read", notificationHandlers.MarkRead)
	notifications.DELETE("", notificationHandlers.Cleanup)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Foodcourt server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
