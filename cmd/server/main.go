package main

import (
	"log"

	"nimko_store/internal/config"
	"nimko_store/internal/database"
	"nimko_store/internal/handlers"
	"nimko_store/internal/migrations"
	"nimko_store/internal/redis"
	"nimko_store/internal/repository"
	"nimko_store/internal/services"
	"nimko_store/pkg/notify"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Initialize relay client
	relayClient := notify.NewRelayClient(cfg.RelayURL, cfg.RelayUsername, cfg.RelayPassword)

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	productRepo := repository.NewProductRepository(db)
	promoRepo := repository.NewPromoRepository(redisClient)
	orderMirror := repository.NewOrderMirror(redisClient)

	// Initialize services
	promoService := services.NewPromoService(promoRepo, cfg.TotalFreeOrders)
	orderService := services.NewOrderService(orderRepo, orderMirror, promoService)
	reviewService := services.NewReviewService(reviewRepo)
	authService := services.NewAuthService(
		services.StaticAllowList(cfg.AdminEmails),
		cfg.AdminPasswordHash,
		cfg.JWTSecret,
	)

	// Initialize handlers
	storeHandler := handlers.NewStoreHandler(productRepo, orderService, promoService, relayClient, cfg.StorePhone)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	adminHandler := handlers.NewAdminHandler(orderService, authService)

	// Setup routes
	router := handlers.SetupRouter(storeHandler, reviewHandler, adminHandler, authService)

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
