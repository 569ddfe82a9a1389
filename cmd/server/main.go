package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"github.com/cashcashapp/cashcash-backend/internal/api"        // API handlers
	"github.com/cashcashapp/cashcash-backend/internal/config"     // Configuration
	"github.com/cashcashapp/cashcash-backend/internal/lottery"    // Participation & redemption engine
	"github.com/cashcashapp/cashcash-backend/internal/middleware" // Middleware
	"github.com/cashcashapp/cashcash-backend/internal/scheduler"  // Weekly cycle rollover

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	// TranslateError maps duplicate-key failures to gorm.ErrDuplicatedKey,
	// which the engine relies on for the one-participation-per-cycle check
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// The engine is built once and shared by every handler
	svc := lottery.NewService(db)

	// Weekly cycle rollover job
	if _, err := scheduler.Start(redisClient); err != nil {
		logrus.Fatalf("failed to start scheduler: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default()

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Public routes
	r.POST("/auth/register", api.RegisterHandler(db, cfg.JWTSecret)) // Registration endpoint
	r.POST("/auth/login", api.LoginHandler(db, cfg.JWTSecret))       // Login endpoint
	r.GET("/stats/global", api.GlobalStatsHandler(svc, redisClient)) // Public game summary
	r.GET("/health", api.HealthHandler())                            // Liveness check

	// Player routes (protected by JWT)
	playerGroup := r.Group("/")
	playerGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	playerGroup.GET("/auth/me", api.MeHandler(db))                         // Profile endpoint
	playerGroup.GET("/cities", api.ListCitiesHandler(svc, redisClient))    // Annotated city listing
	playerGroup.POST("/participate", api.ParticipateHandler(svc, redisClient)) // Join a weekly cycle
	playerGroup.POST("/scan-qr", api.ScanQRHandler(svc, redisClient))      // Redeem a pot

	// Wallet routes (protected by JWT)
	walletGroup := playerGroup.Group("/wallet")
	walletGroup.POST("/deposit", api.DepositHandler(svc, redisClient))          // Deposit endpoint
	walletGroup.POST("/withdraw", api.WithdrawHandler(svc, redisClient))        // Withdrawal endpoint
	walletGroup.GET("/transactions", api.TransactionsHandler(svc, redisClient)) // Ledger history endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.POST("/cities", api.CreateCityHandler(svc))                          // Register a city
	adminGroup.GET("/cities", api.ListCitiesAdminHandler(svc))                      // Full city listing
	adminGroup.DELETE("/cities/:id", api.DeleteCityHandler(svc, redisClient))       // Deactivate a city
	adminGroup.POST("/cities/:id/hint", api.PublishHintHandler(svc, redisClient))   // Publish a clue
	adminGroup.DELETE("/cities/:id/hint", api.UnpublishHintHandler(svc, redisClient)) // Hide a clue

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
