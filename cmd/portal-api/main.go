package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"carbon-trade/trading-portal/trading-portal-backend/internal/account"
	"carbon-trade/trading-portal/trading-portal-backend/internal/analytics"
	"carbon-trade/trading-portal/trading-portal-backend/internal/auth"
	"carbon-trade/trading-portal/trading-portal-backend/internal/config"
	"carbon-trade/trading-portal/trading-portal-backend/internal/requests"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Load .env if present, then configuration
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Connect to database; fall back to the in-memory store for dev mode
	var store requests.Store
	var balanceRepo account.Repository

	db, err := sqlx.Connect("postgres", cfg.Database.GetDatabaseURL())
	if err != nil {
		logger.Warn("Database unavailable, using in-memory store", zap.Error(err))
		store = requests.NewMemoryStore()
		memBalances := account.NewMemoryRepository()
		memBalances.Seed("DBS", 500, decimal.NewFromFloat(10000.50))
		balanceRepo = memBalances
	} else {
		defer db.Close()
		db.SetMaxOpenConns(cfg.Database.MaxConnections)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		store = requests.NewPostgresStore(db, cfg.Database.QueryTimeout)
		balanceRepo = account.NewPostgresRepository(db)
	}

	// Initialize modules
	requestService := requests.NewService(store, logger, cfg.Trading.OverdueThreshold())
	requestHandler := requests.NewHandler(requestService, logger)

	accountHandler := account.NewHandler(balanceRepo, logger)

	analyticsClient := analytics.NewClient(cfg.Analytics.BaseURL, cfg.Analytics.Timeout)
	analyticsHandler := analytics.NewHandler(analyticsClient, logger)

	authMiddleware := auth.NewMiddleware(cfg.Security.JWTSecret, logger)

	// Setup Router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS Middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Register Routes
	api := router.Group("/api/v1")
	api.Use(authMiddleware.RequireAuth())
	{
		requestHandler.RegisterRoutes(api)
		accountHandler.RegisterRoutes(api)
		analyticsHandler.RegisterRoutes(api)
	}

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	// Start Server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.Int("port", cfg.Server.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
