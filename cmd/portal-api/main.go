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
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"fueleu/fleet-portal/fleet-portal-backend/internal/banking"
	"fueleu/fleet-portal/fleet-portal-backend/internal/compliance"
	"fueleu/fleet-portal/fleet-portal-backend/internal/config"
	"fueleu/fleet-portal/fleet-portal-backend/internal/export"
	"fueleu/fleet-portal/fleet-portal-backend/internal/pooling"
	"fueleu/fleet-portal/fleet-portal-backend/internal/routes"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Connect to database
	dbURL := cfg.Database.GetDatabaseURL()
	logger.Info("Connecting to database",
		zap.String("host", cfg.Database.Host),
		zap.String("db", cfg.Database.DBName))

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxConnections)
	}
	if cfg.Database.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}

	// Initialize modules
	bankRepo := banking.NewPostgresRepository(db)

	complianceRepo := compliance.NewPostgresRepository(db)
	complianceService := compliance.NewService(complianceRepo, bankRepo, export.NewExcelExporter(), logger)
	complianceHandler := compliance.NewHandler(complianceService, logger)

	bankService := banking.NewService(bankRepo, complianceService, logger)
	bankHandler := banking.NewHandler(bankService, logger)

	routesRepo := routes.NewPostgresRepository(db)
	routesService := routes.NewService(routesRepo, logger)
	routesHandler := routes.NewHandler(routesService, logger)

	poolRepo := pooling.NewPostgresRepository(db)
	poolService := pooling.NewService(poolRepo, complianceService, logger)
	poolHandler := pooling.NewHandler(poolService, logger)

	// Setup Router
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	// CORS Middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Register Routes
	api := router.Group("/api/v1")
	{
		routesHandler.RegisterRoutes(api)
		complianceHandler.RegisterRoutes(api)
		bankHandler.RegisterRoutes(api)
		poolHandler.RegisterRoutes(api)
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
			logger.Fatal("listen failed", zap.Error(err))
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
