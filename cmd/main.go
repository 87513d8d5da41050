package main

import (
	"time"

	"github.com/Olocraft/propady/internal/chain"
	"github.com/Olocraft/propady/internal/handler"
	mid "github.com/Olocraft/propady/internal/middleware"
	"github.com/Olocraft/propady/internal/model"
	"github.com/Olocraft/propady/pkg/config"
	"github.com/Olocraft/propady/pkg/database"
	"github.com/Olocraft/propady/pkg/jwtutil"
	"github.com/Olocraft/propady/pkg/logger"
	"github.com/Olocraft/propady/pkg/storage"
	"github.com/Olocraft/propady/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting propady",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	_, err = database.InitDB(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Run migrations
	err = database.MigrateModels(
		&model.User{},
		&model.Profile{},
		&model.Property{},
		&model.Investment{},
		&model.CrowdfundingProject{},
		&model.CrowdfundingInvestment{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrations completed")

	// Wire the handlers' external collaborators
	handler.Initialize(
		storage.New(&appConfig.Storage),
		chain.NewVerifier(2*time.Second),
	)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(mid.MetricsMiddleware)

	// Routes
	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	e.POST("/auth/register", handler.Register)
	e.POST("/auth/login", handler.Login)

	// Profile API routes
	profileAPI := e.Group("/api/profile", mid.AuthMiddleware)
	profileAPI.GET("", handler.GetProfile)
	profileAPI.PATCH("", handler.UpdateProfile)

	// Property API routes - browsing is public, mutations require auth
	propertyAPI := e.Group("/api/properties")
	propertyAPI.GET("", handler.ListProperties)
	propertyAPI.GET("/mine", handler.ListMyProperties, mid.AuthMiddleware)
	propertyAPI.GET("/:id", handler.GetProperty)
	propertyAPI.POST("", handler.CreateProperty, mid.AuthMiddleware)
	propertyAPI.PUT("/:id", handler.UpdateProperty, mid.AuthMiddleware)
	propertyAPI.DELETE("/:id", handler.DeleteProperty, mid.AuthMiddleware)
	propertyAPI.POST("/:id/images", handler.UploadPropertyImages, mid.AuthMiddleware)

	// Search endpoint - public
	e.GET("/api/search", handler.SearchProperties)

	// Investment API routes
	investmentAPI := e.Group("/api/investments", mid.AuthMiddleware)
	investmentAPI.POST("", handler.RecordInvestment)
	investmentAPI.GET("", handler.ListMyInvestments)
	investmentAPI.POST("/verify", handler.VerifyTransaction)

	// Payment quote endpoint
	e.GET("/api/payments/quote", handler.GetPaymentQuote, mid.AuthMiddleware)

	// Crowdfunding API routes - browsing is public, mutations require auth
	crowdfundingAPI := e.Group("/api/crowdfunding/projects")
	crowdfundingAPI.GET("", handler.ListCrowdfundingProjects)
	crowdfundingAPI.GET("/:id", handler.GetCrowdfundingProject)
	crowdfundingAPI.POST("", handler.CreateCrowdfundingProject, mid.AuthMiddleware)
	crowdfundingAPI.POST("/:id/invest", handler.InvestInCrowdfundingProject, mid.AuthMiddleware)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
