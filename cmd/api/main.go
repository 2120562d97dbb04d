package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"trashapp/internal/config"
	"trashapp/internal/database"
	"trashapp/internal/handlers"
	"trashapp/internal/logger"
	"trashapp/internal/middleware"
	"trashapp/internal/models"
	"trashapp/internal/notify"
	"trashapp/internal/services"
	"trashapp/internal/storage"
	"trashapp/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "trashapp/internal/docs" // Import swagger docs
)

// @title           TrashApp API
// @version         1.0
// @description     TrashApp is a waste-pickup logistics backend: customers request and track pickups, set up recurring schedules, and admins dispatch drivers.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Notification events go to AMQP when a broker is configured,
	// otherwise to the log.
	var notifier notify.Notifier = notify.LogNotifier{}
	if appConfig.AMQPURL != "" {
		notifier = notify.NewAMQPNotifier(appConfig.AMQPURL, appConfig.NotifyQueue)
	}

	// Photo storage
	store, err := storage.NewLocalStore(appConfig.UploadDir, appConfig.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize photo storage: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	googleService := services.NewGoogleService(appConfig)
	pickupService := services.NewPickupService(db)
	scheduleService := services.NewScheduleService(db)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, tokenService, googleService, notifier)
	pickupHandler := handlers.NewPickupHandler(pickupService, store, notifier)
	recurringHandler := handlers.NewRecurringHandler(scheduleService)
	adminHandler := handlers.NewAdminHandler(adminService, pickupService, notifier)
	portfolioHandler := handlers.NewPortfolioHandler()
	healthHandler := handlers.NewHealthHandler(appConfig.Version)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Uploaded pickup photos
	router.Static("/uploads", appConfig.UploadDir)

	// Health check endpoint
	router.GET("/health", healthHandler.Check)

	// API v1 group
	v1 := router.Group(appConfig.APIPrefix)

	// Auth routes; login and register sit behind the rate limiter
	rdb := middleware.NewRedisClient(appConfig)
	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimit(appConfig, rdb))
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/token/refresh", authHandler.Refresh)
	auth.POST("/email/verify", authHandler.VerifyEmail)
	auth.POST("/password/reset", authHandler.ResetPassword)
	auth.POST("/password/reset/confirm", authHandler.ConfirmReset)
	auth.GET("/google/init", authHandler.GoogleInit)
	auth.POST("/google/token", authHandler.GoogleToken)

	authProtected := v1.Group("/auth")
	authProtected.Use(middleware.AuthMiddleware())
	authProtected.POST("/logout", authHandler.Logout)
	authProtected.GET("/profile", authHandler.Profile)
	authProtected.POST("/email/resend", authHandler.ResendVerification)
	authProtected.POST("/password/change", authHandler.ChangePassword)

	// Customer pickup routes
	pickups := v1.Group("/customer/pickups")
	pickups.Use(middleware.AuthMiddleware())
	pickups.POST("/request", pickupHandler.Create)
	pickups.GET("/my", pickupHandler.List)
	pickups.GET("/stats", pickupHandler.Stats)
	pickups.GET("/recurring", recurringHandler.List)
	pickups.POST("/recurring/create", recurringHandler.Create)
	pickups.PATCH("/recurring/:id/toggle", recurringHandler.Toggle)
	pickups.GET("/:id", pickupHandler.Get)
	pickups.PUT("/:id", pickupHandler.Update)
	pickups.PATCH("/:id/cancel", pickupHandler.Cancel)
	pickups.POST("/:id/photos", pickupHandler.UploadPhotos)
	pickups.GET("/:id/tracking", pickupHandler.Tracking)
	pickups.POST("/:id/rate", pickupHandler.Rate)
	pickups.POST("/:id/contact-driver", pickupHandler.ContactDriver)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	admin.GET("/dashboard/stats", adminHandler.DashboardStats)
	admin.GET("/pickups", adminHandler.ListPickups)
	admin.POST("/pickups/:id/assign", adminHandler.AssignDriver)
	admin.POST("/pickups/:id/status", adminHandler.UpdateStatus)
	admin.GET("/drivers", adminHandler.ListDrivers)
	admin.GET("/users", adminHandler.ListUsers)

	// Public portfolio routes
	pf := v1.Group("/portfolio")
	pf.GET("", portfolioHandler.Get)
	pf.GET("/projects", portfolioHandler.Projects)
	pf.GET("/projects/:id", portfolioHandler.ProjectByID)
	pf.GET("/skills", portfolioHandler.Skills)
	pf.GET("/services", portfolioHandler.Services)
	pf.GET("/intro", portfolioHandler.Intro)
	pf.GET("/contact", portfolioHandler.Contact)
	pf.GET("/social", portfolioHandler.Social)
	pf.GET("/logotext", portfolioHandler.LogoText)

	server := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	log.Infof("Starting TrashApp backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return server.ListenAndServe()
}
