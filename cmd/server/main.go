package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/silvertrail/tours-backend/internal/config"
	"github.com/silvertrail/tours-backend/internal/handlers"
	"github.com/silvertrail/tours-backend/internal/middleware"
	"github.com/silvertrail/tours-backend/internal/models"
	"github.com/silvertrail/tours-backend/internal/repository"
	"github.com/silvertrail/tours-backend/internal/services"
	"github.com/silvertrail/tours-backend/pkg/token"
	"github.com/silvertrail/tours-backend/pkg/weather"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Silvertrail Tours Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize repositories
	tourRepository := repository.NewTourRepository()
	userRepository := repository.NewUserRepository()
	bookingRepository := repository.NewBookingRepository()
	feedbackRepository := repository.NewFeedbackRepository()

	// Initialize services
	logger.Info("Initializing services...")
	tokenService := token.NewService(cfg.Session.Secret, cfg.Session.TokenExpiry)
	weatherClient := weather.NewClient(weather.Config{
		APIURL:  cfg.Weather.APIURL,
		APIKey:  cfg.Weather.APIKey,
		Timeout: cfg.Weather.Timeout,
	})
	if cfg.Weather.Mode != "production" {
		logger.Info("Weather client in development mode (canned conditions)")
	}

	pricingService := services.NewPricingService(cfg.Booking)
	intentStore := services.NewIntentStore(logger)
	authService := services.NewAuthService(userRepository, cfg.Security, logger)
	auditService := services.NewAuditService(cfg.Security.EnableAuditLog, logger)
	voucherService := services.NewVoucherService()
	orchestrator := services.NewBookingOrchestratorService(
		tourRepository,
		userRepository,
		bookingRepository,
		intentStore,
		pricingService,
		cfg.Booking,
		logger,
	)
	logger.Info("Services initialized")

	// Repositories are empty at every start; seed the admin account and, in
	// development, a few sample tours.
	seedAdmin(cfg, userRepository, logger)
	if cfg.Server.Environment != "production" {
		seedSampleTours(tourRepository, logger)
	}

	// Initialize handlers
	tourHandler := handlers.NewTourHandler(tourRepository, pricingService, weatherClient, logger)
	bookingHandler := handlers.NewBookingHandler(
		orchestrator,
		bookingRepository,
		tourRepository,
		userRepository,
		voucherService,
		auditService,
		logger,
	)
	authHandler := handlers.NewAuthHandler(authService, orchestrator, auditService, tokenService, cfg.Session, logger)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackRepository, logger)
	adminHandler := handlers.NewAdminHandler(tourRepository, userRepository, bookingRepository, feedbackRepository, logger)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler())

	// Every route below participates in the session so guests can carry a
	// pending booking intent through registration.
	router.Use(middleware.SessionMiddleware(tokenService, cfg.Session))

	// Public routes
	router.GET("/tours", tourHandler.ListTours)
	router.GET("/tours/featured", tourHandler.FeaturedTours)
	router.GET("/search", tourHandler.SearchTours)
	router.GET("/tour/:id", tourHandler.GetTour)
	router.GET("/tour/:id/price", tourHandler.PreviewPrice)
	router.POST("/book/:id", bookingHandler.Book)
	router.GET("/intent", bookingHandler.PendingIntent)
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.POST("/logout", authHandler.Logout)

	// Authenticated routes
	authenticated := router.Group("")
	authenticated.Use(middleware.RequireAuth())
	{
		authenticated.GET("/my-bookings", bookingHandler.MyBookings)
		authenticated.GET("/booking/:id", bookingHandler.GetBooking)
		authenticated.GET("/booking/:id/voucher", bookingHandler.Voucher)
		authenticated.POST("/booking/:id/cancel", bookingHandler.CancelBooking)
		authenticated.POST("/feedback", feedbackHandler.Submit)
		authenticated.GET("/my-feedback", feedbackHandler.MyFeedback)
	}

	// Admin routes
	admin := router.Group("/admin")
	admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
	{
		admin.POST("/tours", adminHandler.CreateTour)
		admin.PUT("/tours/:id", adminHandler.UpdateTour)
		admin.DELETE("/tours/:id", adminHandler.DeleteTour)
		admin.GET("/bookings", adminHandler.AllBookings)
		admin.PUT("/bookings/:id/status", adminHandler.UpdateBookingStatus)
		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/feedback", adminHandler.ListFeedback)
		admin.POST("/feedback/:id/respond", adminHandler.RespondToFeedback)
		admin.PUT("/feedback/:id/status", adminHandler.UpdateFeedbackStatus)
		admin.PUT("/feedback/:id/priority", adminHandler.UpdateFeedbackPriority)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// seedAdmin creates the administrator account. Registration only ever creates
// client accounts, so without this seed the admin surface is unreachable.
func seedAdmin(cfg *config.Config, users *repository.UserRepository, logger *logrus.Logger) {
	if cfg.Security.AdminPassword == "" {
		logger.Warn("ADMIN_PASSWORD not set, skipping admin account seed")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Security.AdminPassword), cfg.Security.BcryptCost)
	if err != nil {
		logger.Fatalf("Failed to hash admin password: %v", err)
	}

	admin, err := users.Create(models.User{
		Email:        cfg.Security.AdminEmail,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		FirstName:    "Admin",
		LastName:     "Silvertrail",
		CreatedAt:    time.Now(),
	})
	if err != nil {
		logger.Fatalf("Failed to seed admin account: %v", err)
	}

	logger.WithField("email", admin.Email).Info("Admin account seeded")
}

// seedSampleTours loads a small development catalog
func seedSampleTours(tours *repository.TourRepository, logger *logrus.Logger) {
	minAlpine := 95.0
	samples := []models.Tour{
		{
			Title:           "Gentle Alpine Meadows",
			Description:     "Easy mountain walks with valley views, paced for comfort",
			City:            "Interlaken",
			Country:         "Switzerland",
			Category:        models.CategoryElderlyMountain,
			DurationDays:    5,
			BasePrice:       120,
			MinPrice:        &minAlpine,
			Capacity:        16,
			WeatherAdvisory: true,
		},
		{
			Title:        "Tallinn Old Town",
			Description:  "Medieval city walk with frequent rest stops",
			City:         "Tallinn",
			Country:      "Estonia",
			Category:     models.CategoryCity,
			DurationDays: 2,
			BasePrice:    40,
			Capacity:     25,
		},
		{
			Title:        "Dolomites Panorama",
			Description:  "Cable car ascents and ridge viewpoints",
			City:         "Bolzano",
			Country:      "Italy",
			Category:     models.CategoryMountain,
			DurationDays: 7,
			BasePrice:    210,
			Capacity:     12,
		},
	}

	for _, tour := range samples {
		if _, err := tours.Create(tour); err != nil {
			logger.WithError(err).Warn("Failed to seed sample tour")
		}
	}

	logger.WithField("count", len(samples)).Info("Sample tours seeded")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		if session, ok := middleware.GetSession(c); ok && session.UserID != nil {
			fields["user_id"] = *session.UserID
		}

		entry := logger.WithFields(fields)

		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
