package router

import (
	"context"

	"github.com/graceworks/grace-backend/internal/handlers"
	"github.com/graceworks/grace-backend/internal/middleware"
	"github.com/graceworks/grace-backend/internal/models"
	"github.com/graceworks/grace-backend/internal/repositories"
	"github.com/graceworks/grace-backend/internal/services"
	"github.com/graceworks/grace-backend/pkg/config"
	"github.com/graceworks/grace-backend/pkg/mediastore"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, cfg *config.Config) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(middleware.RateLimit(cfg.RateLimitPerMinute))
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *config.DB, store mediastore.MediaStore, logger *zap.Logger) error {
	// AutoMigrate PostgreSQL models
	if err := db.Postgres.AutoMigrate(&models.Donation{}); err != nil {
		return err
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	mongoDB := db.Mongo.Database(cfg.MongoDatabase)

	// --- Repositories ---
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	userRepo := repositories.NewMongoUserRepository(mongoDB)
	if err := userRepo.EnsureIndexes(context.Background()); err != nil {
		return err
	}
	ngoRepo := repositories.NewMongoNGORepository(mongoDB)
	donationRepo := repositories.NewPostgresDonationRepository(db.Postgres)

	// --- Services ---
	feedService := services.NewFeedService(postRepo, store, logger)

	api := e.Group("/api/v1")
	protected := middleware.JWTAuth(cfg.JWTSecret)

	// Feed routes; callers identify themselves in the request body
	feedHandler := handlers.NewFeedHandler(feedService)
	feedHandler.RegisterFeedRoutes(api.Group("/feed"))

	// Account routes
	userHandler := handlers.NewUserHandler(userRepo, cfg.JWTSecret)
	userHandler.RegisterPublicRoutes(api.Group("/auth"))
	userHandler.RegisterProtectedRoutes(api.Group("/users", protected))

	// NGO profile routes; mutations require a token
	ngoHandler := handlers.NewNGOHandler(ngoRepo)
	ngoHandler.RegisterPublicRoutes(api.Group("/ngos"))
	ngoHandler.RegisterProtectedRoutes(api.Group("/ngos", protected))

	// Donation routes
	donationHandler := handlers.NewDonationHandler(donationRepo)
	donationHandler.RegisterDonationRoutes(api.Group("/donations", protected))

	logger.Info("routes configured")
	return nil
}
