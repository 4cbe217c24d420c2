package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/grupi2/calorie-tracker/backend/config"
	"github.com/grupi2/calorie-tracker/backend/internal/middleware"
	"github.com/grupi2/calorie-tracker/backend/internal/service"
)

// SetupAPI wires services and handlers onto the router. redisClient may be
// nil, in which case rate limiting is skipped.
func SetupAPI(router *gin.Engine, db *gorm.DB, cfg *config.Config, redisClient *redis.Client) {
	v1 := router.Group("/api/v1")

	// Initialize services
	authService := service.NewAuthService(db, cfg.JWTSecret)
	emailService := service.NewEmailService(cfg)
	entryService := service.NewFoodEntryService(db)
	adminService := service.NewAdminService(db, entryService, cfg.BudgetLimit)

	// Initialize handlers
	authHandler := NewAuthHandler(authService, emailService)
	entryHandler := NewFoodEntryHandler(entryService, cfg.CalorieAlertThreshold)
	adminHandler := NewAdminHandler(adminService)

	// Public routes
	authHandler.RegisterRoutes(v1)

	// Authenticated routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))

	var createMiddleware []gin.HandlerFunc
	if redisClient != nil {
		limiter := middleware.NewEntryCreationRateLimiter(redisClient)
		createMiddleware = append(createMiddleware, limiter.RateLimitMiddleware())
	}
	entryHandler.RegisterRoutes(protected, createMiddleware...)

	// Admin routes
	admin := protected.Group("")
	admin.Use(middleware.RequireAdmin())
	adminHandler.RegisterRoutes(admin)
}
