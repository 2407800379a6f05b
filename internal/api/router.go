package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"housewolf/portal/internal/api/handlers"
	"housewolf/portal/internal/api/middleware"
	"housewolf/portal/internal/config"
	"housewolf/portal/internal/rules"
	"housewolf/portal/internal/services"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(cfg *config.Config, db *mongo.Database, listingRules *rules.Rules) *gin.Engine {
	// Initialize services needed by API handlers
	categoryService := services.NewCategoryService(db)
	fleetService := services.NewFleetService(db)
	listingService := services.NewListingService(db, listingRules, categoryService)

	r := gin.Default()

	// Initialize Middleware
	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)

	// Apply global middleware first (order matters)
	r.Use(middleware.CORSMiddleware())
	r.Use(rateLimiter.Limit())

	// Initialize handlers
	restCategoryHandler := handlers.NewRestCategoryHandler(categoryService)
	restFleetHandler := handlers.NewRestFleetHandler(fleetService)
	restListingHandler := handlers.NewRestListingHandler(listingService)
	redirectHandler := handlers.NewRedirectHandler(cfg.RedirectFallbackURL)

	v1 := r.Group("/v1")
	{
		// Public Routes (rate limiting already applied globally)
		v1.GET("/categories", restCategoryHandler.GetCategories)
		v1.GET("/fleet", restFleetHandler.GetFleet)
		v1.GET("/go", redirectHandler.Go)
		v1.GET("/listing/:id", restListingHandler.GetListingByID)

		v1.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		// Authenticated Routes
		authRequired := v1.Group("/")
		authRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret))
		{
			authRequired.POST("/listing", restListingHandler.CreateListing)
			authRequired.PATCH("/listing/:id", restListingHandler.UpdateListing)
			authRequired.POST("/listing/:id/status", restListingHandler.ChangeStatus)
		}
	}

	return r
}
