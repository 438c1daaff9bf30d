package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ovenbird/cookbook-backend/internal/api"
	"github.com/ovenbird/cookbook-backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	cuisineHandler api.RouteRegistrar,
	allergenHandler api.RouteRegistrar,
	ingredientHandler api.RouteRegistrar,
	recipeHandler *api.RecipeHandler,
	videoHandler *api.VideoHandler,
	mediaDir string,
) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// uploaded images and rendered videos
	router.Static("/static/uploads", mediaDir)

	// API v1 routes
	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1)
	cuisineHandler.RegisterRoutes(v1)
	allergenHandler.RegisterRoutes(v1)
	ingredientHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1)
	videoHandler.RegisterRoutes(v1)

	return router
}
