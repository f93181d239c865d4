package http

import (
	"github.com/gin-gonic/gin"
	"github.com/macrolens/bakecalc/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit))
	{
		v1.GET("/nutrients", handler.ListNutrients)

		ingredients := v1.Group("/ingredients")
		{
			ingredients.GET("", handler.ListIngredients)
			ingredients.GET("/:name", handler.GetIngredient)
			ingredients.PUT("/:name", handler.PutIngredient)
			ingredients.DELETE("/:name", handler.DeleteIngredient)
		}

		recipe := v1.Group("/recipe")
		{
			recipe.GET("", handler.GetRecipe)
			recipe.PUT("/name", handler.RenameRecipe)
			recipe.PUT("/ingredients/:name", handler.PutRecipeIngredient)
			recipe.DELETE("/ingredients/:name", handler.DeleteRecipeIngredient)
			recipe.DELETE("/ingredients", handler.ClearRecipe)
			recipe.POST("/calculate", handler.CalculateRecipe)
			recipe.GET("/export", handler.ExportRecipe)
			recipe.POST("/import", handler.ImportRecipe)
		}

		products := v1.Group("/products")
		{
			products.POST("/search", handler.SearchProducts)
			products.POST("/import", handler.ImportProduct)
		}
	}

	return router
}
