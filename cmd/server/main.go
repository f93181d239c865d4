package main

import (
	"fmt"
	"log"
	"os"

	"github.com/macrolens/bakecalc/config"
	httpDelivery "github.com/macrolens/bakecalc/internal/delivery/http"
	"github.com/macrolens/bakecalc/internal/infrastructure/cache"
	"github.com/macrolens/bakecalc/internal/infrastructure/catalog"
	"github.com/macrolens/bakecalc/internal/infrastructure/openfoodfacts"
	"github.com/macrolens/bakecalc/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting BakeCalc v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	// Ingredient database lives for the whole process
	db := catalog.NewDefault()
	log.Printf("[CATALOG] Loaded %d built-in ingredients", db.Size())

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	defer memoryCache.Close()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	offClient := openfoodfacts.NewClient(openfoodfacts.ClientConfig{
		BaseURL:           cfg.OpenFoodFacts.BaseURL,
		PageSize:          cfg.OpenFoodFacts.PageSize,
		Timeout:           cfg.OpenFoodFacts.Timeout,
		UserAgent:         cfg.OpenFoodFacts.UserAgent,
		RequestsPerMinute: cfg.OpenFoodFacts.RequestsPerMinute,
		MaxRetries:        cfg.OpenFoodFacts.MaxRetries,
	})

	// Enable debug mode in development environment
	if cfg.IsDevelopment() {
		offClient.SetDebug(true)
		log.Printf("Open Food Facts client debug mode enabled")
	}
	log.Printf("Open Food Facts API: %s (%d req/min, page size %d)",
		cfg.OpenFoodFacts.BaseURL,
		cfg.OpenFoodFacts.RequestsPerMinute,
		cfg.OpenFoodFacts.PageSize)

	// Initialize usecase layer
	recipeService := usecase.NewRecipeService(db, usecase.RecipeServiceConfig{
		InitialName:        cfg.Recipe.DefaultName,
		EnableDebugLogging: cfg.IsDevelopment(),
	})

	productService := usecase.NewProductSearchService(
		memoryCache,
		offClient,
		usecase.ProductSearchConfig{
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: cfg.IsDevelopment(),
		},
	)

	if cfg.RateLimit.PerIP > 0 {
		log.Printf("Rate limit: %d req/s per client (burst %d)", cfg.RateLimit.PerIP, cfg.RateLimit.Burst)
	} else {
		log.Printf("Rate limit: disabled")
	}

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(recipeService, db, productService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
