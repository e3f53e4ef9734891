package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/catifypro/matcher/config"
	httpDelivery "github.com/catifypro/matcher/internal/delivery/http"
	"github.com/catifypro/matcher/internal/infrastructure/cache"
	"github.com/catifypro/matcher/internal/infrastructure/catalog"
	"github.com/catifypro/matcher/internal/matcher"
	"github.com/catifypro/matcher/internal/usecase"
)

func main() {
	// Load .env if present; real deployments use environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, relying on environment")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting CatifyPro Matcher v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	catalogClient := catalog.NewClient(cfg.Catalog.APIKey, cfg.Catalog.BaseURL)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		catalogClient.SetDebug(true)
		log.Printf("Catalog client debug mode enabled")
	}

	log.Printf("Catalog API configured: %s (key: %s...)", cfg.Catalog.BaseURL, cfg.Catalog.APIKey[:min(8, len(cfg.Catalog.APIKey))])

	// Matching thresholds come from config, the rest of the
	// scoring weights stay at their calibrated defaults.
	matcherCfg := matcher.DefaultConfig()
	matcherCfg.MinScore = cfg.Matching.MinScore
	matcherCfg.HighConfidence = cfg.Matching.HighConfidence
	matcherCfg.MediumConfidence = cfg.Matching.MediumConfidence

	// Initialize usecase layer
	reconcileService := usecase.NewReconcileService(
		memoryCache,
		catalogClient,
		matcherCfg,
		usecase.ReconcileConfig{
			CacheTTL:           cfg.Cache.TTL,
			MaxBatchSize:       cfg.Matching.MaxBatchSize,
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		},
	)

	log.Printf("Matching: min=%.2f, high=%.2f, medium=%.2f, batch=%d, debug=%v",
		cfg.Matching.MinScore,
		cfg.Matching.HighConfidence,
		cfg.Matching.MediumConfidence,
		cfg.Matching.MaxBatchSize,
		cfg.Matching.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(reconcileService)

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
