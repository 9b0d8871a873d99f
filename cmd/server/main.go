package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Ruthemir95/nutritrack-sub001/config"
	httpDelivery "github.com/Ruthemir95/nutritrack-sub001/internal/delivery/http"
	"github.com/Ruthemir95/nutritrack-sub001/internal/infrastructure/cache"
	"github.com/Ruthemir95/nutritrack-sub001/internal/infrastructure/fooddb"
	"github.com/Ruthemir95/nutritrack-sub001/internal/infrastructure/store"
	"github.com/Ruthemir95/nutritrack-sub001/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting NutriTrack Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	mealStore, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		log.Fatalf("Failed to open meal store: %v", err)
	}
	defer mealStore.Close()
	log.Printf("Meal store: %s", cfg.Store.Path)

	profileCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	providerClient := fooddb.NewClient(cfg.FoodAPI.APIKey, cfg.FoodAPI.BaseURL)
	log.Printf("Food API configured: %s (key: %s...)", cfg.FoodAPI.BaseURL, cfg.FoodAPI.APIKey[:min(8, len(cfg.FoodAPI.APIKey))])

	enrichment := usecase.NewEnrichmentService(profileCache, providerClient, usecase.EnrichmentConfig{
		CacheTTL: cfg.Cache.TTL,
	})

	importService := usecase.NewImportService(mealStore, enrichment, usecase.ImportServiceConfig{
		EnrichConcurrency: cfg.Import.EnrichConcurrency,
	})
	log.Printf("Import: enrich_concurrency=%d max_file_size=%d", cfg.Import.EnrichConcurrency, cfg.Import.MaxFileSize)

	handler := httpDelivery.NewHandler(importService, mealStore, cfg.Import.MaxFileSize)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
