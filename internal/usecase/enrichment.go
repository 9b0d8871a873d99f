package usecase

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/Ruthemir95/nutritrack-sub001/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// EnrichmentConfig holds configuration for the enrichment service.
type EnrichmentConfig struct {
	CacheTTL time.Duration
}

// EnrichmentService resolves food names to per-100g profiles, consulting the
// cache before the provider. Provider outages are reported to callers as
// ErrFoodNotFound: the import pipeline treats "provider down" and "no such
// food" identically, and nothing below this layer leaks past it. The
// underlying error is logged so operators can still tell the two apart.
type EnrichmentService struct {
	cache    domain.ProfileCache
	provider domain.NutritionGateway
	cacheTTL time.Duration
}

// NewEnrichmentService creates an enrichment service over the provider
// client and profile cache.
func NewEnrichmentService(cache domain.ProfileCache, provider domain.NutritionGateway, config EnrichmentConfig) *EnrichmentService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 720 * time.Hour // Default 30 days
	}

	return &EnrichmentService{
		cache:    cache,
		provider: provider,
		cacheTTL: cacheTTL,
	}
}

// Resolve looks up a food name. Flow: normalize -> check cache -> query
// provider -> cache -> return.
func (s *EnrichmentService) Resolve(ctx context.Context, foodName string) (*domain.FoodProfile, error) {
	foodName = strings.TrimSpace(foodName)
	if foodName == "" {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := "food:" + normalizeForCacheKey(foodName)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != nil {
		return cached, nil
	}

	profile, err := s.provider.Resolve(ctx, foodName)
	if err != nil {
		if !errors.Is(err, domain.ErrFoodNotFound) {
			log.Printf("[enrich] provider error for %q, treating as not found: %v", foodName, err)
		}
		return nil, domain.ErrFoodNotFound
	}

	if err := s.cache.Set(ctx, cacheKey, profile, s.cacheTTL); err != nil {
		log.Printf("[enrich] failed to cache profile for %q: %v", foodName, err)
	}

	return profile, nil
}

// normalizeForCacheKey lowercases, strips special characters and collapses
// whitespace so "Greek  Yogurt!" and "greek yogurt" share one cache entry.
func normalizeForCacheKey(s string) string {
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}
