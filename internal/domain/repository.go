package domain

import (
	"context"
	"time"
)

// NutritionGateway resolves a free-text food name to a per-100g profile.
// Implementations return ErrFoodNotFound when no match exists and
// ErrProviderFailure when the lookup itself fails; callers that only care
// about "did I get a profile" may treat the two alike.
type NutritionGateway interface {
	Resolve(ctx context.Context, foodName string) (*FoodProfile, error)
}

// MealStore persists meal records created by the import pipeline.
type MealStore interface {
	CreateMeal(ctx context.Context, meal *Meal) error
	ListMeals(ctx context.Context, ownerID, startDate, endDate string) ([]*Meal, error)
}

// ProfileCache caches resolved food profiles between imports so repeated
// foods hit the provider once.
type ProfileCache interface {
	Get(ctx context.Context, key string) (*FoodProfile, error)
	Set(ctx context.Context, key string, profile *FoodProfile, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
