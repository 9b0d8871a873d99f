package domain

import (
	"strings"
	"time"
)

// MealType identifies which meal of the day a record belongs to.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealTypes lists the accepted meal types in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// ParseMealType normalizes a free-text meal type case-insensitively.
// ok is false when the value is not one of the accepted types.
func ParseMealType(s string) (MealType, bool) {
	switch MealType(strings.ToLower(strings.TrimSpace(s))) {
	case MealBreakfast:
		return MealBreakfast, true
	case MealLunch:
		return MealLunch, true
	case MealDinner:
		return MealDinner, true
	case MealSnack:
		return MealSnack, true
	}
	return "", false
}

// MealItem is a single food entry inside a meal.
type MealItem struct {
	FoodName  string       `json:"foodName"`
	Grams     float64      `json:"grams"`
	Notes     string       `json:"notes,omitempty"`
	Nutrition *ForQuantity `json:"nutrition,omitempty"`
}

// MealDraft is an in-memory, not-yet-persisted meal produced by aggregation.
// Exactly one draft exists per (Date, MealType) key within an import run, and
// its Items are never empty.
type MealDraft struct {
	Date     string     `json:"date"` // YYYY-MM-DD
	MealType MealType   `json:"mealType"`
	Items    []MealItem `json:"items"`
	Notes    string     `json:"notes,omitempty"`
}

// GroupKey returns the (date, mealType) key identifying this draft.
func (d *MealDraft) GroupKey() string {
	return d.Date + "/" + string(d.MealType)
}

// Meal is a persisted meal record. The import pipeline always creates meals
// with Completed=false and current-time timestamps.
type Meal struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"ownerId"`
	Date      string     `json:"date"`
	MealType  MealType   `json:"mealType"`
	Items     []MealItem `json:"items"`
	Completed bool       `json:"completed"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
