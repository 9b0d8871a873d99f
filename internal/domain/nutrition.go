package domain

// Nutrients is the 11-field nutrient breakdown used throughout the import
// pipeline. Values are non-negative; units are kcal for Kcal, milligrams for
// Sodium/Potassium/Calcium, grams for Protein/Carbs/Fats/Fiber, and
// milligrams/micrograms for Iron/VitaminC/VitaminD as reported by the
// provider.
type Nutrients struct {
	Kcal      float64 `json:"kcal"`
	Protein   float64 `json:"protein"`
	Carbs     float64 `json:"carbs"`
	Fats      float64 `json:"fats"`
	Fiber     float64 `json:"fiber"`
	Sodium    float64 `json:"sodium"`
	Potassium float64 `json:"potassium"`
	Calcium   float64 `json:"calcium"`
	Iron      float64 `json:"iron"`
	VitaminC  float64 `json:"vitaminC"`
	VitaminD  float64 `json:"vitaminD"`
}

// Per100g is a nutrient profile normalized to 100 grams of the food, as the
// nutrition provider reports it.
//
// Per100g and ForQuantity share the same shape but different denominators.
// Keeping them as distinct types stops a per-100g profile from ending up on
// a row that expects an already-scaled one.
type Per100g struct {
	Nutrients
}

// ForQuantity is a nutrient profile scaled to a specific gram quantity.
type ForQuantity struct {
	Nutrients
}

// FoodProfile is the result of resolving a free-text food name against the
// nutrition provider: the matched name, a category label, descriptive tags,
// and the per-100g profile.
type FoodProfile struct {
	Name      string   `json:"name"`
	Category  string   `json:"category,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Nutrients Per100g  `json:"nutrients"`
}
