package fooddb

import (
	"strings"

	"github.com/Ruthemir95/nutritrack-sub001/internal/domain"
)

// FoodData Central nutrient IDs for the fields the pipeline tracks.
// Search results report these per 100 grams.
const (
	nutrientIDEnergy    = 1008 // kcal
	nutrientIDProtein   = 1003 // g
	nutrientIDFat       = 1004 // g
	nutrientIDCarbs     = 1005 // g
	nutrientIDFiber     = 1079 // g
	nutrientIDCalcium   = 1087 // mg
	nutrientIDIron      = 1089 // mg
	nutrientIDPotassium = 1092 // mg
	nutrientIDSodium    = 1093 // mg
	nutrientIDVitaminD  = 1114 // µg (D2 + D3)
	nutrientIDVitaminC  = 1162 // mg
)

// mapToProfile converts a provider food to the domain profile. Provider
// descriptions read like "Milk, whole, 3.25% milkfat": the first segment is
// the display name, the rest become descriptive tags.
func mapToProfile(food *providerFood) *domain.FoodProfile {
	name, tags := splitDescription(food.Description)

	category := food.FoodCategory
	if category == "" {
		category = food.DataType
	}

	return &domain.FoodProfile{
		Name:      name,
		Category:  category,
		Tags:      tags,
		Nutrients: domain.Per100g{Nutrients: extractNutrients(food.Nutrients)},
	}
}

func extractNutrients(provided []providerNutrient) domain.Nutrients {
	var n domain.Nutrients

	for _, nutrient := range provided {
		switch nutrient.NutrientID {
		case nutrientIDEnergy:
			n.Kcal = nutrient.Value
		case nutrientIDProtein:
			n.Protein = nutrient.Value
		case nutrientIDCarbs:
			n.Carbs = nutrient.Value
		case nutrientIDFat:
			n.Fats = nutrient.Value
		case nutrientIDFiber:
			n.Fiber = nutrient.Value
		case nutrientIDSodium:
			n.Sodium = nutrient.Value
		case nutrientIDPotassium:
			n.Potassium = nutrient.Value
		case nutrientIDCalcium:
			n.Calcium = nutrient.Value
		case nutrientIDIron:
			n.Iron = nutrient.Value
		case nutrientIDVitaminC:
			n.VitaminC = nutrient.Value
		case nutrientIDVitaminD:
			n.VitaminD = nutrient.Value
		}
	}

	return n
}

func splitDescription(description string) (name string, tags []string) {
	parts := strings.Split(description, ",")
	name = strings.TrimSpace(parts[0])
	for _, part := range parts[1:] {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return name, tags
}
