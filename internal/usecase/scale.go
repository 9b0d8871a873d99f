package usecase

import (
	"math"

	"github.com/Ruthemir95/nutritrack-sub001/internal/domain"
)

// ScaleToQuantity converts a per-100g profile to the profile for a specific
// gram quantity. Rounding mirrors how the nutrition provider reports its own
// figures: whole units for kcal, sodium, potassium and calcium, one decimal
// place for everything else, so displayed values stay consistent between the
// lookup and the scaled result.
func ScaleToQuantity(p domain.Per100g, grams float64) domain.ForQuantity {
	factor := grams / 100.0

	return domain.ForQuantity{Nutrients: domain.Nutrients{
		Kcal:      round0(p.Kcal * factor),
		Protein:   round1(p.Protein * factor),
		Carbs:     round1(p.Carbs * factor),
		Fats:      round1(p.Fats * factor),
		Fiber:     round1(p.Fiber * factor),
		Sodium:    round0(p.Sodium * factor),
		Potassium: round0(p.Potassium * factor),
		Calcium:   round0(p.Calcium * factor),
		Iron:      round1(p.Iron * factor),
		VitaminC:  round1(p.VitaminC * factor),
		VitaminD:  round1(p.VitaminD * factor),
	}}
}

func round0(v float64) float64 {
	return math.Round(v)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
