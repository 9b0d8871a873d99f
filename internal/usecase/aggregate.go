package usecase

import (
	"github.com/Ruthemir95/nutritrack-sub001/internal/domain"
)

// AggregateRows groups validated rows into meal drafts by (date, mealType).
// Drafts appear in the order their key is first seen; items within a draft
// keep the original row order. A draft's notes take the first non-empty
// notes among its rows, since only one slot exists at the draft level.
func AggregateRows(rows []*domain.ValidatedRow) []*domain.MealDraft {
	drafts := make([]*domain.MealDraft, 0)
	byKey := make(map[string]*domain.MealDraft)

	for _, row := range rows {
		key := row.Date + "/" + string(row.MealType)

		draft, ok := byKey[key]
		if !ok {
			draft = &domain.MealDraft{
				Date:     row.Date,
				MealType: row.MealType,
			}
			byKey[key] = draft
			drafts = append(drafts, draft)
		}

		draft.Items = append(draft.Items, domain.MealItem{
			FoodName:  row.FoodName,
			Grams:     row.Grams,
			Notes:     row.Notes,
			Nutrition: row.Nutrition,
		})
		if draft.Notes == "" && row.Notes != "" {
			draft.Notes = row.Notes
		}
	}

	return drafts
}
