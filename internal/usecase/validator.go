package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Ruthemir95/nutritrack-sub001/internal/domain"
)

// dateLayout is the calendar date format accepted in the date column.
const dateLayout = "2006-01-02"

// headerOffset converts a 0-based data row index into the 1-based file row
// shown to users: +1 for the header line, +1 for 1-based counting.
const headerOffset = 2

// RowRejection means a raw row never became a ValidatedRow. Messages lists
// every failed rule for the row, not just the first.
type RowRejection struct {
	Row      int // 1-based file row, header included
	Messages []string
}

// RowValidator checks raw rows against the structural and domain rules and
// enriches the survivors through the nutrition gateway.
type RowValidator struct {
	gateway domain.NutritionGateway
}

func NewRowValidator(gateway domain.NutritionGateway) *RowValidator {
	return &RowValidator{gateway: gateway}
}

// Validate checks one raw row. index is the 0-based data row index. Exactly
// one of the results is non-nil. Validation is exhaustive per row: every
// rule is checked even after an earlier one failed, so the rejection message
// is complete. A food name the gateway cannot match is not a rejection; the
// row comes back with Resolved=false and no nutrition.
func (v *RowValidator) Validate(ctx context.Context, row domain.RawRow, index int) (*domain.ValidatedRow, *RowRejection) {
	var messages []string

	var missing []string
	for _, col := range mealPlanColumns {
		if strings.TrimSpace(row[col]) == "" {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		messages = append(messages, fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
	}

	var date string
	if raw := strings.TrimSpace(row[ColumnDate]); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			messages = append(messages, fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", raw))
		} else {
			date = parsed.Format(dateLayout)
		}
	}

	var mealType domain.MealType
	if raw := strings.TrimSpace(row[ColumnMealType]); raw != "" {
		parsed, ok := domain.ParseMealType(raw)
		if !ok {
			messages = append(messages, fmt.Sprintf("invalid mealType %q: must be one of breakfast, lunch, dinner, snack", raw))
		} else {
			mealType = parsed
		}
	}

	var grams float64
	if raw := strings.TrimSpace(row[ColumnGrams]); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			messages = append(messages, fmt.Sprintf("invalid grams %q: must be a number greater than 0", raw))
		} else {
			grams = parsed
		}
	}

	if len(messages) > 0 {
		return nil, &RowRejection{Row: index + headerOffset, Messages: messages}
	}

	validated := &domain.ValidatedRow{
		Date:     date,
		MealType: mealType,
		FoodName: strings.TrimSpace(row[ColumnFoodName]),
		Grams:    grams,
		Notes:    strings.TrimSpace(row[ColumnNotes]),
	}

	profile, err := v.gateway.Resolve(ctx, validated.FoodName)
	if err == nil && profile != nil {
		scaled := ScaleToQuantity(profile.Nutrients, validated.Grams)
		validated.Nutrition = &scaled
		validated.Resolved = true
	}

	return validated, nil
}
