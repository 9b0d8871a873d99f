package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Ruthemir95/nutritrack-sub001/internal/domain"
)

// standardQuantities are the fixed gram defaults applied to weekly-grid
// assignments, which carry no per-food quantity of their own.
var standardQuantities = map[domain.MealType]float64{
	domain.MealBreakfast: 150,
	domain.MealLunch:     200,
	domain.MealDinner:    180,
	domain.MealSnack:     100,
}

// SynthesizeGridRows converts a weekly assignment grid into the raw rows the
// regular meal-plan pipeline consumes. Each assigned food in an occupied
// cell becomes one row with the standard quantity for its meal type; the
// cell's date is today plus the day's ordinal position in the week, Monday
// first. Rows come out in day order, then meal-type order, then assignment
// order, so a run over the same grid is reproducible.
func SynthesizeGridRows(grid domain.WeeklyGrid, today time.Time) ([]domain.RawRow, error) {
	normalized := make(domain.WeeklyGrid, len(grid))
	for day, cells := range grid {
		key := strings.ToLower(strings.TrimSpace(day))
		if !knownWeekday(key) {
			return nil, fmt.Errorf("%w: unknown weekday %q", domain.ErrInvalidRequest, day)
		}
		for mealType := range cells {
			if _, ok := domain.ParseMealType(mealType); !ok {
				return nil, fmt.Errorf("%w: unknown meal type %q", domain.ErrInvalidRequest, mealType)
			}
		}
		normalized[key] = cells
	}

	var rows []domain.RawRow
	for ordinal, day := range domain.Weekdays {
		cells, ok := normalized[day]
		if !ok {
			continue
		}
		date := today.AddDate(0, 0, ordinal).Format(dateLayout)

		for _, mealType := range domain.MealTypes {
			foods := cellFoods(cells, mealType)
			grams := strconv.FormatFloat(standardQuantities[mealType], 'f', -1, 64)

			for _, food := range foods {
				food = strings.TrimSpace(food)
				if food == "" {
					continue
				}
				rows = append(rows, domain.RawRow{
					ColumnDate:     date,
					ColumnMealType: string(mealType),
					ColumnFoodName: food,
					ColumnGrams:    grams,
				})
			}
		}
	}

	return rows, nil
}

// SpreadFoodsOverWeek turns a flat food list into a starter week grid. Foods
// fill one meal type across all seven days before moving to the next, so a
// short list yields a breakfast for each day rather than one overloaded
// Monday. Lists longer than the 28 cells wrap around.
func SpreadFoodsOverWeek(foods []string) domain.WeeklyGrid {
	grid := make(domain.WeeklyGrid)

	cell := 0
	for _, food := range foods {
		food = strings.TrimSpace(food)
		if food == "" {
			continue
		}

		day := domain.Weekdays[cell%len(domain.Weekdays)]
		mealType := domain.MealTypes[(cell/len(domain.Weekdays))%len(domain.MealTypes)]
		if grid[day] == nil {
			grid[day] = make(map[string][]string)
		}
		grid[day][string(mealType)] = append(grid[day][string(mealType)], food)
		cell++
	}

	return grid
}

// cellFoods reads a grid cell tolerating any casing of the meal-type key.
func cellFoods(cells map[string][]string, mealType domain.MealType) []string {
	if foods, ok := cells[string(mealType)]; ok {
		return foods
	}
	for key, foods := range cells {
		if parsed, ok := domain.ParseMealType(key); ok && parsed == mealType {
			return foods
		}
	}
	return nil
}

func knownWeekday(day string) bool {
	for _, name := range domain.Weekdays {
		if name == day {
			return true
		}
	}
	return false
}
