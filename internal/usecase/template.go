package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/Ruthemir95/nutritrack-sub001/internal/domain"
)

// TemplateForm selects which CSV shape to generate.
type TemplateForm string

const (
	TemplateMealPlan TemplateForm = "meal-plan"
	TemplateFoodList TemplateForm = "food-list"
)

// sampleFood is one row of the reference food list used to pre-fill
// templates.
type sampleFood struct {
	name     string
	grams    float64
	mealType domain.MealType
	notes    string
}

var sampleFoods = []sampleFood{
	{"Oats", 80, domain.MealBreakfast, "with cinnamon"},
	{"Milk", 200, domain.MealBreakfast, ""},
	{"Greek Yogurt", 150, domain.MealBreakfast, ""},
	{"Chicken Breast", 180, domain.MealLunch, "grilled"},
	{"Rice", 120, domain.MealLunch, ""},
	{"Broccoli", 100, domain.MealLunch, ""},
	{"Salmon", 160, domain.MealDinner, ""},
	{"Potatoes", 200, domain.MealDinner, "boiled"},
	{"Apple", 130, domain.MealSnack, ""},
	{"Almonds", 30, domain.MealSnack, ""},
}

// GenerateTemplate serializes a pre-filled CSV of the requested form for the
// user to edit and re-import. The meal-plan form spreads the reference foods
// over today and tomorrow; the food-list form is one food name per row.
// Returns the file bytes and a suggested filename.
func GenerateTemplate(form TemplateForm, today time.Time) ([]byte, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	switch form {
	case TemplateMealPlan:
		if err := w.Write([]string{ColumnDate, ColumnMealType, ColumnFoodName, ColumnGrams, ColumnNotes}); err != nil {
			return nil, "", err
		}
		for i, food := range sampleFoods {
			date := today.AddDate(0, 0, i%2).Format(dateLayout)
			record := []string{
				date,
				string(food.mealType),
				food.name,
				strconv.FormatFloat(food.grams, 'f', -1, 64),
				food.notes,
			}
			if err := w.Write(record); err != nil {
				return nil, "", err
			}
		}
		w.Flush()
		return buf.Bytes(), "meal-plan-template.csv", w.Error()

	case TemplateFoodList:
		if err := w.Write([]string{ColumnFoodName}); err != nil {
			return nil, "", err
		}
		for _, food := range sampleFoods {
			if err := w.Write([]string{food.name}); err != nil {
				return nil, "", err
			}
		}
		w.Flush()
		return buf.Bytes(), "food-list-template.csv", w.Error()
	}

	return nil, "", fmt.Errorf("%w: unknown template form %q", domain.ErrInvalidRequest, form)
}
