package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/Ruthemir95/nutritrack-sub001/internal/domain"
)

// SQLiteStore persists meal records in a sqlite database. It implements
// domain.MealStore. Use ":memory:" as the path for an ephemeral store.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS meals (
        id TEXT PRIMARY KEY,
        owner_id TEXT NOT NULL,
        date TEXT NOT NULL,
        meal_type TEXT NOT NULL,
        completed INTEGER NOT NULL DEFAULT 0,
        notes TEXT NOT NULL DEFAULT '',
        created_at DATETIME NOT NULL,
        updated_at DATETIME NOT NULL
    );

    CREATE TABLE IF NOT EXISTS meal_items (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        meal_id TEXT NOT NULL,
        position INTEGER NOT NULL,
        food_name TEXT NOT NULL,
        grams REAL NOT NULL,
        notes TEXT NOT NULL DEFAULT '',
        nutrition TEXT,
        FOREIGN KEY (meal_id) REFERENCES meals(id) ON DELETE CASCADE
    );

    CREATE INDEX IF NOT EXISTS idx_meals_owner_date ON meals(owner_id, date);
    CREATE INDEX IF NOT EXISTS idx_meal_items_meal_id ON meal_items(meal_id);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// CreateMeal inserts a meal and its items in one transaction.
func (s *SQLiteStore) CreateMeal(ctx context.Context, meal *domain.Meal) error {
	if meal == nil || len(meal.Items) == 0 {
		return domain.ErrInvalidRequest
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	mealQuery := `
        INSERT INTO meals (id, owner_id, date, meal_type, completed, notes, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err = tx.ExecContext(ctx, mealQuery,
		meal.ID, meal.OwnerID, meal.Date, string(meal.MealType),
		meal.Completed, meal.Notes, meal.CreatedAt, meal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert meal: %w", err)
	}

	itemQuery := `
        INSERT INTO meal_items (meal_id, position, food_name, grams, notes, nutrition)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	for i, item := range meal.Items {
		nutrition, err := marshalNutrition(item.Nutrition)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, itemQuery,
			meal.ID, i, item.FoodName, item.Grams, item.Notes, nutrition)
		if err != nil {
			return fmt.Errorf("failed to insert meal item: %w", err)
		}
	}

	return tx.Commit()
}

// ListMeals returns an owner's meals, optionally bounded by date (inclusive,
// YYYY-MM-DD). Meals come back ordered by date then meal id; items keep
// their stored position order.
func (s *SQLiteStore) ListMeals(ctx context.Context, ownerID, startDate, endDate string) ([]*domain.Meal, error) {
	query := `
        SELECT id, owner_id, date, meal_type, completed, notes, created_at, updated_at
        FROM meals
        WHERE owner_id = ?
    `
	args := []interface{}{ownerID}

	if startDate != "" {
		query += " AND date >= ?"
		args = append(args, startDate)
	}
	if endDate != "" {
		query += " AND date <= ?"
		args = append(args, endDate)
	}
	query += " ORDER BY date, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query meals: %w", err)
	}
	defer rows.Close()

	var meals []*domain.Meal
	for rows.Next() {
		meal := &domain.Meal{}
		var mealType string
		if err := rows.Scan(&meal.ID, &meal.OwnerID, &meal.Date, &mealType,
			&meal.Completed, &meal.Notes, &meal.CreatedAt, &meal.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meal.MealType = domain.MealType(mealType)
		meals = append(meals, meal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meals: %w", err)
	}

	for _, meal := range meals {
		items, err := s.listItems(ctx, meal.ID)
		if err != nil {
			return nil, err
		}
		meal.Items = items
	}

	return meals, nil
}

func (s *SQLiteStore) listItems(ctx context.Context, mealID string) ([]domain.MealItem, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT food_name, grams, notes, nutrition
        FROM meal_items
        WHERE meal_id = ?
        ORDER BY position
    `, mealID)
	if err != nil {
		return nil, fmt.Errorf("failed to query meal items: %w", err)
	}
	defer rows.Close()

	var items []domain.MealItem
	for rows.Next() {
		var item domain.MealItem
		var nutrition sql.NullString
		if err := rows.Scan(&item.FoodName, &item.Grams, &item.Notes, &nutrition); err != nil {
			return nil, fmt.Errorf("failed to scan meal item: %w", err)
		}
		if nutrition.Valid {
			var scaled domain.ForQuantity
			if err := json.Unmarshal([]byte(nutrition.String), &scaled); err != nil {
				return nil, fmt.Errorf("failed to decode nutrition: %w", err)
			}
			item.Nutrition = &scaled
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// marshalNutrition encodes an item's optional scaled profile as JSON TEXT,
// NULL when the row imported unresolved.
func marshalNutrition(n *domain.ForQuantity) (interface{}, error) {
	if n == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("failed to encode nutrition: %w", err)
	}
	return string(encoded), nil
}
