package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Ruthemir95/nutritrack-sub001/config"
	"github.com/Ruthemir95/nutritrack-sub001/internal/domain"
	"github.com/Ruthemir95/nutritrack-sub001/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubGateway resolves a fixed set of foods.
type stubGateway struct {
	known map[string]bool
}

func (g *stubGateway) Resolve(ctx context.Context, foodName string) (*domain.FoodProfile, error) {
	if !g.known[strings.ToLower(foodName)] {
		return nil, domain.ErrFoodNotFound
	}
	return &domain.FoodProfile{
		Name:      foodName,
		Nutrients: domain.Per100g{Nutrients: domain.Nutrients{Kcal: 100, Protein: 5}},
	}, nil
}

// stubStore collects created meals in memory.
type stubStore struct {
	meals []*domain.Meal
}

func (s *stubStore) CreateMeal(ctx context.Context, meal *domain.Meal) error {
	s.meals = append(s.meals, meal)
	return nil
}

func (s *stubStore) ListMeals(ctx context.Context, ownerID, startDate, endDate string) ([]*domain.Meal, error) {
	var out []*domain.Meal
	for _, meal := range s.meals {
		if meal.OwnerID == ownerID {
			out = append(out, meal)
		}
	}
	return out, nil
}

func setupTestRouter(store *stubStore) *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}

	gateway := &stubGateway{known: map[string]bool{"oats": true, "milk": true, "rice": true}}
	imports := usecase.NewImportService(store, gateway, usecase.ImportServiceConfig{EnrichConcurrency: 2})
	handler := NewHandler(imports, store, 1024*1024)
	return SetupRouter(cfg, handler)
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestHealthCheck(t *testing.T) {
	router := setupTestRouter(&stubStore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("status = %q, want healthy", resp["status"])
	}
}

func TestImportCSVEndpoint(t *testing.T) {
	t.Run("successful import returns summary", func(t *testing.T) {
		store := &stubStore{}
		router := setupTestRouter(store)

		csv := "date,mealType,foodName,grams,notes\n" +
			"2024-01-15,breakfast,Oats,80,\n" +
			"2024-01-15,breakfast,Milk,200,\n"
		body, contentType := multipartBody(t, "meals.csv", csv)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/import/csv", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("X-Owner-ID", "owner-1")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		var summary domain.ImportSummary
		if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if summary.Succeeded != 1 || summary.Attempted != 1 {
			t.Errorf("summary = %d/%d, want 1/1", summary.Succeeded, summary.Attempted)
		}
		if len(store.meals) != 1 || store.meals[0].OwnerID != "owner-1" {
			t.Errorf("persisted meals = %+v, want one for owner-1", store.meals)
		}
	})

	t.Run("wrong file type is 422", func(t *testing.T) {
		router := setupTestRouter(&stubStore{})

		body, contentType := multipartBody(t, "catalog.csv",
			"foodId,category,kcalPer100g,proteinPer100g\n1,dairy,60,3.3\n")

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/import/csv", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", w.Code)
		}
	})

	t.Run("missing file field is 400", func(t *testing.T) {
		router := setupTestRouter(&stubStore{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/import/csv", strings.NewReader("not multipart"))
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("partial failures still return 200 with issues", func(t *testing.T) {
		store := &stubStore{}
		router := setupTestRouter(store)

		csv := "date,mealType,foodName,grams,notes\n" +
			"2024-01-15,lunch,Rice,120,\n" +
			"2024-01-15,brunch,Eggs,100,\n"
		body, contentType := multipartBody(t, "meals.csv", csv)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/import/csv", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		var summary domain.ImportSummary
		if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if summary.Succeeded != 1 || len(summary.Issues) != 1 {
			t.Errorf("summary = %+v, want 1 success and 1 issue", summary)
		}
	})
}

func TestImportWeeklyEndpoint(t *testing.T) {
	store := &stubStore{}
	router := setupTestRouter(store)

	payload := `{"grid": {"monday": {"breakfast": ["Oats"]}, "tuesday": {"lunch": ["Rice", "Milk"]}}}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/import/weekly", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var summary domain.ImportSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if summary.Attempted != 2 || summary.Succeeded != 2 {
		t.Errorf("summary = %d/%d, want 2/2", summary.Succeeded, summary.Attempted)
	}

	t.Run("invalid grid is 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/import/weekly",
			strings.NewReader(`{"grid": {"funday": {"snack": ["Apple"]}}}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("multipart food list spreads over the week", func(t *testing.T) {
		store := &stubStore{}
		router := setupTestRouter(store)

		body, contentType := multipartBody(t, "foods.csv", "foodName\nOats\nRice\n")

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/import/weekly", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("X-Owner-ID", "owner-2")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		var summary domain.ImportSummary
		if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if summary.Attempted != 2 || summary.Succeeded != 2 {
			t.Errorf("summary = %d/%d, want 2/2", summary.Succeeded, summary.Attempted)
		}
		if len(store.meals) != 2 {
			t.Fatalf("persisted meals = %d, want 2", len(store.meals))
		}
		for _, meal := range store.meals {
			if meal.OwnerID != "owner-2" || meal.MealType != domain.MealBreakfast {
				t.Errorf("meal = %s/%s for %s, want breakfasts for owner-2", meal.Date, meal.MealType, meal.OwnerID)
			}
			if meal.Items[0].Grams != 150 {
				t.Errorf("grams = %v, want breakfast standard 150", meal.Items[0].Grams)
			}
		}
	})

	t.Run("multipart wrong form is 422", func(t *testing.T) {
		router := setupTestRouter(&stubStore{})

		body, contentType := multipartBody(t, "meals.csv",
			"date,mealType,foodName,grams\n2024-01-15,lunch,Rice,120\n")

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/import/weekly", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", w.Code)
		}
	})
}

func TestDownloadTemplateEndpoint(t *testing.T) {
	router := setupTestRouter(&stubStore{})

	t.Run("meal-plan template", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/import/template?form=meal-plan", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if !strings.HasPrefix(w.Body.String(), "date,mealType,foodName,grams,notes") {
			t.Errorf("body does not start with meal-plan header: %q", w.Body.String()[:50])
		}
		if !strings.Contains(w.Header().Get("Content-Disposition"), "meal-plan-template.csv") {
			t.Errorf("Content-Disposition = %q", w.Header().Get("Content-Disposition"))
		}
	})

	t.Run("food-list template", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/import/template?form=food-list", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if !strings.HasPrefix(w.Body.String(), "foodName") {
			t.Errorf("body does not start with food-list header")
		}
	})

	t.Run("unknown form is 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/import/template?form=xls", nil))

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestListMealsEndpoint(t *testing.T) {
	store := &stubStore{}
	store.meals = append(store.meals, &domain.Meal{ID: "meal-1", OwnerID: "owner-1", Date: "2024-01-15"})
	router := setupTestRouter(store)

	t.Run("returns caller's meals", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/meals", nil)
		req.Header.Set("X-Owner-ID", "owner-1")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		var resp struct {
			Meals []*domain.Meal `json:"meals"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(resp.Meals) != 1 || resp.Meals[0].ID != "meal-1" {
			t.Errorf("meals = %+v, want [meal-1]", resp.Meals)
		}
	})

	t.Run("defaults owner when header absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/meals", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"meals":[]`) {
			t.Errorf("body = %s, want empty meals list", w.Body.String())
		}
	})
}
