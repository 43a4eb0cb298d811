package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"meal-planner/internal/core/shopping"
)

func seeded() *Store {
	s := New()
	s.PutPlan(shopping.MealPlan{ID: "plan-1", UserID: "user-1", Name: "Неделя 1"})
	s.PutPlan(shopping.MealPlan{ID: "plan-2", UserID: "user-1", Name: "Неделя 2"})
	s.PutPlan(shopping.MealPlan{ID: "plan-3", UserID: "user-2", Name: "Чужой"})
	s.SetAllergens("user-1", "peanuts", "milk")
	size := 1000.0
	s.PutProductMeta("flour", shopping.ProductMeta{PackageSize: &size})
	return s
}

func TestGetPlansForUserFiltersOwnership(t *testing.T) {
	s := seeded()

	plans, err := s.GetPlansForUser(context.Background(), "user-1", []string{"plan-2", "plan-3", "missing", "plan-1", "plan-2"})
	if err != nil {
		t.Fatal(err)
	}
	if len(plans) != 2 || plans[0].ID != "plan-2" || plans[1].ID != "plan-1" {
		t.Fatalf("plans = %+v", plans)
	}
}

func TestGetUserAllergensReturnsCopy(t *testing.T) {
	s := seeded()

	tags, err := s.GetUserAllergens(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	tags[0] = "changed"

	again, _ := s.GetUserAllergens(context.Background(), "user-1")
	if again[0] != "peanuts" {
		t.Errorf("stored allergens were mutated: %v", again)
	}

	none, _ := s.GetUserAllergens(context.Background(), "nobody")
	if len(none) != 0 {
		t.Errorf("unknown user allergens = %v", none)
	}
}

func TestGetProductMeta(t *testing.T) {
	s := seeded()

	meta, err := s.GetProductMeta(context.Background(), []string{"flour", "salt"})
	if err != nil {
		t.Fatal(err)
	}
	if len(meta) != 1 || *meta["flour"].PackageSize != 1000 {
		t.Errorf("meta = %+v", meta)
	}
}

func TestCanceledContext(t *testing.T) {
	s := seeded()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.GetPlansForUser(ctx, "user-1", []string{"plan-1"}); !errors.Is(err, context.Canceled) {
		t.Errorf("GetPlansForUser: %v", err)
	}
	if err := s.Ping(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Ping: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	seed := `{
  "plans": [{
    "id": "plan-1", "userId": "user-1", "name": "Неделя",
    "startDate": "2024-03-04T00:00:00Z", "endDate": "2024-03-10T00:00:00Z",
    "assignments": [{
      "date": "2024-03-05T00:00:00Z", "mealType": "dinner", "servings": 4,
      "recipe": {"id": "r1", "name": "Блины", "servings": 2, "ingredients": [
        {"productId": "milk", "amount": 500, "unit": "ml", "amountInGrams": 500,
         "product": {"id": "milk", "name": "Молоко", "category": "dairy", "defaultUnit": "ml", "allergens": ["milk"]}}
      ]}
    }]
  }],
  "allergens": {"user-1": ["peanuts"]},
  "productMeta": {"milk": {"packageSize": 900, "isAlwaysOwned": false}}
}`
	if err := os.WriteFile(path, []byte(seed), 0o600); err != nil {
		t.Fatal(err)
	}

	s := New()
	if err := s.LoadFile(path); err != nil {
		t.Fatal(err)
	}

	plans, _ := s.GetPlansForUser(context.Background(), "user-1", []string{"plan-1"})
	if len(plans) != 1 || plans[0].Assignments[0].Recipe.Ingredients[0].Product.Name != "Молоко" {
		t.Fatalf("plans = %+v", plans)
	}
	meta, _ := s.GetProductMeta(context.Background(), []string{"milk"})
	if meta["milk"].PackageSize == nil || *meta["milk"].PackageSize != 900 {
		t.Errorf("meta = %+v", meta)
	}

	if err := s.LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing seed file")
	}
}

func TestLoadFileRejectsUnknownFields(t *testing.T) {
	tests := []struct {
		name string
		seed string
	}{
		{"misspelled top-level key", `{"plan": []}`},
		{"misspelled recipe field", `{"plans": [{"id": "p", "userId": "u", "assignments": [{"servings": 1, "recipe": {"id": "r", "serving": 2}}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seed.json")
			if err := os.WriteFile(path, []byte(tt.seed), 0o600); err != nil {
				t.Fatal(err)
			}

			s := New()
			if err := s.LoadFile(path); err == nil {
				t.Fatal("expected error for unknown field")
			}
			if plans, _ := s.GetPlansForUser(context.Background(), "u", []string{"p"}); len(plans) != 0 {
				t.Errorf("rejected seed was partially loaded: %+v", plans)
			}
		})
	}
}
