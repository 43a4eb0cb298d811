package shopping

import (
	"testing"
	"time"
)

func ptr(v float64) *float64 { return &v }

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func product(id, name, category string, allergens ...string) Product {
	return Product{
		ID:          id,
		Name:        name,
		Category:    category,
		DefaultUnit: UnitGram,
		Allergens:   allergens,
	}
}

func ingredient(p Product, grams float64) RecipeIngredient {
	return RecipeIngredient{
		ProductID:     p.ID,
		Product:       p,
		Amount:        grams,
		Unit:          UnitGram,
		AmountInGrams: grams,
	}
}

func recipe(id string, servings int, ings ...RecipeIngredient) Recipe {
	return Recipe{ID: id, Name: "recipe " + id, Servings: servings, Ingredients: ings}
}

func assign(servings int, r Recipe) Assignment {
	return Assignment{MealType: MealDinner, Servings: servings, Recipe: r}
}

func plan(id string, assignments ...Assignment) MealPlan {
	return MealPlan{ID: id, UserID: "user-1", Name: "plan " + id, Assignments: assignments}
}

func findItem(t *testing.T, items []Item, productID string) Item {
	t.Helper()
	for _, item := range items {
		if item.ProductID == productID {
			return item
		}
	}
	t.Fatalf("item %s not found", productID)
	return Item{}
}

var (
	milk   = product("product-1", "Молоко", "dairy")
	flour  = product("product-2", "Мука", "grains", "gluten")
	peanut = product("product-3", "Арахис", "nuts", "peanuts")
	carrot = product("product-4", "Морковь", "vegetables")
	salt   = product("product-5", "Соль", "spices")
)
