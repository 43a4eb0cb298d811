package shopping

import (
	"math"
	"reflect"
	"testing"

	"golang.org/x/text/language"
)

func names(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ProductName)
	}
	return out
}

func TestCategoryRank(t *testing.T) {
	if CategoryRank("vegetables") != 0 {
		t.Errorf("vegetables should rank first")
	}
	if CategoryRank("meat") >= CategoryRank("dairy") {
		t.Errorf("meat should rank before dairy")
	}
	if CategoryRank("other") != len(CategoryPriority)-1 {
		t.Errorf("other should rank last among known categories")
	}
	if CategoryRank("pet_food") != math.MaxInt {
		t.Errorf("unknown category should rank after all known ones")
	}
}

func TestSortItemsByCategoryThenName(t *testing.T) {
	items := []Item{
		{ProductID: "1", ProductName: "Сыр", Category: "dairy"},
		{ProductID: "2", ProductName: "Корм", Category: "pet_food"},
		{ProductID: "3", ProductName: "Морковь", Category: "vegetables"},
		{ProductID: "4", ProductName: "Губка", Category: "household"},
		{ProductID: "5", ProductName: "Молоко", Category: "dairy"},
		{ProductID: "6", ProductName: "Вода", Category: "other"},
		{ProductID: "7", ProductName: "Говядина", Category: "meat"},
	}

	sorted := SortItems(items, LocaleComparator(language.Russian))

	want := []string{"Морковь", "Говядина", "Молоко", "Сыр", "Вода", "Губка", "Корм"}
	if got := names(sorted); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if items[0].ProductName != "Сыр" {
		t.Error("SortItems must not reorder its input")
	}
}

func TestSortItemsUnknownCategoriesOrderByName(t *testing.T) {
	items := []Item{
		{ProductID: "1", ProductName: "Яблочный уксус", Category: "aaa_household"},
		{ProductID: "2", ProductName: "Арбузные семечки", Category: "zzz_pet"},
		{ProductID: "3", ProductName: "Батарейки", Category: "aaa_household"},
		{ProductID: "4", ProductName: "Хлеб", Category: "bakery"},
	}

	sorted := SortItems(items, LocaleComparator(language.Russian))

	want := []string{"Хлеб", "Арбузные семечки", "Батарейки", "Яблочный уксус"}
	if got := names(sorted); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if got := CategoryOrder(sorted); !reflect.DeepEqual(got, []string{"bakery", "zzz_pet", "aaa_household"}) {
		t.Errorf("category order = %v", got)
	}
}

func TestSortItemsUsesLocaleCollation(t *testing.T) {
	items := []Item{
		{ProductID: "1", ProductName: "ёлочные игрушки", Category: "other"},
		{ProductID: "2", ProductName: "Яблочный сок", Category: "other"},
		{ProductID: "3", ProductName: "арбуз", Category: "other"},
		{ProductID: "4", ProductName: "Ежевика", Category: "other"},
	}

	collated := names(SortItems(items, LocaleComparator(language.Russian)))
	want := []string{"арбуз", "Ежевика", "ёлочные игрушки", "Яблочный сок"}
	if !reflect.DeepEqual(collated, want) {
		t.Errorf("collated order = %v, want %v", collated, want)
	}

	binary := names(SortItems(items, BinaryComparator()))
	if reflect.DeepEqual(binary, want) {
		t.Errorf("byte order unexpectedly matched collation: %v", binary)
	}
}

func TestSortItemsDeterministic(t *testing.T) {
	items := []Item{
		{ProductID: "b", ProductName: "Соль", Category: "spices"},
		{ProductID: "a", ProductName: "Соль", Category: "spices"},
		{ProductID: "c", ProductName: "Щётка", Category: "zzz"},
		{ProductID: "d", ProductName: "Щётка", Category: "aaa"},
		{ProductID: "e", ProductName: "Перец", Category: "spices"},
	}

	first := SortItems(items, LocaleComparator(language.Russian))
	wantIDs := []string{"e", "a", "b", "d", "c"}
	for i, item := range first {
		if item.ProductID != wantIDs[i] {
			t.Fatalf("position %d = %s, want %s", i, item.ProductID, wantIDs[i])
		}
	}

	reversed := make([]Item, len(items))
	for i := range items {
		reversed[len(items)-1-i] = items[i]
	}
	for run := 0; run < 20; run++ {
		if got := SortItems(reversed, LocaleComparator(language.Russian)); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced a different order", run)
		}
	}
}

func TestGroupByCategory(t *testing.T) {
	sorted := SortItems([]Item{
		{ProductID: "1", ProductName: "Сыр", Category: "dairy"},
		{ProductID: "2", ProductName: "Лук", Category: "vegetables"},
		{ProductID: "3", ProductName: "Кефир", Category: "dairy"},
	}, LocaleComparator(language.Russian))

	grouped := GroupByCategory(sorted)
	if len(grouped) != 2 {
		t.Fatalf("groups = %d, want 2", len(grouped))
	}
	if got := names(grouped["dairy"]); !reflect.DeepEqual(got, []string{"Кефир", "Сыр"}) {
		t.Errorf("dairy = %v", got)
	}
	if got := CategoryOrder(sorted); !reflect.DeepEqual(got, []string{"vegetables", "dairy"}) {
		t.Errorf("CategoryOrder = %v", got)
	}
}
