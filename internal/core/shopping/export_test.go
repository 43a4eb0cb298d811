package shopping

import (
	"encoding/json"
	"strings"
	"testing"

	"meal-planner/internal/pkg/common"
)

func exportFixture(t *testing.T) *List {
	t.Helper()

	oil := product("oil", "Масло", "oils")
	cheese := product("cheese", `Сыр "Российский"`, "dairy", "milk")
	p := plan("plan-1",
		assign(2, recipe("r1", 2,
			ingredient(carrot, 300),
			ingredient(flour, 1500),
			ingredient(peanut, 40),
			ingredient(oil, 30),
			ingredient(cheese, 120),
		)),
	)
	p.Name = "Неделя"
	p.StartDate = day(t, "2024-03-04")
	p.EndDate = day(t, "2024-03-10")

	meta := map[string]ProductMeta{
		flour.ID: {PackageSize: ptr(1000)},
		"oil":    {PackageSize: ptr(500), IsAlwaysOwned: true},
	}

	list, err := newTestBuilder().BuildForPlan(p, NewAllergenSet("peanuts"), meta)
	if err != nil {
		t.Fatal(err)
	}
	return list
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":      FormatText,
		"text":  FormatText,
		" CSV ": FormatCSV,
		"json":  FormatJSON,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if _, err := ParseFormat("pdf"); !common.IsValidationError(err) {
		t.Errorf("expected ValidationError for pdf, got %v", err)
	}
}

func TestExportText(t *testing.T) {
	got := ExportText(exportFixture(t).Sheet())

	want := strings.Join([]string{
		"Список покупок: Неделя",
		"2024-03-04 - 2024-03-10",
		"",
		"Овощи:",
		"- Морковь: 300 г",
		"",
		"Молочные продукты:",
		`- Сыр "Российский": 120 г`,
		"",
		"Крупы:",
		"- Мука: 2.0 кг (2 уп.)",
		"",
		"Масла:",
		"- Масло: 500 г (1 уп.) (есть дома)",
		"",
	}, "\n")

	if got != want {
		t.Errorf("text export mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
	if strings.Contains(got, "Арахис") {
		t.Error("allergen-excluded item must be omitted")
	}
}

func TestExportCSV(t *testing.T) {
	got := ExportCSV(exportFixture(t).Sheet())

	want := strings.Join([]string{
		`"Продукт","Категория","Количество","Единица","Упаковок"`,
		`"Морковь","Овощи","300","г",""`,
		`"Сыр ""Российский""","Молочные продукты","120","г",""`,
		`"Мука","Крупы","2.0","кг","2"`,
		"",
	}, "\r\n")

	if got != want {
		t.Errorf("csv export mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestExportJSON(t *testing.T) {
	list := exportFixture(t)
	raw, err := ExportJSON(list.Sheet())
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(string(raw), "productId") {
		t.Error("json export must not contain productId")
	}

	var doc struct {
		Title             string                      `json:"title"`
		TotalItems        int                         `json:"totalItems"`
		ExcludedItems     int                         `json:"excludedItems"`
		Items             []map[string]any            `json:"items"`
		GroupedByCategory map[string][]map[string]any `json:"groupedByCategory"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}

	if doc.Title != "Неделя" || doc.TotalItems != 5 || doc.ExcludedItems != 1 {
		t.Errorf("header = %+v", doc)
	}
	if len(doc.Items) != 5 {
		t.Fatalf("items = %d, want 5", len(doc.Items))
	}
	if doc.Items[0]["productName"] != "Морковь" || doc.Items[0]["amount"] != "300 г" {
		t.Errorf("first item = %v", doc.Items[0])
	}
	if len(doc.GroupedByCategory["nuts"]) != 1 || doc.GroupedByCategory["nuts"][0]["isExcluded"] != true {
		t.Errorf("nuts group = %v", doc.GroupedByCategory["nuts"])
	}
}

func TestExportConsolidatedSheet(t *testing.T) {
	c := &ConsolidatedList{
		MealPlans: []PlanSummary{{ID: "a", Name: "Неделя 1"}, {ID: "b", Name: "Неделя 2"}},
		StartDate: "2024-01-01",
		EndDate:   "2024-01-14",
	}
	s := c.Sheet()
	if s.Title != "Неделя 1, Неделя 2" {
		t.Errorf("title = %q", s.Title)
	}

	for _, f := range []Format{FormatText, FormatCSV, FormatJSON} {
		if _, err := Export(s, f); err != nil {
			t.Errorf("Export(%s): %v", f, err)
		}
	}
	if _, err := Export(s, "xml"); !common.IsValidationError(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}
