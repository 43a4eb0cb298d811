package shopping

import "testing"

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want string
	}{
		{"grams", Item{Unit: UnitGram, RoundedGrams: 350}, "350 г"},
		{"kilograms", Item{Unit: UnitGram, RoundedGrams: 1500}, "1.5 кг"},
		{"exactly one kilogram", Item{Unit: UnitGram, RoundedGrams: 1000}, "1.0 кг"},
		{"kilograms rounding", Item{Unit: UnitGram, RoundedGrams: 1250}, "1.3 кг"},
		{"milliliters", Item{Unit: UnitMilliliter, RoundedGrams: 999}, "999 мл"},
		{"liters", Item{Unit: UnitMilliliter, RoundedGrams: 2000}, "2.0 л"},
		{"pieces by weight", Item{Unit: UnitPiece, RoundedGrams: 130, GramsPerPiece: ptr(60)}, "3 шт"},
		{"pieces by count", Item{Unit: UnitPiece, RoundedGrams: 4}, "4 шт"},
		{"zero", Item{Unit: UnitGram}, "0 г"},
		{"unknown unit as grams", Item{Unit: "", RoundedGrams: 42}, "42 г"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAmount(tt.item); got != tt.want {
				t.Errorf("FormatAmount() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPackageSuffix(t *testing.T) {
	if got := PackageSuffix(Item{PackagesNeeded: intPtr(2)}); got != " (2 уп.)" {
		t.Errorf("suffix = %q", got)
	}
	if got := PackageSuffix(Item{}); got != "" {
		t.Errorf("suffix without packages = %q", got)
	}
	if got := PackageSuffix(Item{PackagesNeeded: intPtr(0)}); got != "" {
		t.Errorf("suffix for zero packages = %q", got)
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategoryLabel("vegetables"); got != "Овощи" {
		t.Errorf("label = %q", got)
	}
	if got := CategoryLabel("household"); got != "household" {
		t.Errorf("unknown label = %q", got)
	}
	if got := CategoryLabel(""); got != "Другое" {
		t.Errorf("empty label = %q", got)
	}
}
