package shopping

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// categoryLabels 分類的顯示名稱
var categoryLabels = map[string]string{
	"vegetables":   "Овощи",
	"fruits":       "Фрукты",
	"meat":         "Мясо",
	"fish":         "Рыба",
	"seafood":      "Морепродукты",
	"dairy":        "Молочные продукты",
	"eggs":         "Яйца",
	"grains":       "Крупы",
	"bakery":       "Хлеб и выпечка",
	"legumes":      "Бобовые",
	"oils":         "Масла",
	"spices":       "Специи",
	"herbs":        "Зелень",
	"sauces":       "Соусы",
	"canned":       "Консервы",
	"baking":       "Для выпечки",
	"sweeteners":   "Сахар и подсластители",
	"nuts":         "Орехи",
	"seeds":        "Семена",
	"dried_fruits": "Сухофрукты",
	"frozen":       "Замороженные продукты",
	"beverages":    "Напитки",
	"other":        "Другое",
}

const (
	alwaysOwnedMarker = "(есть дома)"
	kiloThreshold     = 1000
)

// CategoryLabel 分類的顯示名稱，未知分類原樣回傳
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	if category == "" {
		return categoryLabels["other"]
	}
	return category
}

// FormatQuantity 將進位後的數量轉為顯示用的數值與單位。
// 1000 g/ml 以上改以 кг/л 顯示並保留一位小數，以件計的商品顯示整數件數。
func FormatQuantity(item Item) (value string, unit string) {
	amount := item.RoundedGrams

	switch item.Unit {
	case UnitPiece:
		pieces := amount
		if item.GramsPerPiece != nil && *item.GramsPerPiece > 0 {
			pieces = ceilTolerant(amount / *item.GramsPerPiece)
		}
		return decimal.NewFromFloat(ceilTolerant(pieces)).String(), "шт"
	case UnitMilliliter:
		return scaled(amount, "мл", "л")
	default:
		return scaled(amount, "г", "кг")
	}
}

func scaled(amount float64, base, kilo string) (string, string) {
	if amount >= kiloThreshold {
		return decimal.NewFromFloat(amount).Div(decimal.NewFromInt(kiloThreshold)).StringFixed(1), kilo
	}
	return decimal.NewFromFloat(math.Max(ceilTolerant(amount), 0)).String(), base
}

// FormatAmount 數量與單位，例如 "1.5 кг"、"300 г"
func FormatAmount(item Item) string {
	value, unit := FormatQuantity(item)
	return value + " " + unit
}

// PackageSuffix 需要購買的包裝數，沒有包裝規格時為空字串
func PackageSuffix(item Item) string {
	if item.PackagesNeeded == nil || *item.PackagesNeeded == 0 {
		return ""
	}
	return fmt.Sprintf(" (%d уп.)", *item.PackagesNeeded)
}
