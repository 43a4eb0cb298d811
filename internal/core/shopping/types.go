package shopping

import "time"

// Unit 商品或食材的計量單位
type Unit string

const (
	UnitGram       Unit = "g"
	UnitMilliliter Unit = "ml"
	UnitPiece      Unit = "pcs"
)

// MealType 餐別
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// dateLayout 輸出日期格式
const dateLayout = "2006-01-02"

// Product 商品參考資料（唯讀）
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	DefaultUnit   Unit     `json:"defaultUnit"`
	PackageSize   *float64 `json:"packageSize,omitempty"`
	GramsPerPiece *float64 `json:"gramsPerPiece,omitempty"`
	IsAlwaysOwned bool     `json:"isAlwaysOwned"`
	Allergens     []string `json:"allergens,omitempty"`
}

// RecipeIngredient 食譜中的一項食材
type RecipeIngredient struct {
	ProductID     string  `json:"productId"`
	Product       Product `json:"product"`
	Amount        float64 `json:"amount"`
	Unit          Unit    `json:"unit"`
	AmountInGrams float64 `json:"amountInGrams"`
	IsOptional    bool    `json:"isOptional"`
	GroupName     string  `json:"groupName,omitempty"`
	Preparation   string  `json:"preparation,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// Recipe 食譜，Servings 為食材份量對應的基準份數
type Recipe struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Servings    int                `json:"servings"`
	Ingredients []RecipeIngredient `json:"ingredients"`
}

// Assignment 餐計畫中某一天某一餐的食譜安排
type Assignment struct {
	Date     time.Time `json:"date"`
	MealType MealType  `json:"mealType"`
	Servings int       `json:"servings"`
	Recipe   Recipe    `json:"recipe"`
}

// MealPlan 使用者的餐計畫（日期區間含頭尾）
type MealPlan struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Name        string       `json:"name"`
	StartDate   time.Time    `json:"startDate"`
	EndDate     time.Time    `json:"endDate"`
	Assignments []Assignment `json:"assignments"`
}

// ProductMeta 另行取得的包裝資訊
type ProductMeta struct {
	PackageSize   *float64 `json:"packageSize,omitempty"`
	GramsPerPiece *float64 `json:"gramsPerPiece,omitempty"`
	IsAlwaysOwned bool     `json:"isAlwaysOwned"`
}

// Item 彙總後的購物清單項目，每次請求重新計算，不持久化
type Item struct {
	ProductID      string   `json:"productId"`
	ProductName    string   `json:"productName"`
	Category       string   `json:"category"`
	Unit           Unit     `json:"unit"`
	TotalGrams     float64  `json:"totalGrams"`
	RoundedGrams   float64  `json:"roundedGrams"`
	PackagesNeeded *int     `json:"packagesNeeded"`
	PackageSize    *float64 `json:"packageSize,omitempty"`
	GramsPerPiece  *float64 `json:"gramsPerPiece,omitempty"`
	IsAlwaysOwned  bool     `json:"isAlwaysOwned"`
	IsExcluded     bool     `json:"isExcluded"`
	ExcludeReason  string   `json:"excludeReason,omitempty"`
	Allergens      []string `json:"allergens"`
	FromPlans      []string `json:"fromPlans,omitempty"`
}

// List 單一餐計畫的購物清單
type List struct {
	MealPlanID        string            `json:"mealPlanId"`
	MealPlanName      string            `json:"mealPlanName"`
	StartDate         string            `json:"startDate"`
	EndDate           string            `json:"endDate"`
	TotalItems        int               `json:"totalItems"`
	ExcludedItems     int               `json:"excludedItems"`
	Items             []Item            `json:"items"`
	GroupedByCategory map[string][]Item `json:"groupedByCategory"`
}

// PlanSummary 合併清單中的餐計畫摘要
type PlanSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ConsolidatedList 跨多個餐計畫合併的購物清單
type ConsolidatedList struct {
	MealPlanIDs       []string          `json:"mealPlanIds"`
	MealPlans         []PlanSummary     `json:"mealPlans"`
	StartDate         string            `json:"startDate"`
	EndDate           string            `json:"endDate"`
	TotalItems        int               `json:"totalItems"`
	ExcludedItems     int               `json:"excludedItems"`
	Items             []Item            `json:"items"`
	GroupedByCategory map[string][]Item `json:"groupedByCategory"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
