package shopping

import (
	"meal-planner/internal/pkg/common"
)

// accumulator 彙總過程中單一商品的累計狀態
type accumulator struct {
	item     Item
	planSeen map[string]struct{}
}

// Aggregation 依 productId 彙總的結果，order 記錄首次出現的順序
type Aggregation struct {
	byProduct map[string]*accumulator
	order     []string
}

// Len 彙總後的商品數
func (a *Aggregation) Len() int {
	return len(a.order)
}

// Get 取得單一商品的彙總項目
func (a *Aggregation) Get(productID string) (Item, bool) {
	acc, ok := a.byProduct[productID]
	if !ok {
		return Item{}, false
	}
	return acc.item, true
}

// Items 依首次出現順序回傳彙總項目的副本
func (a *Aggregation) Items() []Item {
	items := make([]Item, 0, len(a.order))
	for _, id := range a.order {
		items = append(items, a.byProduct[id].item)
	}
	return items
}

// Aggregate 將餐計畫展開為每個商品的總克數。
//
// 份量比例為 assignment.Servings / recipe.Servings；選用食材不計入。
// 商品僅以 productId 為鍵，跨食譜、餐別、日期與計畫合併。商品的顯示欄位
// 取自首次出現的食材快照，之後出現的快照即使不同也不覆寫。
// 不修改輸入，也不檢查參照是否存在。
func Aggregate(plans []MealPlan) (*Aggregation, error) {
	agg := &Aggregation{byProduct: make(map[string]*accumulator)}

	for _, plan := range plans {
		for _, assignment := range plan.Assignments {
			recipe := assignment.Recipe
			if recipe.Servings <= 0 {
				return nil, common.NewValidationErrorf("recipe servings must be positive (recipe %s)", recipe.ID)
			}
			if assignment.Servings <= 0 {
				return nil, common.NewValidationErrorf("assignment servings must be positive (plan %s, recipe %s)", plan.ID, recipe.ID)
			}
			ratio := float64(assignment.Servings) / float64(recipe.Servings)

			for _, ing := range recipe.Ingredients {
				if ing.IsOptional {
					continue
				}
				if ing.AmountInGrams < 0 {
					return nil, common.NewValidationErrorf("ingredient amount must not be negative (recipe %s, product %s)", recipe.ID, ing.ProductID)
				}
				agg.add(plan.ID, ing, ing.AmountInGrams*ratio)
			}
		}
	}

	return agg, nil
}

func (a *Aggregation) add(planID string, ing RecipeIngredient, grams float64) {
	acc, ok := a.byProduct[ing.ProductID]
	if !ok {
		acc = &accumulator{
			item:     seedItem(ing),
			planSeen: make(map[string]struct{}),
		}
		a.byProduct[ing.ProductID] = acc
		a.order = append(a.order, ing.ProductID)
	}

	acc.item.TotalGrams += grams
	if _, seen := acc.planSeen[planID]; !seen {
		acc.planSeen[planID] = struct{}{}
		acc.item.FromPlans = append(acc.item.FromPlans, planID)
	}
}

func seedItem(ing RecipeIngredient) Item {
	p := ing.Product
	unit := p.DefaultUnit
	if unit == "" {
		if canonical, ok := CanonicalUnit(ing.Unit); ok {
			unit = canonical
		} else {
			unit = UnitGram
		}
	}

	allergens := make([]string, len(p.Allergens))
	copy(allergens, p.Allergens)

	return Item{
		ProductID:     ing.ProductID,
		ProductName:   p.Name,
		Category:      p.Category,
		Unit:          unit,
		PackageSize:   cloneFloat(p.PackageSize),
		GramsPerPiece: cloneFloat(p.GramsPerPiece),
		IsAlwaysOwned: p.IsAlwaysOwned,
		Allergens:     allergens,
	}
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
