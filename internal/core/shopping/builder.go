package shopping

import (
	"time"

	"meal-planner/internal/pkg/common"
)

// Builder 組合彙總、過敏原判定、包裝進位與排序，產生購物清單
type Builder struct {
	newComparator ComparatorFactory
}

// NewBuilder 創建 Builder，newComparator 為 nil 時以位元組順序排序名稱
func NewBuilder(newComparator ComparatorFactory) *Builder {
	if newComparator == nil {
		newComparator = BinaryComparator()
	}
	return &Builder{newComparator: newComparator}
}

// BuildForPlan 產生單一餐計畫的購物清單，項目不帶 fromPlans
func (b *Builder) BuildForPlan(plan MealPlan, allergens AllergenSet, meta map[string]ProductMeta) (*List, error) {
	agg, err := Aggregate([]MealPlan{plan})
	if err != nil {
		return nil, err
	}

	items := b.finalize(agg, allergens, meta)
	for i := range items {
		items[i].FromPlans = nil
	}
	sorted := SortItems(items, b.newComparator)

	return &List{
		MealPlanID:        plan.ID,
		MealPlanName:      plan.Name,
		StartDate:         formatDate(plan.StartDate),
		EndDate:           formatDate(plan.EndDate),
		TotalItems:        len(sorted),
		ExcludedItems:     countExcluded(sorted),
		Items:             sorted,
		GroupedByCategory: GroupByCategory(sorted),
	}, nil
}

// BuildConsolidated 合併多個餐計畫為一份購物清單。
// plans 必須是已依擁有者過濾後的結果；為空時回傳 NotFoundError。
func (b *Builder) BuildConsolidated(plans []MealPlan, allergens AllergenSet, meta map[string]ProductMeta) (*ConsolidatedList, error) {
	if len(plans) == 0 {
		return nil, common.NewNotFoundError("meal plan")
	}

	agg, err := Aggregate(plans)
	if err != nil {
		return nil, err
	}

	sorted := SortItems(b.finalize(agg, allergens, meta), b.newComparator)

	ids := make([]string, 0, len(plans))
	summaries := make([]PlanSummary, 0, len(plans))
	for _, plan := range plans {
		ids = append(ids, plan.ID)
		summaries = append(summaries, PlanSummary{
			ID:        plan.ID,
			Name:      plan.Name,
			StartDate: formatDate(plan.StartDate),
			EndDate:   formatDate(plan.EndDate),
		})
	}
	start, end := dateSpan(plans)

	return &ConsolidatedList{
		MealPlanIDs:       ids,
		MealPlans:         summaries,
		StartDate:         formatDate(start),
		EndDate:           formatDate(end),
		TotalItems:        len(sorted),
		ExcludedItems:     countExcluded(sorted),
		Items:             sorted,
		GroupedByCategory: GroupByCategory(sorted),
	}, nil
}

// finalize 套用包裝資訊、過敏原判定與進位
func (b *Builder) finalize(agg *Aggregation, allergens AllergenSet, meta map[string]ProductMeta) []Item {
	items := agg.Items()
	for i := range items {
		item := &items[i]

		if m, ok := meta[item.ProductID]; ok {
			item.PackageSize = cloneFloat(m.PackageSize)
			item.GramsPerPiece = cloneFloat(m.GramsPerPiece)
			item.IsAlwaysOwned = m.IsAlwaysOwned
		}

		c := ClassifyAllergens(item.Allergens, allergens)
		item.IsExcluded = c.IsExcluded
		item.ExcludeReason = c.Reason

		r := RoundToPackages(item.TotalGrams, item.PackageSize)
		item.RoundedGrams = r.RoundedGrams
		item.PackagesNeeded = r.PackagesNeeded
	}
	return items
}

func countExcluded(items []Item) int {
	n := 0
	for _, item := range items {
		if item.IsExcluded {
			n++
		}
	}
	return n
}

// dateSpan 所有計畫的最早開始日與最晚結束日，忽略零值日期
func dateSpan(plans []MealPlan) (time.Time, time.Time) {
	var start, end time.Time
	for _, plan := range plans {
		if !plan.StartDate.IsZero() && (start.IsZero() || plan.StartDate.Before(start)) {
			start = plan.StartDate
		}
		if !plan.EndDate.IsZero() && (end.IsZero() || plan.EndDate.After(end)) {
			end = plan.EndDate
		}
	}
	return start, end
}
