package shopping

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CategoryPriority 購物清單的分類順序，未列出的分類排在最後
var CategoryPriority = []string{
	"vegetables",
	"fruits",
	"meat",
	"fish",
	"seafood",
	"dairy",
	"eggs",
	"grains",
	"bakery",
	"legumes",
	"oils",
	"spices",
	"herbs",
	"sauces",
	"canned",
	"baking",
	"sweeteners",
	"nuts",
	"seeds",
	"dried_fruits",
	"frozen",
	"beverages",
	"other",
}

var categoryRank = func() map[string]int {
	ranks := make(map[string]int, len(CategoryPriority))
	for i, c := range CategoryPriority {
		ranks[c] = i
	}
	return ranks
}()

// CategoryRank 分類的排序權重，未知分類為 math.MaxInt
func CategoryRank(category string) int {
	if rank, ok := categoryRank[category]; ok {
		return rank
	}
	return math.MaxInt
}

// Comparator 比較兩個商品名稱
type Comparator interface {
	Compare(a, b string) int
}

// ComparatorFactory 每次排序建立新的 Comparator
type ComparatorFactory func() Comparator

type collatorComparator struct {
	c *collate.Collator
}

func (cc collatorComparator) Compare(a, b string) int {
	return cc.c.CompareString(a, b)
}

// LocaleComparator 依語系排序規則比較名稱（忽略大小寫）。
// collate.Collator 不可並行使用，因此每次呼叫工廠都建立新的實例。
func LocaleComparator(tag language.Tag) ComparatorFactory {
	return func() Comparator {
		return collatorComparator{c: collate.New(tag, collate.IgnoreCase)}
	}
}

type binaryComparator struct{}

func (binaryComparator) Compare(a, b string) int {
	return strings.Compare(a, b)
}

// BinaryComparator 以位元組順序比較，僅用於不需語系排序的情境
func BinaryComparator() ComparatorFactory {
	return func() Comparator { return binaryComparator{} }
}

// SortItems 依分類權重、名稱排序規則排序，回傳新的切片。
// 未知分類共用最後的權重並直接依名稱排序；名稱相同時再依分類字串與 productId 決定順序。
func SortItems(items []Item, newComparator ComparatorFactory) []Item {
	if newComparator == nil {
		newComparator = BinaryComparator()
	}
	cmp := newComparator()

	sorted := make([]Item, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		ra, rb := CategoryRank(a.Category), CategoryRank(b.Category)
		if ra != rb {
			return ra < rb
		}
		if c := cmp.Compare(a.ProductName, b.ProductName); c != 0 {
			return c < 0
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.ProductID < b.ProductID
	})
	return sorted
}

// GroupByCategory 將已排序的項目依分類分組，組內保持原順序
func GroupByCategory(sorted []Item) map[string][]Item {
	grouped := make(map[string][]Item)
	for _, item := range sorted {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	return grouped
}

// CategoryOrder 已排序項目中出現的分類，依出現順序
func CategoryOrder(sorted []Item) []string {
	var order []string
	seen := make(map[string]struct{})
	for _, item := range sorted {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		order = append(order, item.Category)
	}
	return order
}
