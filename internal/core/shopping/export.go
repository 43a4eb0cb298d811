package shopping

import (
	"encoding/json"
	"strconv"
	"strings"

	"meal-planner/internal/pkg/common"
)

// Format 匯出格式
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// csvHeader CSV 欄位標題
var csvHeader = []string{"Продукт", "Категория", "Количество", "Единица", "Упаковок"}

// ParseFormat 解析匯出格式，空字串視為 text
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", common.NewValidationErrorf("unsupported export format %q (expected text, csv or json)", raw)
	}
}

// ContentType 對應的 HTTP Content-Type
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension 下載檔案的副檔名
func (f Format) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// Sheet 匯出用的共同視圖，單一與合併清單都轉成這個結構
type Sheet struct {
	Title         string
	StartDate     string
	EndDate       string
	TotalItems    int
	ExcludedItems int
	Items         []Item
}

// Sheet 單一清單的匯出視圖
func (l *List) Sheet() Sheet {
	return Sheet{
		Title:         l.MealPlanName,
		StartDate:     l.StartDate,
		EndDate:       l.EndDate,
		TotalItems:    l.TotalItems,
		ExcludedItems: l.ExcludedItems,
		Items:         l.Items,
	}
}

// Sheet 合併清單的匯出視圖，標題由各計畫名稱組成
func (c *ConsolidatedList) Sheet() Sheet {
	names := make([]string, 0, len(c.MealPlans))
	for _, p := range c.MealPlans {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	return Sheet{
		Title:         strings.Join(names, ", "),
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		TotalItems:    c.TotalItems,
		ExcludedItems: c.ExcludedItems,
		Items:         c.Items,
	}
}

// Export 依格式序列化
func Export(s Sheet, f Format) ([]byte, error) {
	switch f {
	case FormatText:
		return []byte(ExportText(s)), nil
	case FormatCSV:
		return []byte(ExportCSV(s)), nil
	case FormatJSON:
		return ExportJSON(s)
	default:
		return nil, common.NewValidationErrorf("unsupported export format %q", f)
	}
}

// ExportText 純文字清單。Items 須已排序；過敏排除的項目不輸出，常備品加註標記。
func ExportText(s Sheet) string {
	var b strings.Builder

	b.WriteString("Список покупок")
	if s.Title != "" {
		b.WriteString(": ")
		b.WriteString(s.Title)
	}
	b.WriteByte('\n')
	if s.StartDate != "" || s.EndDate != "" {
		b.WriteString(s.StartDate)
		b.WriteString(" - ")
		b.WriteString(s.EndDate)
		b.WriteByte('\n')
	}

	for _, category := range CategoryOrder(s.Items) {
		var lines []string
		for _, item := range s.Items {
			if item.Category != category || item.IsExcluded {
				continue
			}
			line := "- " + item.ProductName + ": " + FormatAmount(item) + PackageSuffix(item)
			if item.IsAlwaysOwned {
				line += " " + alwaysOwnedMarker
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			continue
		}

		b.WriteByte('\n')
		b.WriteString(CategoryLabel(category))
		b.WriteString(":\n")
		for _, line := range lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// ExportCSV 只包含需要購買的項目，每個欄位都加上引號
func ExportCSV(s Sheet) string {
	var b strings.Builder
	writeCSVRow(&b, csvHeader)

	for _, item := range s.Items {
		if item.IsAlwaysOwned || item.IsExcluded {
			continue
		}
		value, unit := FormatQuantity(item)
		packages := ""
		if item.PackagesNeeded != nil {
			packages = strconv.Itoa(*item.PackagesNeeded)
		}
		writeCSVRow(&b, []string{item.ProductName, CategoryLabel(item.Category), value, unit, packages})
	}
	return b.String()
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
}

// exportItem JSON 匯出的項目，不含 productId
type exportItem struct {
	ProductName    string   `json:"productName"`
	Category       string   `json:"category"`
	CategoryLabel  string   `json:"categoryLabel"`
	Unit           Unit     `json:"unit"`
	TotalGrams     float64  `json:"totalGrams"`
	RoundedGrams   float64  `json:"roundedGrams"`
	Amount         string   `json:"amount"`
	PackagesNeeded *int     `json:"packagesNeeded"`
	IsAlwaysOwned  bool     `json:"isAlwaysOwned"`
	IsExcluded     bool     `json:"isExcluded"`
	ExcludeReason  string   `json:"excludeReason,omitempty"`
	Allergens      []string `json:"allergens"`
	FromPlans      []string `json:"fromPlans,omitempty"`
}

type exportDocument struct {
	Title             string                  `json:"title"`
	StartDate         string                  `json:"startDate"`
	EndDate           string                  `json:"endDate"`
	TotalItems        int                     `json:"totalItems"`
	ExcludedItems     int                     `json:"excludedItems"`
	Items             []exportItem            `json:"items"`
	GroupedByCategory map[string][]exportItem `json:"groupedByCategory"`
}

// ExportJSON 同時輸出平面與分組兩種形式
func ExportJSON(s Sheet) ([]byte, error) {
	doc := exportDocument{
		Title:             s.Title,
		StartDate:         s.StartDate,
		EndDate:           s.EndDate,
		TotalItems:        s.TotalItems,
		ExcludedItems:     s.ExcludedItems,
		Items:             make([]exportItem, 0, len(s.Items)),
		GroupedByCategory: make(map[string][]exportItem),
	}

	for _, item := range s.Items {
		allergens := item.Allergens
		if allergens == nil {
			allergens = []string{}
		}
		e := exportItem{
			ProductName:    item.ProductName,
			Category:       item.Category,
			CategoryLabel:  CategoryLabel(item.Category),
			Unit:           item.Unit,
			TotalGrams:     item.TotalGrams,
			RoundedGrams:   item.RoundedGrams,
			Amount:         FormatAmount(item),
			PackagesNeeded: item.PackagesNeeded,
			IsAlwaysOwned:  item.IsAlwaysOwned,
			IsExcluded:     item.IsExcluded,
			ExcludeReason:  item.ExcludeReason,
			Allergens:      allergens,
			FromPlans:      item.FromPlans,
		}
		doc.Items = append(doc.Items, e)
		doc.GroupedByCategory[item.Category] = append(doc.GroupedByCategory[item.Category], e)
	}

	return json.MarshalIndent(doc, "", "  ")
}
