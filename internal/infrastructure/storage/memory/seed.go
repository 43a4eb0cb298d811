package memory

import (
	"fmt"
	"os"

	"meal-planner/internal/core/shopping"
	"meal-planner/internal/pkg/common"
)

// Seed 記憶體儲存的初始資料（JSON）
type Seed struct {
	Plans       []shopping.MealPlan             `json:"plans"`
	Allergens   map[string][]string             `json:"allergens"`
	ProductMeta map[string]shopping.ProductMeta `json:"productMeta"`
}

// Load 將初始資料寫入儲存
func (s *Store) Load(seed Seed) {
	for _, plan := range seed.Plans {
		s.PutPlan(plan)
	}
	for userID, tags := range seed.Allergens {
		s.SetAllergens(userID, tags...)
	}
	for productID, meta := range seed.ProductMeta {
		s.PutProductMeta(productID, meta)
	}
}

// LoadFile 從 JSON 檔載入初始資料，未知欄位視為錯誤
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed Seed
	if err := common.ParseJSONStrict(string(data), &seed); err != nil {
		return fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	s.Load(seed)
	return nil
}
