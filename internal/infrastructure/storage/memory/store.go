package memory

import (
	"context"
	"sync"

	"meal-planner/internal/core/shopping"
	"meal-planner/internal/pkg/common"
)

// Store 記憶體中的餐計畫與商品資料，未設定資料庫時使用
type Store struct {
	mu        sync.RWMutex
	plans     map[string]shopping.MealPlan
	allergens map[string][]string
	meta      map[string]shopping.ProductMeta
}

var (
	_ shopping.PlanStore      = (*Store)(nil)
	_ shopping.ProductCatalog = (*Store)(nil)
)

// New 創建空的記憶體儲存
func New() *Store {
	return &Store{
		plans:     make(map[string]shopping.MealPlan),
		allergens: make(map[string][]string),
		meta:      make(map[string]shopping.ProductMeta),
	}
}

// PutPlan 新增或覆寫餐計畫
func (s *Store) PutPlan(plan shopping.MealPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[plan.ID] = plan
}

// SetAllergens 設定使用者的過敏原
func (s *Store) SetAllergens(userID string, allergens ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allergens[userID] = append([]string(nil), allergens...)
}

// PutProductMeta 設定商品包裝資訊
func (s *Store) PutProductMeta(productID string, meta shopping.ProductMeta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta[productID] = meta
}

// GetPlansForUser 依 planIDs 順序回傳屬於 userID 的計畫
func (s *Store) GetPlansForUser(ctx context.Context, userID string, planIDs []string) ([]shopping.MealPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var plans []shopping.MealPlan
	for _, id := range common.UniqueStrings(planIDs) {
		plan, ok := s.plans[id]
		if !ok || plan.UserID != userID {
			continue
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// GetUserAllergens 使用者的過敏原
func (s *Store) GetUserAllergens(ctx context.Context, userID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.allergens[userID]...), nil
}

// GetProductMeta 已登錄的商品包裝資訊
func (s *Store) GetProductMeta(ctx context.Context, productIDs []string) (map[string]shopping.ProductMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	meta := make(map[string]shopping.ProductMeta, len(productIDs))
	for _, id := range productIDs {
		if m, ok := s.meta[id]; ok {
			meta[id] = m
		}
	}
	return meta, nil
}

// Ping 記憶體儲存永遠可用
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}
