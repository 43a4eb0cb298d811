package shopping

import (
	"context"
	"fmt"
	"strings"

	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PlanStore 餐計畫來源。GetPlansForUser 必須只回傳屬於 userID 的計畫，
// 不存在或不屬於該使用者的 id 直接略過。
type PlanStore interface {
	GetPlansForUser(ctx context.Context, userID string, planIDs []string) ([]MealPlan, error)
	GetUserAllergens(ctx context.Context, userID string) ([]string, error)
}

// ProductCatalog 商品包裝資訊來源，查無資料的商品不出現在回傳的 map 中
type ProductCatalog interface {
	GetProductMeta(ctx context.Context, productIDs []string) (map[string]ProductMeta, error)
}

// Service 取得計畫、過敏原與包裝資訊後交由 Builder 計算購物清單
type Service struct {
	plans   PlanStore
	catalog ProductCatalog
	builder *Builder
}

// NewService 創建購物清單服務，catalog 可為 nil（僅使用食材中的商品快照）
func NewService(plans PlanStore, catalog ProductCatalog, builder *Builder) *Service {
	if builder == nil {
		builder = NewBuilder(nil)
	}
	return &Service{
		plans:   plans,
		catalog: catalog,
		builder: builder,
	}
}

// ShoppingList 單一餐計畫的購物清單
func (s *Service) ShoppingList(ctx context.Context, userID, planID string) (*List, error) {
	planID = strings.TrimSpace(planID)
	if planID == "" {
		return nil, common.NewValidationError("meal plan id is required")
	}

	plans, allergens, meta, err := s.load(ctx, userID, []string{planID})
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, common.NewNotFoundError("meal plan", planID)
	}

	return s.builder.BuildForPlan(plans[0], allergens, meta)
}

// ConsolidatedList 多個餐計畫合併的購物清單，重複的 id 只計算一次
func (s *Service) ConsolidatedList(ctx context.Context, userID string, planIDs []string) (*ConsolidatedList, error) {
	ids := common.UniqueStrings(planIDs)
	if len(ids) == 0 {
		return nil, common.NewValidationError("at least one meal plan id is required")
	}

	plans, allergens, meta, err := s.load(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, common.NewNotFoundError("meal plan", ids...)
	}
	if len(plans) < len(ids) {
		common.LogDebug("部分餐計畫不存在或不屬於使用者",
			zap.String("user_id", userID),
			zap.Int("requested", len(ids)),
			zap.Int("found", len(plans)))
	}

	return s.builder.BuildConsolidated(plans, allergens, meta)
}

// load 並行取得計畫與過敏原，再依計畫中的商品取得包裝資訊
func (s *Service) load(ctx context.Context, userID string, planIDs []string) ([]MealPlan, AllergenSet, map[string]ProductMeta, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, nil, nil, common.NewValidationError("user id is required")
	}

	var (
		plans []MealPlan
		tags  []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		plans, err = s.plans.GetPlansForUser(gctx, userID, planIDs)
		if err != nil {
			return fmt.Errorf("load meal plans: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tags, err = s.plans.GetUserAllergens(gctx, userID)
		if err != nil {
			return fmt.Errorf("load user allergens: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	if len(plans) == 0 {
		return nil, nil, nil, nil
	}

	meta, err := s.productMeta(ctx, plans)
	if err != nil {
		return nil, nil, nil, err
	}
	return plans, NewAllergenSet(tags...), meta, nil
}

func (s *Service) productMeta(ctx context.Context, plans []MealPlan) (map[string]ProductMeta, error) {
	if s.catalog == nil {
		return nil, nil
	}
	ids := ProductIDs(plans)
	if len(ids) == 0 {
		return nil, nil
	}
	meta, err := s.catalog.GetProductMeta(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load product metadata: %w", err)
	}
	return meta, nil
}

// ProductIDs 計畫中所有非選用食材的商品 id，依首次出現順序
func ProductIDs(plans []MealPlan) []string {
	var ids []string
	for _, plan := range plans {
		for _, assignment := range plan.Assignments {
			for _, ing := range assignment.Recipe.Ingredients {
				if ing.IsOptional {
					continue
				}
				ids = append(ids, ing.ProductID)
			}
		}
	}
	return common.UniqueStrings(ids)
}
