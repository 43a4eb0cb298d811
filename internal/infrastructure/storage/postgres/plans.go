package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"meal-planner/internal/core/shopping"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

const plansQuery = `
SELECT mp.id, mp.user_id, mp.name, mp.start_date, mp.end_date,
       a.id, a.date, a.meal_type, a.servings,
       r.id, r.name, r.servings,
       ri.id, ri.product_id, ri.amount, ri.unit, ri.amount_in_grams, ri.is_optional,
       ri.group_name, ri.preparation, ri.notes,
       p.id, p.name, p.category, p.default_unit, p.package_size, p.grams_per_piece,
       p.is_always_owned, p.allergens
FROM meal_plans mp
LEFT JOIN meal_plan_recipes a ON a.meal_plan_id = mp.id
LEFT JOIN recipes r ON r.id = a.recipe_id
LEFT JOIN recipe_ingredients ri ON ri.recipe_id = r.id
LEFT JOIN products p ON p.id = ri.product_id
WHERE mp.user_id::text = $1 AND mp.id::text = ANY($2)
ORDER BY mp.id, a.date, a.meal_type, a.id, ri.sort_order, ri.id`

// planRow 查詢結果的一列，LEFT JOIN 的欄位可能為 NULL
type planRow struct {
	planID, userID, planName sql.NullString
	startDate, endDate       sql.NullTime

	assignmentID       sql.NullString
	date               sql.NullTime
	mealType           sql.NullString
	assignmentServings sql.NullInt64

	recipeID       sql.NullString
	recipeName     sql.NullString
	recipeServings sql.NullInt64

	ingredientID  sql.NullString
	productID     sql.NullString
	amount        sql.NullFloat64
	unit          sql.NullString
	amountInGrams sql.NullFloat64
	isOptional    sql.NullBool
	groupName     sql.NullString
	preparation   sql.NullString
	notes         sql.NullString

	joinedProductID sql.NullString
	productName     sql.NullString
	category        sql.NullString
	defaultUnit     sql.NullString
	packageSize     sql.NullFloat64
	gramsPerPiece   sql.NullFloat64
	isAlwaysOwned   sql.NullBool
	allergens       sql.NullString
}

func (r *planRow) dest() []any {
	return []any{
		&r.planID, &r.userID, &r.planName, &r.startDate, &r.endDate,
		&r.assignmentID, &r.date, &r.mealType, &r.assignmentServings,
		&r.recipeID, &r.recipeName, &r.recipeServings,
		&r.ingredientID, &r.productID, &r.amount, &r.unit, &r.amountInGrams, &r.isOptional,
		&r.groupName, &r.preparation, &r.notes,
		&r.joinedProductID, &r.productName, &r.category, &r.defaultUnit, &r.packageSize, &r.gramsPerPiece,
		&r.isAlwaysOwned, &r.allergens,
	}
}

// GetPlansForUser 只回傳屬於 userID 的計畫，順序依 planIDs
func (s *Store) GetPlansForUser(ctx context.Context, userID string, planIDs []string) ([]shopping.MealPlan, error) {
	if len(planIDs) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, plansQuery, userID, planIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query meal plans: %w", err)
	}
	defer rows.Close()

	var planRows []planRow
	for rows.Next() {
		var row planRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("failed to scan meal plan row: %w", err)
		}
		planRows = append(planRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meal plan rows: %w", err)
	}

	plans, err := assemblePlans(planRows, planIDs)
	if err != nil {
		return nil, err
	}

	common.LogDebug("載入餐計畫",
		zap.String("user_id", userID),
		zap.Int("requested", len(planIDs)),
		zap.Int("found", len(plans)),
		zap.Int("rows", len(planRows)),
	)
	return plans, nil
}

// assemblePlans 將攤平的查詢結果組回巢狀結構，輸出順序依 order
func assemblePlans(rows []planRow, order []string) ([]shopping.MealPlan, error) {
	type planState struct {
		plan        shopping.MealPlan
		assignments map[string]int
	}
	byID := make(map[string]*planState)

	for i := range rows {
		row := &rows[i]
		if !row.planID.Valid {
			continue
		}

		st, ok := byID[row.planID.String]
		if !ok {
			st = &planState{
				plan: shopping.MealPlan{
					ID:        row.planID.String,
					UserID:    row.userID.String,
					Name:      row.planName.String,
					StartDate: row.startDate.Time,
					EndDate:   row.endDate.Time,
				},
				assignments: make(map[string]int),
			}
			byID[row.planID.String] = st
		}

		if !row.assignmentID.Valid {
			continue
		}
		if !row.recipeID.Valid {
			return nil, fmt.Errorf("meal plan %s: assignment %s references a missing recipe", st.plan.ID, row.assignmentID.String)
		}

		idx, ok := st.assignments[row.assignmentID.String]
		if !ok {
			st.plan.Assignments = append(st.plan.Assignments, shopping.Assignment{
				Date:     row.date.Time,
				MealType: shopping.MealType(row.mealType.String),
				Servings: int(row.assignmentServings.Int64),
				Recipe: shopping.Recipe{
					ID:       row.recipeID.String,
					Name:     row.recipeName.String,
					Servings: int(row.recipeServings.Int64),
				},
			})
			idx = len(st.plan.Assignments) - 1
			st.assignments[row.assignmentID.String] = idx
		}

		if !row.ingredientID.Valid {
			continue
		}
		ing, err := decodeIngredient(row)
		if err != nil {
			return nil, fmt.Errorf("meal plan %s, recipe %s: %w", st.plan.ID, row.recipeID.String, err)
		}
		recipe := &st.plan.Assignments[idx].Recipe
		recipe.Ingredients = append(recipe.Ingredients, ing)
	}

	plans := make([]shopping.MealPlan, 0, len(byID))
	for _, id := range common.UniqueStrings(order) {
		if st, ok := byID[id]; ok {
			plans = append(plans, st.plan)
		}
	}
	return plans, nil
}

// decodeIngredient 解析食材與商品快照；amount_in_grams 未記錄時以單位換算補上
func decodeIngredient(row *planRow) (shopping.RecipeIngredient, error) {
	if !row.joinedProductID.Valid {
		return shopping.RecipeIngredient{}, fmt.Errorf("ingredient %s references a missing product %s", row.ingredientID.String, row.productID.String)
	}

	allergens, err := common.ParseStringList(row.allergens.String)
	if err != nil {
		return shopping.RecipeIngredient{}, fmt.Errorf("product %s allergens: %w", row.productID.String, err)
	}

	product := shopping.Product{
		ID:            row.joinedProductID.String,
		Name:          row.productName.String,
		Category:      row.category.String,
		DefaultUnit:   shopping.Unit(row.defaultUnit.String),
		PackageSize:   nullFloat(row.packageSize),
		GramsPerPiece: nullFloat(row.gramsPerPiece),
		IsAlwaysOwned: row.isAlwaysOwned.Bool,
		Allergens:     allergens,
	}

	ing := shopping.RecipeIngredient{
		ProductID:     row.productID.String,
		Product:       product,
		Amount:        row.amount.Float64,
		Unit:          shopping.Unit(row.unit.String),
		AmountInGrams: row.amountInGrams.Float64,
		IsOptional:    row.isOptional.Bool,
		GroupName:     row.groupName.String,
		Preparation:   row.preparation.String,
		Notes:         row.notes.String,
	}

	// 選用食材不計入彙總，不需要換算
	if (!row.amountInGrams.Valid || row.amountInGrams.Float64 == 0) && !ing.IsOptional {
		grams, err := shopping.NormalizeToGrams(ing.Amount, ing.Unit, product.GramsPerPiece)
		if err != nil {
			return shopping.RecipeIngredient{}, fmt.Errorf("ingredient %s: %w", row.ingredientID.String, err)
		}
		ing.AmountInGrams = grams
	}

	return ing, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
