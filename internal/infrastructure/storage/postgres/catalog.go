package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"meal-planner/internal/core/shopping"
	"meal-planner/internal/pkg/common"
)

const (
	allergensQuery = `SELECT allergies FROM user_profiles WHERE user_id::text = $1`

	productMetaQuery = `
SELECT id, package_size, grams_per_piece, is_always_owned
FROM products
WHERE id::text = ANY($1)`
)

// GetUserAllergens 使用者宣告的過敏原；沒有個人資料時回傳空列表
func (s *Store) GetUserAllergens(ctx context.Context, userID string) ([]string, error) {
	var raw sql.NullString
	err := s.db.QueryRowContext(ctx, allergensQuery, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user allergens: %w", err)
	}

	allergens, err := common.ParseStringList(raw.String)
	if err != nil {
		return nil, fmt.Errorf("user %s allergies: %w", userID, err)
	}
	return allergens, nil
}

// GetProductMeta 商品包裝資訊，查無的商品不出現在結果中
func (s *Store) GetProductMeta(ctx context.Context, productIDs []string) (map[string]shopping.ProductMeta, error) {
	meta := make(map[string]shopping.ProductMeta, len(productIDs))
	if len(productIDs) == 0 {
		return meta, nil
	}

	rows, err := s.db.QueryContext(ctx, productMetaQuery, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query product metadata: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id            string
			packageSize   sql.NullFloat64
			gramsPerPiece sql.NullFloat64
			alwaysOwned   sql.NullBool
		)
		if err := rows.Scan(&id, &packageSize, &gramsPerPiece, &alwaysOwned); err != nil {
			return nil, fmt.Errorf("failed to scan product metadata: %w", err)
		}
		meta[id] = shopping.ProductMeta{
			PackageSize:   nullFloat(packageSize),
			GramsPerPiece: nullFloat(gramsPerPiece),
			IsAlwaysOwned: alwaysOwned.Bool,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product metadata: %w", err)
	}
	return meta, nil
}
