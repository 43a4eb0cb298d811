package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"meal-planner/internal/core/shopping"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

// Store 以 PostgreSQL 提供餐計畫、使用者過敏原與商品包裝資訊。
// 資料表由其他服務維護，這裡只讀取。
type Store struct {
	db *sql.DB
}

var (
	_ shopping.PlanStore      = (*Store)(nil)
	_ shopping.ProductCatalog = (*Store)(nil)
)

// Open 建立連線池並確認資料庫可連線
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	common.LogInfo("資料庫連線成功",
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
	)
	return New(db), nil
}

// New 使用既有的連線池
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ping 就緒檢查
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close 關閉連線池
func (s *Store) Close() error {
	return s.db.Close()
}
