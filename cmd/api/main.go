package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-planner/internal/api"
	"meal-planner/internal/api/handlers/health"
	"meal-planner/internal/core/shopping"
	"meal-planner/internal/infrastructure/catalog"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/infrastructure/ratelimit"
	"meal-planner/internal/infrastructure/storage/memory"
	"meal-planner/internal/infrastructure/storage/postgres"
	"meal-planner/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// store 同時提供餐計畫、過敏原與商品包裝資訊的儲存層
type store interface {
	shopping.PlanStore
	shopping.ProductCatalog
	health.Pinger
}

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("env", cfg.App.Env),
		zap.Bool("database", cfg.Database.URL != ""),
		zap.Bool("redis", cfg.Redis.Enabled),
		zap.String("catalog_url", cfg.Catalog.BaseURL),
		zap.String("locale", cfg.Shopping.Locale),
	)

	ctx := context.Background()

	// 初始化儲存層
	db, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		common.LogFatal("Failed to initialize store", zap.Error(err))
	}
	defer closeStore()

	checks := []health.Check{{Name: "database", Pinger: db}}

	// 商品目錄：有設定外部服務時改用 HTTP client
	var products shopping.ProductCatalog = db
	if cfg.Catalog.BaseURL != "" {
		client := catalog.NewClient(cfg.Catalog)
		products = client
		checks = append(checks, health.Check{Name: "catalog", Pinger: client})
	}

	// 排序語系
	tag, err := cfg.Shopping.LocaleTag()
	if err != nil {
		common.LogFatal("Invalid shopping locale", zap.Error(err))
	}
	builder := shopping.NewBuilder(shopping.LocaleComparator(tag))
	service := shopping.NewService(db, products, builder)

	// 限流
	limiter, redisClient, err := newLimiter(ctx, cfg)
	if err != nil {
		common.LogFatal("Failed to initialize rate limiter", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
		checks = append(checks, health.Check{Name: "redis", Pinger: limiter.(*ratelimit.RedisLimiter)})
	}

	// 設置路由
	router := api.SetupRouter(cfg, api.Dependencies{
		Shopping: service,
		Limiter:  limiter,
		Checks:   checks,
	})

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		return
	}

	common.LogInfo("Server exited")
}

// openStore 有 DATABASE_URL 時連線 PostgreSQL，否則使用記憶體儲存並載入種子資料
func openStore(ctx context.Context, cfg *config.Config) (store, func(), error) {
	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return db, func() {
			if err := db.Close(); err != nil {
				common.LogWarn("關閉資料庫連線失敗", zap.Error(err))
			}
		}, nil
	}

	mem := memory.New()
	if cfg.Database.SeedFile != "" {
		if err := mem.LoadFile(cfg.Database.SeedFile); err != nil {
			return nil, nil, fmt.Errorf("load seed file: %w", err)
		}
	}
	common.LogWarn("未設定 DATABASE_URL，使用記憶體儲存",
		zap.String("seed_file", cfg.Database.SeedFile),
	)
	return mem, func() {}, nil
}

// newLimiter Redis 啟用時使用跨實例的固定視窗，否則使用行程內的 token bucket
func newLimiter(ctx context.Context, cfg *config.Config) (ratelimit.Limiter, *redis.Client, error) {
	if !cfg.RateLimit.Enabled {
		return nil, nil, nil
	}

	if cfg.Redis.Enabled {
		client, err := ratelimit.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return ratelimit.NewRedisLimiter(client, cfg.RateLimit.Requests, cfg.RateLimit.Window), client, nil
	}

	return ratelimit.NewTokenBucket(cfg.RateLimit.Requests, cfg.RateLimit.Window), nil, nil
}
