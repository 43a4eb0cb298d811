package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"meal-planner/internal/core/shopping"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// maxIDsPerRequest 單次查詢的商品數上限，避免 query string 過長
const maxIDsPerRequest = 100

// Client 遠端商品目錄服務的客戶端
type Client struct {
	client *resty.Client
}

var _ shopping.ProductCatalog = (*Client)(nil)

// productMeta 目錄服務回傳的單一商品
type productMeta struct {
	ID            string   `json:"id"`
	PackageSize   *float64 `json:"packageSize"`
	GramsPerPiece *float64 `json:"gramsPerPiece"`
	IsAlwaysOwned bool     `json:"isAlwaysOwned"`
}

type metaResponse struct {
	Products []productMeta `json:"products"`
}

// NewClient 創建商品目錄客戶端
func NewClient(cfg config.CatalogConfig) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	if cfg.APIKey != "" {
		client.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey))
	}

	return &Client{client: client}
}

// GetProductMeta 分批查詢商品包裝資訊
func (c *Client) GetProductMeta(ctx context.Context, productIDs []string) (map[string]shopping.ProductMeta, error) {
	ids := common.UniqueStrings(productIDs)
	meta := make(map[string]shopping.ProductMeta, len(ids))

	for start := 0; start < len(ids); start += maxIDsPerRequest {
		end := min(start+maxIDsPerRequest, len(ids))
		if err := c.fetch(ctx, ids[start:end], meta); err != nil {
			return nil, err
		}
	}
	return meta, nil
}

func (c *Client) fetch(ctx context.Context, ids []string, into map[string]shopping.ProductMeta) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("ids", strings.Join(ids, ",")).
		Get("/products/meta")
	if err != nil {
		return fmt.Errorf("failed to send request to catalog: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogWarn("商品目錄回傳錯誤",
			zap.Int("status", resp.StatusCode()),
			zap.Int("ids", len(ids)),
		)
		return fmt.Errorf("catalog returned status %d: %s", resp.StatusCode(), truncate(resp.String(), 200))
	}

	var result metaResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return fmt.Errorf("failed to parse catalog response: %w", err)
	}

	for _, p := range result.Products {
		if p.ID == "" {
			continue
		}
		into[p.ID] = shopping.ProductMeta{
			PackageSize:   p.PackageSize,
			GramsPerPiece: p.GramsPerPiece,
			IsAlwaysOwned: p.IsAlwaysOwned,
		}
	}
	return nil
}

// Ping 確認目錄服務可連線
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.client.R().SetContext(ctx).Get("/health")
	if err != nil {
		return fmt.Errorf("catalog unreachable: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("catalog health returned status %d", resp.StatusCode())
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
