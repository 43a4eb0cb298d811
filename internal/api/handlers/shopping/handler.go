package shopping

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"meal-planner/internal/api/middleware"
	shoppingService "meal-planner/internal/core/shopping"
	"meal-planner/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ConsolidatedRequest 合併購物清單請求
type ConsolidatedRequest struct {
	MealPlanIDs []string `json:"mealPlanIds" binding:"required,min=1,max=52,dive,required"`
}

// Handler 購物清單處理程序
type Handler struct {
	service *shoppingService.Service
}

// NewHandler 創建購物清單處理程序
func NewHandler(service *shoppingService.Service) *Handler {
	return &Handler{service: service}
}

// HandleShoppingList 單一餐計畫的購物清單
func (h *Handler) HandleShoppingList(c *gin.Context) {
	list, ok := h.shoppingList(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, list)
}

// HandleConsolidated 多個餐計畫合併的購物清單
func (h *Handler) HandleConsolidated(c *gin.Context) {
	list, ok := h.consolidated(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) shoppingList(c *gin.Context) (*shoppingService.List, bool) {
	planID := c.Param("id")
	userID := middleware.UserID(c)

	list, err := h.service.ShoppingList(c.Request.Context(), userID, planID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	common.LogDebug("購物清單完成",
		zap.String("request_id", requestid.Get(c)),
		zap.String("meal_plan_id", planID),
		zap.Int("items", list.TotalItems),
		zap.Int("excluded", list.ExcludedItems),
	)
	return list, true
}

func (h *Handler) consolidated(c *gin.Context) (*shoppingService.ConsolidatedList, bool) {
	var req ConsolidatedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return nil, false
	}

	list, err := h.service.ConsolidatedList(c.Request.Context(), middleware.UserID(c), req.MealPlanIDs)
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	common.LogDebug("合併購物清單完成",
		zap.String("request_id", requestid.Get(c)),
		zap.Strings("meal_plan_ids", list.MealPlanIDs),
		zap.Int("items", list.TotalItems),
	)
	return list, true
}

// respondError 將服務錯誤轉為 HTTP 回應
func respondError(c *gin.Context, err error) {
	var notFound *common.NotFoundError

	switch {
	case common.IsValidationError(err):
		c.AbortWithStatusJSON(http.StatusBadRequest, common.ErrValidation.Response(err.Error()))
	case errors.As(err, &notFound):
		c.AbortWithStatusJSON(http.StatusNotFound, common.ErrNotFound.Response(notFound.Error()))
	case errors.Is(err, context.DeadlineExceeded):
		common.LogError("購物清單逾時",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
			zap.String("path", c.Request.URL.Path),
		)
		c.AbortWithStatusJSON(http.StatusGatewayTimeout, common.ErrGatewayTimeout.Response(""))
	case errors.Is(err, context.Canceled):
		// 客戶端已中斷連線
		c.Abort()
	default:
		common.LogError("購物清單處理失敗",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
			zap.String("path", c.Request.URL.Path),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, common.ErrInternalError.Response(""))
	}
}

// respondBindError 請求內容解析或驗證失敗
func respondBindError(c *gin.Context, err error) {
	var (
		verrs   validator.ValidationErrors
		tooLong *http.MaxBytesError
	)

	switch {
	case errors.As(err, &verrs):
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, common.ErrValidation.Response(strings.Join(details, "; ")))
	case errors.As(err, &tooLong):
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.ErrorResponse{
			Code:    common.ErrCodeEntityTooLarge,
			Message: "request body too large",
		})
	default:
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
		)
		c.AbortWithStatusJSON(http.StatusBadRequest, common.ErrInvalidRequest.Response(err.Error()))
	}
}
