package middleware

import (
	"net/http"
	"time"

	"meal-planner/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger 請求日誌中間件，購物清單路由另外記錄使用者與餐計畫 id
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := requestFields(c, path, time.Since(start))
		status := c.Writer.Status()

		switch {
		case status >= http.StatusInternalServerError:
			common.LogError("伺服器錯誤", append(fields, zap.String("error_type", "server_error"))...)
		case status >= http.StatusBadRequest:
			common.LogWarn("用戶端錯誤", append(fields, zap.String("error_type", "client_error"))...)
		default:
			common.LogInfo("請求完成", fields...)
		}
	}
}

// requestFields 組出單一請求的日誌欄位，空值不輸出
func requestFields(c *gin.Context, path string, latency time.Duration) []zap.Field {
	fields := []zap.Field{
		zap.Int("status", c.Writer.Status()),
		zap.String("method", c.Request.Method),
		zap.String("path", path),
		zap.String("ip", c.ClientIP()),
		zap.Duration("latency", latency),
		zap.Int("bytes", c.Writer.Size()),
		zap.String("request_id", requestid.Get(c)),
	}

	if route := c.FullPath(); route != "" {
		fields = append(fields, zap.String("route", route))
	}
	if userID := UserID(c); userID != "" {
		fields = append(fields, zap.String("user_id", userID))
	}
	if planID := c.Param("id"); planID != "" {
		fields = append(fields, zap.String("meal_plan_id", planID))
	}
	if format := c.Query("format"); format != "" {
		fields = append(fields, zap.String("export_format", format))
	}
	if len(c.Errors) > 0 {
		fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
	}
	return fields
}

// Recovery 恢復中間件
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				common.LogError("Panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String("user_id", UserID(c)),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, common.ErrInternalError.Response(""))
			}
		}()

		c.Next()
	}
}
