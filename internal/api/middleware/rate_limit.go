package middleware

import (
	"fmt"
	"net/http"
	"time"

	"meal-planner/internal/infrastructure/ratelimit"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit 限流中間件，以客戶端 IP 為 key。
// 限流器本身出錯時放行請求並記錄警告。
func RateLimit(limiter ratelimit.Limiter, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			common.LogWarn("Rate limiter unavailable, allowing request",
				zap.Error(err),
				zap.String("ip", c.ClientIP()),
			)
			c.Next()
			return
		}

		if !allowed {
			common.LogInfo("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				common.ErrTooManyRequests.Response(fmt.Sprintf("retry after %s", window)))
			return
		}

		c.Next()
	}
}
