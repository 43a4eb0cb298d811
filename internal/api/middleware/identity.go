package middleware

import (
	"net/http"
	"strings"

	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

const (
	// UserIDHeader 上游閘道驗證後填入的使用者 id
	UserIDHeader = "X-User-ID"

	userIDKey = "user_id"
)

// RequireUser 要求請求帶有使用者 id，缺少時回應 401
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				common.ErrUnauthorized.Response("missing "+UserIDHeader+" header"))
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID 取得 RequireUser 設定的使用者 id
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
