package middleware

import (
	"net/http"
	"strings"

	"cooking-tools-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BearerAuth 入站認證中間件
// 未設定 token 時不做任何檢查（開放模式）；
// 已設定時，缺少或格式錯誤的 Authorization 標頭回 401，token 不符回 403。
// 錯誤訊息保持籠統，不洩漏比對細節
func BearerAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		authorization := c.GetHeader("Authorization")
		if authorization == "" || !strings.HasPrefix(authorization, "Bearer ") {
			common.LogWarn("認證標頭缺漏或格式錯誤",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
				"code":  common.ErrCodeUnauthorized,
			})
			return
		}

		got := strings.TrimSpace(strings.TrimPrefix(authorization, "Bearer "))
		if got != token {
			common.LogWarn("認證 token 不符",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Forbidden",
				"code":  common.ErrCodeForbidden,
			})
			return
		}

		c.Next()
	}
}
