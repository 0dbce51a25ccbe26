package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"voice-detection-api/internal/interfaces/http/dto"
)

// AdminAuth 管理接口 Bearer Token 校验；token 为空时不做校验
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			dto.AbortWithError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(token)) != 1 {
			dto.AbortWithError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		c.Next()
	}
}
