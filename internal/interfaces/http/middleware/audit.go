package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"voice-detection-api/pkg/logger"
)

// DefaultAuditSkipPaths 默认跳过审计的路径
var DefaultAuditSkipPaths = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
}

// Audit 每个请求输出一行访问日志，skipPaths 中的路径不记录
func Audit(skipPaths ...string) gin.HandlerFunc {
	skipMap := make(map[string]bool, len(skipPaths))
	for _, path := range skipPaths {
		skipMap[path] = true
	}

	return func(c *gin.Context) {
		if skipMap[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
			"body_size", c.Writer.Size(),
		}
		if id, ok := c.Get(contextKeyAPIKeyID); ok {
			fields = append(fields, "api_key_id", id)
		}

		// c.Request 的上下文已带 request_id / trace_id
		logger.Info(c.Request.Context(), "api request", fields...)
	}
}
