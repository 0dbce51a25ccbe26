package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes 注册 /api 下的业务与管理路由
func RegisterAPIRoutes(api *gin.RouterGroup, h Handlers, apiKeyAuth, adminAuth gin.HandlerFunc) {
	// 语音检测
	api.POST("/voice-detection", apiKeyAuth, h.Detection.Detect)

	// 管理接口
	admin := api.Group("/admin", adminAuth)
	{
		admin.POST("/generate-key", h.Admin.GenerateKey)
		admin.GET("/stats", h.Admin.Stats)

		admin.GET("/keys", h.Admin.ListKeys)
		admin.POST("/keys/:id/activate", h.Admin.ActivateKey)
		admin.POST("/keys/:id/deactivate", h.Admin.DeactivateKey)

		admin.GET("/logs", h.Admin.ListLogs)
	}
}
