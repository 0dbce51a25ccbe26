// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"voice-detection-api/internal/domain/entity"
	"voice-detection-api/internal/domain/repository"
)

// VoiceDetectionRequest 语音检测请求
type VoiceDetectionRequest struct {
	Language    entity.Language `json:"language" binding:"required,oneof=Tamil English Hindi Malayalam Telugu"`
	AudioFormat string          `json:"audioFormat" binding:"required,eq=mp3"`
	AudioBase64 string          `json:"audioBase64" binding:"required"`
}

// GenerateKeyRequest 生成 API Key 请求
type GenerateKeyRequest struct {
	Owner string `json:"owner" binding:"required"`
}

// IDRequest 资源 ID 请求
type IDRequest struct {
	ID uint `uri:"id" binding:"required,min=1"`
}

// BindPage 从 Gin Context 绑定分页参数，兼容 pageSize 与 page_size
func BindPage(c *gin.Context) repository.Pagination {
	page := parseIntWithDefault(c.Query("page"), 1)

	sizeParam := c.Query("pageSize")
	if sizeParam == "" {
		sizeParam = c.Query("page_size")
	}
	pageSize := parseIntWithDefault(sizeParam, 20)

	return repository.NewPagination(page, pageSize)
}

// parseIntWithDefault 解析整数，失败时返回默认值
func parseIntWithDefault(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
