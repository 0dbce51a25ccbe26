package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voice-detection-api/internal/application/apikey"
	"voice-detection-api/internal/domain/entity"
	"voice-detection-api/internal/interfaces/http/dto"
	apperrors "voice-detection-api/pkg/errors"
	"voice-detection-api/pkg/logger"
)

const (
	// APIKeyHeader 调用方密钥请求头
	APIKeyHeader = "x-api-key"

	contextKeyAPIKey   = "api_key"
	contextKeyAPIKeyID = "api_key_id"
)

// APIKeyAuth 校验 x-api-key 请求头，通过后将 Key 注入上下文
func APIKeyAuth(svc *apikey.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		key, err := svc.Validate(ctx, c.GetHeader(APIKeyHeader))
		if err != nil {
			appErr := apperrors.AsAppError(err)
			if appErr.HTTPStatus == http.StatusUnauthorized {
				logger.Debug(ctx, "api key rejected", "reason", appErr.Code)
				dto.AbortWithError(c, http.StatusUnauthorized, appErr.Message)
				return
			}
			logger.Error(ctx, "api key validation failed", err)
			dto.AbortWithError(c, http.StatusInternalServerError, dto.MessageInternalError)
			return
		}

		c.Set(contextKeyAPIKey, key)
		c.Set(contextKeyAPIKeyID, key.ID)

		ctx = logger.WithContext(ctx, logger.APIKeyIDKey, key.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetAPIKeyFromGin 获取已通过校验的 API Key
func GetAPIKeyFromGin(c *gin.Context) *entity.APIKey {
	v, ok := c.Get(contextKeyAPIKey)
	if !ok {
		return nil
	}
	key, _ := v.(*entity.APIKey)
	return key
}
