// Package handler 提供 HTTP 请求处理器
package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"voice-detection-api/internal/interfaces/http/dto"
	apperrors "voice-detection-api/pkg/errors"
	"voice-detection-api/pkg/logger"
)

// bindJSON 绑定并校验请求体；空请求体按空对象校验
// 返回 false 时已写出 400/413 响应
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return true
	}

	if dto.IsBodyTooLarge(err) {
		dto.Error(c, http.StatusRequestEntityTooLarge, dto.MessageBodyTooLarge)
		return false
	}
	dto.BadRequest(c, dto.ValidationMessage(err))
	return false
}

// respondError 将应用错误映射为响应；5xx 只返回 internalMessage，原因写入日志
func respondError(c *gin.Context, err error, internalMessage string) {
	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed", err, "code", appErr.Code)
		dto.InternalError(c, internalMessage)
		return
	}

	message := appErr.Message
	if appErr.Detail != "" {
		message = appErr.Detail
	}
	dto.Error(c, appErr.HTTPStatus, message)
}
