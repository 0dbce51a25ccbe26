package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voice-detection-api/internal/domain/entity"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// MessageInternalError 对外统一的 500 文案
const MessageInternalError = "Internal server error"

// VoiceDetectionResponse 语音检测响应
type VoiceDetectionResponse struct {
	Status          string                `json:"status"`
	Language        entity.Language       `json:"language"`
	Classification  entity.Classification `json:"classification"`
	ConfidenceScore float64               `json:"confidenceScore"`
	Explanation     string                `json:"explanation"`
}

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Success 返回 200 响应
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created 返回 201 响应
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// Error 返回错误响应
func Error(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, ErrorResponse{
		Status:  StatusError,
		Message: message,
	})
}

// AbortWithError 返回错误响应并终止后续处理
func AbortWithError(c *gin.Context, httpCode int, message string) {
	c.AbortWithStatusJSON(httpCode, ErrorResponse{
		Status:  StatusError,
		Message: message,
	})
}

// BadRequest 返回 400 错误
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// InternalError 返回 500 错误
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
