package handler

import (
	"github.com/gin-gonic/gin"

	"voice-detection-api/internal/application/detection"
	"voice-detection-api/internal/interfaces/http/dto"
	"voice-detection-api/internal/interfaces/http/middleware"
	"voice-detection-api/pkg/logger"
)

// DetectionHandler 语音检测处理器
type DetectionHandler struct {
	svc *detection.Service
}

// NewDetectionHandler 创建语音检测处理器
func NewDetectionHandler(svc *detection.Service) *DetectionHandler {
	return &DetectionHandler{svc: svc}
}

// Detect 判定音频为 AI 生成或真人
// @Summary 语音来源检测
// @Tags Detection
// @Accept json
// @Produce json
// @Param x-api-key header string true "API Key"
// @Param body body dto.VoiceDetectionRequest true "检测请求"
// @Success 200 {object} dto.VoiceDetectionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/voice-detection [post]
func (h *DetectionHandler) Detect(c *gin.Context) {
	ctx := c.Request.Context()

	key := middleware.GetAPIKeyFromGin(c)
	if key == nil {
		// 路由未挂载 APIKeyAuth
		dto.InternalError(c, dto.MessageInternalError)
		return
	}

	var req dto.VoiceDetectionRequest
	if !bindJSON(c, &req) {
		return
	}

	log, result, err := h.svc.Analyze(ctx, detection.AnalyzeInput{
		APIKeyID:    key.ID,
		Language:    req.Language,
		AudioBase64: req.AudioBase64,
		ClientIP:    c.ClientIP(),
	})
	if err != nil {
		respondError(c, err, dto.MessageInternalError)
		return
	}

	logger.Info(ctx, "voice detection completed",
		"request_log_id", log.ID,
		"classification", result.Classification,
		"confidence", result.ConfidenceScore,
		"audio_bytes", result.Features.Size,
	)

	dto.Success(c, dto.VoiceDetectionResponse{
		Status:          dto.StatusSuccess,
		Language:        req.Language,
		Classification:  result.Classification,
		ConfidenceScore: result.ConfidenceScore,
		Explanation:     result.Explanation,
	})
}
