package detection

import (
	"context"
	"encoding/base64"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"voice-detection-api/internal/domain/entity"
	"voice-detection-api/internal/domain/repository"
	apperrors "voice-detection-api/pkg/errors"
	"voice-detection-api/pkg/logger"
	"voice-detection-api/pkg/metrics"
)

var tracer = otel.Tracer("detection")

// AnalyzeInput 一次检测请求
type AnalyzeInput struct {
	APIKeyID    uint
	Language    entity.Language
	AudioBase64 string
	ClientIP    string
}

// Service 检测编排：解码、判定、写日志、发布事件
type Service struct {
	logs      repository.RequestLogRepository
	publisher EventPublisher
}

// NewService 创建检测服务，publisher 可为 nil
func NewService(logs repository.RequestLogRepository, publisher EventPublisher) *Service {
	// 预先创建全部 语言×分类 序列，未发生的组合也以 0 出现在 /metrics
	for _, lang := range entity.Languages() {
		for _, cls := range []entity.Classification{entity.ClassificationAIGenerated, entity.ClassificationHuman} {
			metrics.DetectionsTotal.WithLabelValues(string(cls), string(lang))
		}
	}

	return &Service{
		logs:      logs,
		publisher: publisher,
	}
}

// Analyze 执行检测并持久化请求日志
func (s *Service) Analyze(ctx context.Context, in AnalyzeInput) (*entity.RequestLog, *Result, error) {
	ctx, span := tracer.Start(ctx, "detection.Analyze",
		trace.WithAttributes(attribute.String("detection.language", string(in.Language))))
	defer span.End()

	audio := DecodeAudio(in.AudioBase64)
	metrics.AudioPayloadSize.Observe(float64(len(audio)))

	result := Detect(audio)
	span.SetAttributes(
		attribute.String("detection.classification", string(result.Classification)),
		attribute.Float64("detection.confidence", result.ConfidenceScore),
		attribute.Int("detection.audio_bytes", result.Features.Size),
	)

	logger.Debug(ctx, "audio classified",
		"digest", result.Score.Digest,
		"base_score", result.Score.Base,
		"p_ai", result.Probabilities.AI,
		"rules", AppliedRules(result.Features),
		"id3_header", result.Features.ID3Header,
		"classification", result.Classification,
	)

	clientIP := strings.TrimSpace(in.ClientIP)
	if clientIP == "" {
		clientIP = "unknown"
	}

	apiKeyID := in.APIKeyID
	log := &entity.RequestLog{
		APIKeyID:        &apiKeyID,
		Language:        in.Language,
		Classification:  result.Classification,
		ConfidenceScore: result.ConfidenceScore,
		Explanation:     result.Explanation,
		ClientIP:        clientIP,
	}
	if err := s.logs.Insert(ctx, log); err != nil {
		span.RecordError(err)
		return nil, nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to persist request log")
	}

	metrics.DetectionsTotal.WithLabelValues(string(result.Classification), string(in.Language)).Inc()
	metrics.DetectionConfidence.WithLabelValues(string(result.Classification)).Observe(result.ConfidenceScore)

	s.publish(ctx, log, &result)

	return log, &result, nil
}

// publish 发布检测事件；失败只记录日志，不影响请求结果
func (s *Service) publish(ctx context.Context, log *entity.RequestLog, result *Result) {
	if s.publisher == nil {
		return
	}
	evt := &Event{
		RequestLogID:    log.ID,
		APIKeyID:        *log.APIKeyID,
		Language:        log.Language,
		Classification:  log.Classification,
		ConfidenceScore: log.ConfidenceScore,
		ProbabilityAI:   result.Probabilities.AI,
		Digest:          result.Score.Digest,
		Features:        result.Features,
		ClientIP:        log.ClientIP,
		OccurredAt:      log.Timestamp,
	}
	if err := s.publisher.PublishDetection(ctx, evt); err != nil {
		logger.Warn(ctx, "failed to publish detection event", "error", err.Error(), "request_log_id", log.ID)
	}
}

// DecodeAudio 宽松解码 base64 音频，不会失败
// 同时接受标准与 URL 安全字母表；跳过字母表外的字符（含空白），遇到第一个 '=' 停止；
// 末尾多出的单个字符无法组成字节，直接丢弃。全部无效时返回空切片
func DecodeAudio(payload string) []byte {
	clean := make([]byte, 0, len(payload))
scan:
	for i := 0; i < len(payload); i++ {
		c := payload[i]
		switch {
		case c == '=':
			break scan
		case c == '-':
			clean = append(clean, '+')
		case c == '_':
			clean = append(clean, '/')
		case isBase64Char(c):
			clean = append(clean, c)
		}
	}
	if len(clean)%4 == 1 {
		clean = clean[:len(clean)-1]
	}

	audio := make([]byte, base64.RawStdEncoding.DecodedLen(len(clean)))
	n, _ := base64.RawStdEncoding.Decode(audio, clean)
	return audio[:n]
}

func isBase64Char(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '+' || c == '/'
}
