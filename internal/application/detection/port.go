package detection

import (
	"context"
	"time"

	"voice-detection-api/internal/domain/entity"
)

// EventPublisher 检测完成事件的发布端口，由基础设施层（Redis Stream）实现
type EventPublisher interface {
	PublishDetection(ctx context.Context, evt *Event) error
}

// Event 检测完成事件
type Event struct {
	RequestLogID    uint                  `json:"request_log_id"`
	APIKeyID        uint                  `json:"api_key_id"`
	Language        entity.Language       `json:"language"`
	Classification  entity.Classification `json:"classification"`
	ConfidenceScore float64               `json:"confidence_score"`
	ProbabilityAI   float64               `json:"probability_ai"`
	Digest          string                `json:"digest"`
	Features        Features              `json:"features"`
	ClientIP        string                `json:"client_ip,omitempty"`
	OccurredAt      time.Time             `json:"occurred_at"`
}
