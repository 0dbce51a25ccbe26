package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"voice-detection-api/internal/application/detection"
	"voice-detection-api/pkg/logger"
	"voice-detection-api/pkg/metrics"
)

var tracer = otel.Tracer("messaging")

// Producer 消息生产者
type Producer struct {
	client *redis.Client
	stream Stream
	maxLen int64
}

// NewProducer 创建消息生产者，stream 为空时使用默认检测流
func NewProducer(client *redis.Client, stream string, maxLen int64) *Producer {
	if maxLen <= 0 {
		maxLen = 100000
	}
	s := StreamVoiceDetection
	if stream != "" {
		s = Stream(stream)
	}
	return &Producer{
		client: client,
		stream: s,
		maxLen: maxLen,
	}
}

// Publish 发布消息到指定流
func (p *Producer) Publish(ctx context.Context, stream Stream, msg *Message) (string, error) {
	ctx, span := tracer.Start(ctx, "producer.Publish",
		trace.WithAttributes(
			attribute.String("stream", string(stream)),
			attribute.String("message.id", msg.ID),
			attribute.String("message.type", msg.Type),
		))
	defer span.End()

	data, err := json.Marshal(msg)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to marshal message: %w", err)
	}

	result, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: string(stream),
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()

	if err != nil {
		span.RecordError(err)
		metrics.StreamPublishedTotal.WithLabelValues(string(stream), "error").Inc()
		return "", fmt.Errorf("failed to publish message: %w", err)
	}

	metrics.StreamPublishedTotal.WithLabelValues(string(stream), "ok").Inc()
	span.SetAttributes(attribute.String("stream.message_id", result))
	return result, nil
}

// PublishDetection 发布检测完成事件
func (p *Producer) PublishDetection(ctx context.Context, evt *detection.Event) error {
	msg, err := NewMessage(MessageTypeDetection, evt)
	if err != nil {
		return fmt.Errorf("failed to build detection message: %w", err)
	}

	msg.SetMetadata("classification", string(evt.Classification))
	msg.SetMetadata("language", string(evt.Language))
	if v, ok := ctx.Value(logger.RequestIDKey).(string); ok && v != "" {
		msg.SetMetadata("request_id", v)
	}

	_, err = p.Publish(ctx, p.stream, msg)
	return err
}
