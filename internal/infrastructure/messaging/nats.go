package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"voice-detection-api/internal/application/detection"
	"voice-detection-api/internal/config"
	"voice-detection-api/pkg/logger"
	"voice-detection-api/pkg/metrics"
)

const defaultNATSSubject = "voice.detection.completed"

// NATSPublisher 将检测事件发布到 NATS subject
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher 连接 NATS，连接失败时返回错误
func NewNATSPublisher(cfg *config.NATSConfig) (*NATSPublisher, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name("voice-detection-api"),
		nats.Timeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	subject := cfg.Subject
	if subject == "" {
		subject = defaultNATSSubject
	}
	return &NATSPublisher{conn: conn, subject: subject}, nil
}

// PublishDetection 发布检测完成事件
func (p *NATSPublisher) PublishDetection(ctx context.Context, evt *detection.Event) error {
	_, span := tracer.Start(ctx, "nats.PublishDetection",
		trace.WithAttributes(attribute.String("nats.subject", p.subject)))
	defer span.End()

	msg, err := NewMessage(MessageTypeDetection, evt)
	if err != nil {
		return fmt.Errorf("failed to build detection message: %w", err)
	}
	msg.SetMetadata("classification", string(evt.Classification))
	msg.SetMetadata("language", string(evt.Language))
	if v, ok := ctx.Value(logger.RequestIDKey).(string); ok && v != "" {
		msg.SetMetadata("request_id", v)
	}

	data, err := json.Marshal(msg)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		span.RecordError(err)
		metrics.StreamPublishedTotal.WithLabelValues(p.subject, "error").Inc()
		return fmt.Errorf("failed to publish to NATS: %w", err)
	}

	metrics.StreamPublishedTotal.WithLabelValues(p.subject, "ok").Inc()
	return nil
}

// HealthCheck 连接状态检查
func (p *NATSPublisher) HealthCheck(_ context.Context) error {
	if status := p.conn.Status(); status != nats.CONNECTED {
		return fmt.Errorf("nats connection status: %s", status)
	}
	return nil
}

// Close 刷出缓冲后关闭连接
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
