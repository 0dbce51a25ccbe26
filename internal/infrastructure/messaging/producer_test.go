package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"voice-detection-api/internal/application/detection"
	"voice-detection-api/internal/domain/entity"
	"voice-detection-api/pkg/logger"
)

func TestNewMessage(t *testing.T) {
	evt := &detection.Event{
		RequestLogID:   42,
		Classification: entity.ClassificationHuman,
		Language:       entity.LanguageMalayalam,
	}

	msg, err := NewMessage(MessageTypeDetection, evt)
	if err != nil {
		t.Fatalf("NewMessage() error = %v", err)
	}
	if msg.ID == "" || msg.Type != MessageTypeDetection || msg.CreatedAt.IsZero() {
		t.Fatalf("unexpected message %+v", msg)
	}

	var decoded detection.Event
	if err := json.Unmarshal(msg.Payload, &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded.RequestLogID != 42 || decoded.Language != entity.LanguageMalayalam {
		t.Fatalf("decoded = %+v", decoded)
	}

	other, _ := NewMessage(MessageTypeDetection, evt)
	if other.ID == msg.ID {
		t.Fatalf("message ids must be unique")
	}
}

func TestNewProducerDefaults(t *testing.T) {
	p := NewProducer(nil, "", 0)
	if p.stream != StreamVoiceDetection || p.maxLen != 100000 {
		t.Fatalf("defaults not applied: %+v", p)
	}

	p = NewProducer(nil, "stream:custom", 10)
	if p.stream != "stream:custom" || p.maxLen != 10 {
		t.Fatalf("overrides not applied: %+v", p)
	}
}

func TestPublishDetectionReportsRedisFailure(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	p := NewProducer(rdb, "", 0)
	ctx := logger.WithContext(context.Background(), logger.RequestIDKey, "req-1")

	err := p.PublishDetection(ctx, &detection.Event{Classification: entity.ClassificationAIGenerated})
	if err == nil {
		t.Fatalf("expected publish error against unreachable redis")
	}
}
