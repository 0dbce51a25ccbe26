package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"voice-detection-api/internal/application/detection"
	"voice-detection-api/internal/config"
)

type recordingPublisher struct {
	calls int
	err   error
}

func (p *recordingPublisher) PublishDetection(context.Context, *detection.Event) error {
	p.calls++
	return p.err
}

func TestCombine(t *testing.T) {
	if got := Combine(); got != nil {
		t.Fatalf("Combine() = %v, want nil", got)
	}
	if got := Combine(nil, nil); got != nil {
		t.Fatalf("Combine(nil, nil) = %v, want nil", got)
	}

	single := &recordingPublisher{}
	if got := Combine(nil, single); got != single {
		t.Fatalf("Combine with one backend should return it unchanged")
	}

	if _, ok := Combine(single, &recordingPublisher{}).(FanOut); !ok {
		t.Fatalf("Combine with two backends should return FanOut")
	}
}

func TestFanOutPublishesToAll(t *testing.T) {
	failing := &recordingPublisher{err: errors.New("boom")}
	ok := &recordingPublisher{}

	err := FanOut{failing, ok}.PublishDetection(context.Background(), &detection.Event{RequestLogID: 1})
	if err == nil || err.Error() != "boom" {
		t.Fatalf("PublishDetection() error = %v, want boom", err)
	}
	if failing.calls != 1 || ok.calls != 1 {
		t.Fatalf("calls = %d/%d, want 1/1", failing.calls, ok.calls)
	}

	if err := (FanOut{ok}).PublishDetection(context.Background(), &detection.Event{}); err != nil {
		t.Fatalf("PublishDetection() error = %v", err)
	}
}

func TestNewNATSPublisherUnreachable(t *testing.T) {
	_, err := NewNATSPublisher(&config.NATSConfig{
		URL:            "nats://127.0.0.1:1",
		ConnectTimeout: 200 * time.Millisecond,
	})
	if err == nil {
		t.Fatalf("NewNATSPublisher() expected connection error")
	}
}
