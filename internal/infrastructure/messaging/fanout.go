package messaging

import (
	"context"
	"errors"

	"voice-detection-api/internal/application/detection"
)

// FanOut 将同一事件依次发布到多个后端，单个失败不影响其他后端
type FanOut []detection.EventPublisher

// PublishDetection 发布到全部后端，返回合并后的错误
func (f FanOut) PublishDetection(ctx context.Context, evt *detection.Event) error {
	var errs []error
	for _, p := range f {
		if err := p.PublishDetection(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Combine 按数量返回 nil、单个后端或 FanOut
func Combine(publishers ...detection.EventPublisher) detection.EventPublisher {
	var active FanOut
	for _, p := range publishers {
		if p != nil {
			active = append(active, p)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	default:
		return active
	}
}
