package stats

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"voice-detection-api/internal/domain/entity"
	"voice-detection-api/internal/domain/repository"
	apperrors "voice-detection-api/pkg/errors"
)

type stubLogRepo struct {
	counts    entity.ClassificationCounts
	recent    []*entity.RequestLog
	lastLimit int
	err       error
}

func (s *stubLogRepo) Insert(context.Context, *entity.RequestLog) error { return nil }

func (s *stubLogRepo) Recent(_ context.Context, n int) ([]*entity.RequestLog, error) {
	s.lastLimit = n
	return s.recent, s.err
}

func (s *stubLogRepo) CountsByClassification(context.Context) (*entity.ClassificationCounts, error) {
	if s.err != nil {
		return nil, s.err
	}
	c := s.counts
	return &c, nil
}

func (s *stubLogRepo) List(_ context.Context, p repository.Pagination) (*repository.PagedResult[*entity.RequestLog], error) {
	if s.err != nil {
		return nil, s.err
	}
	return repository.NewPagedResult(s.recent, int64(len(s.recent)), p), nil
}

func TestSummary(t *testing.T) {
	repo := &stubLogRepo{
		counts: entity.ClassificationCounts{Total: 3, AI: 1, Human: 2},
		recent: []*entity.RequestLog{{ID: 3}, {ID: 2}, {ID: 1}},
	}
	svc := NewService(repo)

	got, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if repo.lastLimit != RecentLimit {
		t.Fatalf("recent limit = %d, want %d", repo.lastLimit, RecentLimit)
	}
	if got.Total != 3 || got.AI != 1 || got.Human != 2 || len(got.RecentLogs) != 3 {
		t.Fatalf("unexpected summary %+v", got)
	}

	raw, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, field := range []string{"totalRequests", "aiDetected", "humanDetected", "recentLogs"} {
		if _, ok := body[field]; !ok {
			t.Fatalf("summary json missing %q: %s", field, raw)
		}
	}
}

func TestSummaryEmptyStore(t *testing.T) {
	svc := NewService(&stubLogRepo{})

	got, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if got.RecentLogs == nil || len(got.RecentLogs) != 0 {
		t.Fatalf("recentLogs = %v, want empty slice", got.RecentLogs)
	}
	raw, _ := json.Marshal(got)
	want := `{"totalRequests":0,"aiDetected":0,"humanDetected":0,"recentLogs":[]}`
	if string(raw) != want {
		t.Fatalf("json = %s, want %s", raw, want)
	}
}

func TestSummaryStoreFailure(t *testing.T) {
	svc := NewService(&stubLogRepo{err: stderrors.New("db down")})

	_, err := svc.Summary(context.Background())
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeDatabaseError {
		t.Fatalf("code = %s, want %s", appErr.Code, apperrors.CodeDatabaseError)
	}
}
