// Package stats 提供管理端聚合统计
package stats

import (
	"context"

	"voice-detection-api/internal/domain/entity"
	"voice-detection-api/internal/domain/repository"
	apperrors "voice-detection-api/pkg/errors"
)

// RecentLimit 统计接口返回的最近日志条数
const RecentLimit = 10

// Summary 检测统计概览
type Summary struct {
	entity.ClassificationCounts
	RecentLogs []*entity.RequestLog `json:"recentLogs"`
}

// Service 统计服务
type Service struct {
	logs repository.RequestLogRepository
}

// NewService 创建统计服务
func NewService(logs repository.RequestLogRepository) *Service {
	return &Service{logs: logs}
}

// Summary 汇总分类计数与最近日志
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	counts, err := s.logs.CountsByClassification(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to count request logs")
	}

	recent, err := s.logs.Recent(ctx, RecentLimit)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to fetch recent logs")
	}
	if recent == nil {
		recent = []*entity.RequestLog{}
	}

	return &Summary{
		ClassificationCounts: *counts,
		RecentLogs:           recent,
	}, nil
}

// Logs 分页浏览请求日志
func (s *Service) Logs(ctx context.Context, pagination repository.Pagination) (*repository.PagedResult[*entity.RequestLog], error) {
	result, err := s.logs.List(ctx, pagination)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list request logs")
	}
	return result, nil
}
