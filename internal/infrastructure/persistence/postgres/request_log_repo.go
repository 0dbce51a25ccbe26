package postgres

import (
	"context"
	"fmt"

	"voice-detection-api/internal/domain/entity"
	"voice-detection-api/internal/domain/repository"
)

// RequestLogRepository 请求日志仓储实现
type RequestLogRepository struct {
	client *Client
}

// NewRequestLogRepository 创建请求日志仓储
func NewRequestLogRepository(client *Client) *RequestLogRepository {
	return &RequestLogRepository{client: client}
}

// Insert 写入一条日志
func (r *RequestLogRepository) Insert(ctx context.Context, log *entity.RequestLog) error {
	ctx, span := tracer.Start(ctx, "postgres.RequestLogRepository.Insert")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Omit("APIKey").Create(log).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to insert request log: %w", err)
	}
	return nil
}

// Recent 返回最近 n 条日志，最新在前
func (r *RequestLogRepository) Recent(ctx context.Context, n int) ([]*entity.RequestLog, error) {
	ctx, span := tracer.Start(ctx, "postgres.RequestLogRepository.Recent")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var logs []*entity.RequestLog
	if err := db.Order("id DESC").Limit(n).Find(&logs).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get recent request logs: %w", err)
	}
	return logs, nil
}

// CountsByClassification 按分类统计
func (r *RequestLogRepository) CountsByClassification(ctx context.Context) (*entity.ClassificationCounts, error) {
	ctx, span := tracer.Start(ctx, "postgres.RequestLogRepository.CountsByClassification")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var rows []struct {
		Classification entity.Classification
		Count          int64
	}
	if err := db.Model(&entity.RequestLog{}).
		Select("classification, COUNT(*) AS count").
		Group("classification").
		Scan(&rows).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count request logs: %w", err)
	}

	counts := &entity.ClassificationCounts{}
	for _, row := range rows {
		counts.Total += row.Count
		switch row.Classification {
		case entity.ClassificationAIGenerated:
			counts.AI = row.Count
		case entity.ClassificationHuman:
			counts.Human = row.Count
		}
	}
	return counts, nil
}

// List 分页列出，最新在前
func (r *RequestLogRepository) List(ctx context.Context, pagination repository.Pagination) (*repository.PagedResult[*entity.RequestLog], error) {
	ctx, span := tracer.Start(ctx, "postgres.RequestLogRepository.List")
	defer span.End()

	db := getDB(ctx, r.client.db)

	var total int64
	if err := db.Model(&entity.RequestLog{}).Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count request logs: %w", err)
	}

	var logs []*entity.RequestLog
	if err := db.Order("id DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&logs).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list request logs: %w", err)
	}

	return repository.NewPagedResult(logs, total, pagination), nil
}
