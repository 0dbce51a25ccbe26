// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"voice-detection-api/internal/domain/entity"
)

// RequestLogRepository 请求日志仓储接口，只追加
type RequestLogRepository interface {
	// Insert 写入一条日志，ID 与 Timestamp 由存储回填
	Insert(ctx context.Context, log *entity.RequestLog) error

	// Recent 返回最近 n 条日志，最新在前
	Recent(ctx context.Context, n int) ([]*entity.RequestLog, error)

	// CountsByClassification 按分类统计
	CountsByClassification(ctx context.Context) (*entity.ClassificationCounts, error)

	// List 分页列出，最新在前
	List(ctx context.Context, pagination Pagination) (*PagedResult[*entity.RequestLog], error)
}
