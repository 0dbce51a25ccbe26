// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"voice-detection-api/internal/domain/entity"
)

// APIKeyRepository API Key 仓储接口
// 查询不到时返回 nil, nil
type APIKeyRepository interface {
	// GetByKey 根据密钥字符串获取
	GetByKey(ctx context.Context, key string) (*entity.APIKey, error)

	// GetByID 根据 ID 获取
	GetByID(ctx context.Context, id uint) (*entity.APIKey, error)

	// Create 写入新 Key，ID 与 CreatedAt 由存储回填
	Create(ctx context.Context, key *entity.APIKey) error

	// SetActive 修改激活状态
	SetActive(ctx context.Context, id uint, active bool) error

	// List 分页列出，按创建时间倒序
	List(ctx context.Context, pagination Pagination) (*PagedResult[*entity.APIKey], error)
}
