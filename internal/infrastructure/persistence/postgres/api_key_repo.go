package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"voice-detection-api/internal/domain/entity"
	"voice-detection-api/internal/domain/repository"
)

// APIKeyRepository API Key 仓储实现
type APIKeyRepository struct {
	client *Client
}

// NewAPIKeyRepository 创建 API Key 仓储
func NewAPIKeyRepository(client *Client) *APIKeyRepository {
	return &APIKeyRepository{client: client}
}

// GetByKey 根据密钥字符串获取
func (r *APIKeyRepository) GetByKey(ctx context.Context, key string) (*entity.APIKey, error) {
	ctx, span := tracer.Start(ctx, "postgres.APIKeyRepository.GetByKey")
	defer span.End()

	if key == "" {
		return nil, nil
	}

	db := getDB(ctx, r.client.db)
	var k entity.APIKey
	if err := db.Where(clause.Eq{Column: "key", Value: key}).First(&k).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get api key: %w", err)
	}
	return &k, nil
}

// GetByID 根据 ID 获取
func (r *APIKeyRepository) GetByID(ctx context.Context, id uint) (*entity.APIKey, error) {
	ctx, span := tracer.Start(ctx, "postgres.APIKeyRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var k entity.APIKey
	if err := db.First(&k, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get api key by id: %w", err)
	}
	return &k, nil
}

// Create 写入新 Key
func (r *APIKeyRepository) Create(ctx context.Context, key *entity.APIKey) error {
	ctx, span := tracer.Start(ctx, "postgres.APIKeyRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(key).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create api key: %w", err)
	}
	return nil
}

// SetActive 修改激活状态
func (r *APIKeyRepository) SetActive(ctx context.Context, id uint, active bool) error {
	ctx, span := tracer.Start(ctx, "postgres.APIKeyRepository.SetActive")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.APIKey{}).Where("id = ?", id).Update("is_active", active).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update api key status: %w", err)
	}
	return nil
}

// List 分页列出
func (r *APIKeyRepository) List(ctx context.Context, pagination repository.Pagination) (*repository.PagedResult[*entity.APIKey], error) {
	ctx, span := tracer.Start(ctx, "postgres.APIKeyRepository.List")
	defer span.End()

	db := getDB(ctx, r.client.db)

	var total int64
	if err := db.Model(&entity.APIKey{}).Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count api keys: %w", err)
	}

	var keys []*entity.APIKey
	if err := db.Order("created_at DESC, id DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&keys).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}

	return repository.NewPagedResult(keys, total, pagination), nil
}
