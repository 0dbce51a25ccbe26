// Package apikey 提供 API Key 的校验与管理
package apikey

import (
	"context"
	"strings"

	"voice-detection-api/internal/domain/entity"
	"voice-detection-api/internal/domain/repository"
	apperrors "voice-detection-api/pkg/errors"
	"voice-detection-api/pkg/logger"
	"voice-detection-api/pkg/metrics"
)

// SeedConfig 启动时写入的演示 Key
type SeedConfig struct {
	Enabled bool
	Key     string
	Owner   string
}

// Service API Key 服务
type Service struct {
	repo repository.APIKeyRepository
	seed SeedConfig
}

// NewService 创建 API Key 服务
func NewService(repo repository.APIKeyRepository, seed SeedConfig) *Service {
	return &Service{repo: repo, seed: seed}
}

// Validate 校验调用方提供的密钥，返回对应的激活 Key；密钥按原样精确匹配
func (s *Service) Validate(ctx context.Context, key string) (*entity.APIKey, error) {
	if key == "" {
		metrics.AuthFailuresTotal.WithLabelValues("missing").Inc()
		return nil, apperrors.ErrAPIKeyMissing
	}

	k, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("error").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to look up api key")
	}
	if k == nil {
		metrics.AuthFailuresTotal.WithLabelValues("unknown").Inc()
		return nil, apperrors.ErrAPIKeyInvalid
	}
	if !k.IsActive {
		metrics.AuthFailuresTotal.WithLabelValues("inactive").Inc()
		return nil, apperrors.ErrAPIKeyInactive
	}
	return k, nil
}

// Create 为 owner 生成新的激活 Key
func (s *Service) Create(ctx context.Context, owner string) (*entity.APIKey, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, apperrors.ErrInvalidParam.WithDetail("Owner is required")
	}

	k := entity.NewAPIKey(owner)
	if err := s.repo.Create(ctx, k); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create api key")
	}

	logger.Info(ctx, "api key created", "api_key_id", k.ID, "owner", k.Owner, "key", k.Masked())
	return k, nil
}

// Get 根据 ID 获取 Key
func (s *Service) Get(ctx context.Context, id uint) (*entity.APIKey, error) {
	k, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to get api key")
	}
	if k == nil {
		return nil, apperrors.ErrAPIKeyNotFound
	}
	return k, nil
}

// Activate 重新启用 Key
func (s *Service) Activate(ctx context.Context, id uint) (*entity.APIKey, error) {
	return s.setActive(ctx, id, true)
}

// Deactivate 停用 Key，之后的检测请求返回 401
func (s *Service) Deactivate(ctx context.Context, id uint) (*entity.APIKey, error) {
	return s.setActive(ctx, id, false)
}

func (s *Service) setActive(ctx context.Context, id uint, active bool) (*entity.APIKey, error) {
	k, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// 状态未变也写一次，让缓存层有机会用最新记录覆盖
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update api key")
	}
	changed := k.IsActive != active
	k.IsActive = active

	logger.Info(ctx, "api key status set", "api_key_id", id, "active", active, "changed", changed)
	return k, nil
}

// List 分页列出全部 Key
func (s *Service) List(ctx context.Context, pagination repository.Pagination) (*repository.PagedResult[*entity.APIKey], error) {
	result, err := s.repo.List(ctx, pagination)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list api keys")
	}
	return result, nil
}

// EnsureSeedKey 演示 Key 不存在时写入，已存在则保持原状
func (s *Service) EnsureSeedKey(ctx context.Context) error {
	if !s.seed.Enabled {
		return nil
	}

	existing, err := s.repo.GetByKey(ctx, s.seed.Key)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to look up seed key")
	}
	if existing != nil {
		logger.Debug(ctx, "seed api key already present", "api_key_id", existing.ID)
		return nil
	}

	k := &entity.APIKey{
		Key:      s.seed.Key,
		Owner:    s.seed.Owner,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, k); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create seed key")
	}

	logger.Info(ctx, "seed api key created", "api_key_id", k.ID, "owner", k.Owner)
	return nil
}
