package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"voice-detection-api/internal/domain/entity"
	"voice-detection-api/internal/domain/repository"
	"voice-detection-api/pkg/logger"
	"voice-detection-api/pkg/metrics"
)

const defaultKeyPrefix = "apikey:"

// errKeyAbsent 加载器未找到 Key，不写入缓存
var errKeyAbsent = errors.New("api key absent")

// CachedAPIKeyRepository 为 API Key 查询增加 Read-Through 缓存
// 只缓存存在的 Key；状态变更时用最新记录覆盖缓存
type CachedAPIKeyRepository struct {
	repository.APIKeyRepository

	cache  *Cache
	ttl    time.Duration
	prefix string
}

// NewCachedAPIKeyRepository 包装底层仓储
func NewCachedAPIKeyRepository(inner repository.APIKeyRepository, cache *Cache, ttl time.Duration, prefix string) *CachedAPIKeyRepository {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedAPIKeyRepository{
		APIKeyRepository: inner,
		cache:            cache,
		ttl:              ttl,
		prefix:           prefix,
	}
}

func (r *CachedAPIKeyRepository) cacheKey(key string) string {
	return r.prefix + key
}

// GetByKey 先查缓存，未命中时加载并回填；Redis 不可用时直接查库
func (r *CachedAPIKeyRepository) GetByKey(ctx context.Context, key string) (*entity.APIKey, error) {
	if key == "" {
		return nil, nil
	}

	raw, hit, err := r.cache.GetOrLoadSafe(ctx, r.cacheKey(key), r.ttl, func() (interface{}, error) {
		k, err := r.APIKeyRepository.GetByKey(ctx, key)
		if err != nil {
			return nil, err
		}
		if k == nil {
			return nil, errKeyAbsent
		}
		return k, nil
	})

	switch {
	case err == nil:
	case errors.Is(err, errKeyAbsent):
		metrics.APIKeyCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	case errors.Is(err, ErrCacheUnavailable):
		metrics.APIKeyCacheTotal.WithLabelValues("error").Inc()
		logger.Warn(ctx, "api key cache unavailable, falling back to database", "error", err.Error())
		return r.APIKeyRepository.GetByKey(ctx, key)
	default:
		return nil, err
	}

	if hit {
		metrics.APIKeyCacheTotal.WithLabelValues("hit").Inc()
	} else {
		metrics.APIKeyCacheTotal.WithLabelValues("miss").Inc()
	}

	var k entity.APIKey
	if err := json.Unmarshal(raw, &k); err != nil {
		logger.Warn(ctx, "corrupt api key cache entry, reloading", "error", err.Error())
		_ = r.cache.Delete(ctx, r.cacheKey(key))
		return r.APIKeyRepository.GetByKey(ctx, key)
	}
	return &k, nil
}

// SetActive 更新状态后用库中最新记录覆盖缓存
// 回填走 SETNX，并发读取无法用旧值覆盖这里写入的记录；覆盖失败时返回错误，
// 否则停用的 Key 可能在 TTL 内继续通过校验
func (r *CachedAPIKeyRepository) SetActive(ctx context.Context, id uint, active bool) error {
	if err := r.APIKeyRepository.SetActive(ctx, id, active); err != nil {
		return err
	}

	k, err := r.APIKeyRepository.GetByID(ctx, id)
	if err != nil || k == nil {
		return err
	}
	if err := r.cache.Set(ctx, r.cacheKey(k.Key), k, r.ttl); err != nil {
		logger.Error(ctx, "failed to refresh api key cache", err, "api_key_id", id)
		return fmt.Errorf("refresh api key cache: %w", err)
	}
	return nil
}
