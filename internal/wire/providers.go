// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"voice-detection-api/internal/application/apikey"
	"voice-detection-api/internal/application/detection"
	"voice-detection-api/internal/config"
	"voice-detection-api/internal/domain/repository"
	"voice-detection-api/internal/infrastructure/messaging"
	"voice-detection-api/internal/infrastructure/persistence/postgres"
	"voice-detection-api/internal/infrastructure/persistence/redis"
	"voice-detection-api/internal/interfaces/http/handler"
	"voice-detection-api/internal/interfaces/http/router"
	"voice-detection-api/pkg/logger"
)

// App 应用依赖容器
type App struct {
	Router *router.Router
	Keys   *apikey.Service
}

// Bootstrap 初始化任务依赖容器（迁移 + 种子数据）
type Bootstrap struct {
	PgClient *postgres.Client
	Keys     *apikey.Service
}

// ProvidePostgresClient 提供关系库客户端，开启 auto_migrate 时同步表结构
func ProvidePostgresClient(ctx context.Context, cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	if cfg.Database.Postgres.AutoMigrate {
		if err := client.Migrate(ctx); err != nil {
			cleanup()
			return nil, nil, err
		}
	}
	return client, cleanup, nil
}

// ProvideRedisClientOptional 缓存与消息流均未启用时返回 nil
func ProvideRedisClientOptional(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled && !cfg.Messaging.RedisStream.Enabled {
		logger.Info(ctx, "redis disabled, api key cache and detection stream are off")
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideAPIKeyRepository 提供 API Key 仓储，启用缓存时包装 Read-Through 缓存
func ProvideAPIKeyRepository(cfg *config.Config, pg *postgres.Client, rc *redis.Client) repository.APIKeyRepository {
	base := postgres.NewAPIKeyRepository(pg)
	if rc == nil || !cfg.Cache.Redis.Enabled {
		return base
	}
	return redis.NewCachedAPIKeyRepository(base, redis.NewCache(rc), cfg.Cache.Redis.KeyTTL, cfg.Cache.Redis.KeyPrefix)
}

// ProvideRequestLogRepository 提供请求日志仓储
func ProvideRequestLogRepository(pg *postgres.Client) repository.RequestLogRepository {
	return postgres.NewRequestLogRepository(pg)
}

// ProvideNATSPublisherOptional 未启用 NATS 时返回 nil
func ProvideNATSPublisherOptional(ctx context.Context, cfg *config.Config) (*messaging.NATSPublisher, func(), error) {
	if !cfg.Messaging.NATS.Enabled {
		return nil, func() {}, nil
	}
	publisher, err := messaging.NewNATSPublisher(&cfg.Messaging.NATS)
	if err != nil {
		return nil, nil, err
	}
	logger.Info(ctx, "nats detection publisher connected", "subject", cfg.Messaging.NATS.Subject)
	cleanup := func() {
		_ = publisher.Close()
	}
	return publisher, cleanup, nil
}

// ProvideEventPublisher 组合已启用的事件后端，全部未启用时返回 nil
func ProvideEventPublisher(cfg *config.Config, rc *redis.Client, np *messaging.NATSPublisher) detection.EventPublisher {
	var publishers []detection.EventPublisher
	if rc != nil && cfg.Messaging.RedisStream.Enabled {
		stream := cfg.Messaging.RedisStream
		publishers = append(publishers, messaging.NewProducer(rc.Redis(), stream.Stream, int64(stream.MaxLen)))
	}
	if np != nil {
		publishers = append(publishers, np)
	}
	return messaging.Combine(publishers...)
}

// ProvideSeedConfig 提供演示 Key 配置
func ProvideSeedConfig(cfg *config.Config) apikey.SeedConfig {
	return apikey.SeedConfig{
		Enabled: cfg.Seed.Enabled,
		Key:     cfg.Seed.Key,
		Owner:   cfg.Seed.Owner,
	}
}

// ProvideHealthHandler 提供健康检查处理器
func ProvideHealthHandler(cfg *config.Config, pg *postgres.Client, rc *redis.Client, np *messaging.NATSPublisher) *handler.HealthHandler {
	// 未启用的依赖必须传入 nil 接口，而不是包含 nil 指针的接口
	var cache, events handler.HealthChecker
	if rc != nil {
		cache = rc
	}
	if np != nil {
		events = np
	}
	return handler.NewHealthHandler(pg, cache, events, cfg.App.Version)
}
