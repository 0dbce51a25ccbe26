//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"voice-detection-api/internal/application/apikey"
	"voice-detection-api/internal/application/detection"
	"voice-detection-api/internal/application/stats"
	"voice-detection-api/internal/config"
	"voice-detection-api/internal/domain/repository"
	"voice-detection-api/internal/infrastructure/persistence/postgres"
	"voice-detection-api/internal/interfaces/http/handler"
	"voice-detection-api/internal/interfaces/http/router"
)

// DataSet 数据层集合
var DataSet = wire.NewSet(
	ProvidePostgresClient,
	ProvideRedisClientOptional,
	ProvideNATSPublisherOptional,
	ProvideAPIKeyRepository,
	ProvideRequestLogRepository,
	ProvideEventPublisher,
)

// ServiceSet 应用服务集合
var ServiceSet = wire.NewSet(
	ProvideSeedConfig,
	apikey.NewService,
	detection.NewService,
	stats.NewService,
)

// HTTPSet HTTP 层集合
var HTTPSet = wire.NewSet(
	ProvideHealthHandler,
	handler.NewDetectionHandler,
	handler.NewAdminHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	wire.Build(
		DataSet,
		ServiceSet,
		HTTPSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}

// InitializeBootstrap 仅初始化关系库与 API Key 服务（用于 bootstrap）
func InitializeBootstrap(ctx context.Context, cfg *config.Config) (*Bootstrap, func(), error) {
	wire.Build(
		ProvidePostgresClient,
		postgres.NewAPIKeyRepository,
		wire.Bind(new(repository.APIKeyRepository), new(*postgres.APIKeyRepository)),
		ProvideSeedConfig,
		apikey.NewService,
		wire.Struct(new(Bootstrap), "*"),
	)
	return nil, nil, nil
}
