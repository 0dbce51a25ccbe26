package postgres

import (
	"context"
	"fmt"

	"voice-detection-api/internal/domain/entity"
	"voice-detection-api/pkg/logger"
)

// Migrate 创建或更新 api_keys 与 request_logs 表结构
func (c *Client) Migrate(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "postgres.Migrate")
	defer span.End()

	if err := getDB(ctx, c.db).AutoMigrate(&entity.APIKey{}, &entity.RequestLog{}); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	logger.Info(ctx, "database schema migrated", "driver", c.Driver())
	return nil
}
