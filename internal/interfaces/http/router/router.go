// Package router 提供 HTTP 路由配置
package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"voice-detection-api/internal/application/apikey"
	"voice-detection-api/internal/config"
	"voice-detection-api/internal/interfaces/http/handler"
	"voice-detection-api/internal/interfaces/http/middleware"
	"voice-detection-api/pkg/logger"
)

// Handlers 路由依赖的处理器集合
type Handlers struct {
	Health    *handler.HealthHandler
	Detection *handler.DetectionHandler
	Admin     *handler.AdminHandler
}

// Router HTTP 路由器
type Router struct {
	engine   *gin.Engine
	cfg      *config.Config
	handlers Handlers
	keys     *apikey.Service
}

// New 创建新的路由器
func New(cfg *config.Config, handlers Handlers, keys *apikey.Service) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// 未配置代理时使用连接对端地址作为 ClientIP
	if err := engine.SetTrustedProxies(cfg.Server.HTTP.TrustedProxies); err != nil {
		logger.Warn(context.Background(), "invalid trusted proxies, ignoring", "error", err.Error())
		_ = engine.SetTrustedProxies(nil)
	}

	r := &Router{
		engine:   engine,
		cfg:      cfg,
		handlers: handlers,
		keys:     keys,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))

	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name, middleware.DefaultAuditSkipPaths...))
		r.engine.Use(middleware.TraceContext())
	}

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics(r.cfg.Observability.Metrics.Path))
	}

	r.engine.Use(middleware.Audit(middleware.DefaultAuditSkipPaths...))
	r.engine.Use(middleware.BodyLimit(r.cfg.Server.HTTP.MaxBodyBytes))
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	if r.handlers.Health != nil {
		r.engine.GET("/health", r.handlers.Health.Health)
		r.engine.GET("/ready", r.handlers.Health.Ready)
		r.engine.GET("/live", r.handlers.Health.Live)
	}

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	if r.cfg.Security.AdminToken == "" {
		logger.Warn(context.Background(), "security.admin_token is empty, admin routes are unauthenticated")
	}

	RegisterAPIRoutes(
		r.engine.Group("/api"),
		r.handlers,
		middleware.APIKeyAuth(r.keys),
		middleware.AdminAuth(r.cfg.Security.AdminToken),
	)
}
