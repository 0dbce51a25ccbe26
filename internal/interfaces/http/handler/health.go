package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker 可做连通性检查的依赖
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	db      HealthChecker
	cache   HealthChecker
	events  HealthChecker
	version string
}

// NewHealthHandler 创建健康检查处理器
// cache 为 nil 表示未启用 Redis，events 为 nil 表示未启用 NATS
func NewHealthHandler(db, cache, events HealthChecker, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		cache:   cache,
		events:  events,
		version: version,
	}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latencyMs,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health 健康检查接口
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// Live 存活检查接口
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready 就绪检查接口：数据库必需，Redis 与 NATS 可选
// @Summary 就绪检查
// @Tags System
// @Produce json
// @Success 200 {object} readinessResponse
// @Failure 503 {object} readinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	ready := true
	checks := map[string]*readinessCheck{}

	// 数据库（必需）
	if h.db == nil {
		checks["database"] = &readinessCheck{Status: "missing", Error: "database client not configured"}
		ready = false
	} else {
		checks["database"] = runCheck(ctx, h.db, "error")
		if checks["database"].Status != "ok" {
			ready = false
		}
	}

	// Redis（可选，不影响就绪态）
	if h.cache == nil {
		checks["redis"] = &readinessCheck{Status: "disabled"}
	} else {
		checks["redis"] = runCheck(ctx, h.cache, "degraded")
	}

	// NATS（可选，事件发布失败不影响检测）
	if h.events == nil {
		checks["nats"] = &readinessCheck{Status: "disabled"}
	} else {
		checks["nats"] = runCheck(ctx, h.events, "degraded")
	}

	resp := readinessResponse{
		Status: "ok",
		Checks: checks,
	}
	if !ready {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func runCheck(ctx context.Context, checker HealthChecker, failStatus string) *readinessCheck {
	start := time.Now()
	err := checker.HealthCheck(ctx)
	check := &readinessCheck{
		Status:    "ok",
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		check.Status = failStatus
		check.Error = err.Error()
	}
	return check
}
