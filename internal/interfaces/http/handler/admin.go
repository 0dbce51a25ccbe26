package handler

import (
	"github.com/gin-gonic/gin"

	"voice-detection-api/internal/application/apikey"
	"voice-detection-api/internal/application/stats"
	"voice-detection-api/internal/interfaces/http/dto"
)

const (
	messageCreateKeyFailed  = "Failed to create key"
	messageFetchStatsFailed = "Failed to fetch stats"
	messageListKeysFailed   = "Failed to list keys"
	messageUpdateKeyFailed  = "Failed to update key"
	messageListLogsFailed   = "Failed to list logs"
)

// AdminHandler 管理接口处理器
type AdminHandler struct {
	keys  *apikey.Service
	stats *stats.Service
}

// NewAdminHandler 创建管理接口处理器
func NewAdminHandler(keys *apikey.Service, statsSvc *stats.Service) *AdminHandler {
	return &AdminHandler{
		keys:  keys,
		stats: statsSvc,
	}
}

// GenerateKey 为 owner 生成新的 API Key
// @Summary 生成 API Key
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body dto.GenerateKeyRequest true "所有者"
// @Success 201 {object} entity.APIKey
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/generate-key [post]
func (h *AdminHandler) GenerateKey(c *gin.Context) {
	var req dto.GenerateKeyRequest
	if !bindJSON(c, &req) {
		return
	}

	key, err := h.keys.Create(c.Request.Context(), req.Owner)
	if err != nil {
		respondError(c, err, messageCreateKeyFailed)
		return
	}

	dto.Created(c, key)
}

// Stats 返回检测统计与最近 10 条日志
// @Summary 检测统计
// @Tags Admin
// @Produce json
// @Success 200 {object} stats.Summary
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	summary, err := h.stats.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err, messageFetchStatsFailed)
		return
	}

	dto.Success(c, summary)
}

// ListKeys 分页列出 API Key
// @Summary API Key 列表
// @Tags Admin
// @Produce json
// @Param page query int false "页码"
// @Param pageSize query int false "每页条数"
// @Router /api/admin/keys [get]
func (h *AdminHandler) ListKeys(c *gin.Context) {
	result, err := h.keys.List(c.Request.Context(), dto.BindPage(c))
	if err != nil {
		respondError(c, err, messageListKeysFailed)
		return
	}

	dto.Success(c, result)
}

// ActivateKey 启用 API Key
// @Router /api/admin/keys/{id}/activate [post]
func (h *AdminHandler) ActivateKey(c *gin.Context) {
	h.setKeyActive(c, true)
}

// DeactivateKey 停用 API Key
// @Router /api/admin/keys/{id}/deactivate [post]
func (h *AdminHandler) DeactivateKey(c *gin.Context) {
	h.setKeyActive(c, false)
}

func (h *AdminHandler) setKeyActive(c *gin.Context, active bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		dto.BadRequest(c, "Invalid id")
		return
	}

	ctx := c.Request.Context()
	update := h.keys.Deactivate
	if active {
		update = h.keys.Activate
	}

	key, err := update(ctx, req.ID)
	if err != nil {
		respondError(c, err, messageUpdateKeyFailed)
		return
	}

	dto.Success(c, key)
}

// ListLogs 分页浏览请求日志，最新在前
// @Summary 请求日志
// @Tags Admin
// @Produce json
// @Param page query int false "页码"
// @Param pageSize query int false "每页条数"
// @Router /api/admin/logs [get]
func (h *AdminHandler) ListLogs(c *gin.Context) {
	result, err := h.stats.Logs(c.Request.Context(), dto.BindPage(c))
	if err != nil {
		respondError(c, err, messageListLogsFailed)
		return
	}

	dto.Success(c, result)
}
