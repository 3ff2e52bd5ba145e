package admin

import (
	"strings"

	"github.com/linkmart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetSettings 全部站点设置
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.SettingService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch settings", err)
		return
	}
	response.Success(c, settings)
}

// UpsertSettingRequest 设置写入请求
type UpsertSettingRequest struct {
	Key         string `json:"key" binding:"required"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// UpsertSetting 写入或更新单条设置
func (h *Handler) UpsertSetting(c *gin.Context) {
	var req UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	setting, err := h.SettingService.Upsert(strings.TrimSpace(req.Key), req.Value, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, setting)
}

// UpsertSettingsRequest 批量设置写入请求
type UpsertSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}

// UpsertSettings 批量写入设置
func (h *Handler) UpsertSettings(c *gin.Context) {
	var req UpsertSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.SettingService.UpsertMany(req.Settings); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"saved": true})
}

// DeleteSetting 删除设置
func (h *Handler) DeleteSetting(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		respondError(c, response.CodeBadRequest, "invalid key", nil)
		return
	}
	if err := h.SettingService.Delete(key); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
