package public

import (
	"time"

	"github.com/linkmart/internal/cache"
	"github.com/linkmart/internal/http/response"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// GetConfig 获取前台全局配置
// 仅暴露白名单内的站点设置，附带商店货币等运行配置。
func (h *Handler) GetConfig(c *gin.Context) {
	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	settings, err := h.SettingService.PublicConfig()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch config", err)
		return
	}

	data := make(map[string]interface{}, len(settings)+2)
	for key, value := range settings {
		data[key] = value
	}
	if h.Config != nil {
		data["currency"] = h.Config.Store.Currency
		data["shipping_flat_fee"] = h.Config.Store.ShippingFlatFee
	}

	_ = cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL)
	response.Success(c, data)
}

// GetPage 根据 slug 获取已发布的静态页面
func (h *Handler) GetPage(c *gin.Context) {
	page, err := h.PageService.GetBySlug(c.Param("slug"), true)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, page)
}
