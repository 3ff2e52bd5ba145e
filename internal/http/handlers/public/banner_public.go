package public

import (
	"time"

	"github.com/linkmart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetLatestBanner 获取指定版位当前有效的最新站点横幅
// 没有命中时返回 data 为空，不视为错误。
func (h *Handler) GetLatestBanner(c *gin.Context) {
	placement := c.DefaultQuery("placement", "home")

	banner, err := h.BannerService.LatestBanner(placement, time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch banner", err)
		return
	}
	response.Success(c, banner)
}

// GetLatestProductBanner 获取当前有效的最新商品推广横幅
func (h *Handler) GetLatestProductBanner(c *gin.Context) {
	banner, err := h.BannerService.LatestProductBanner(time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch banner", err)
		return
	}
	response.Success(c, banner)
}

// ClickBanner 记录站点横幅点击
func (h *Handler) ClickBanner(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.BannerService.RecordBannerClick(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"clicked": true})
}

// ClickProductBanner 记录商品推广横幅点击
func (h *Handler) ClickProductBanner(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.BannerService.RecordProductBannerClick(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"clicked": true})
}
