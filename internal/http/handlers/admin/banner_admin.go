package admin

import (
	"strings"
	"time"

	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/repository"
	"github.com/linkmart/internal/service"

	"github.com/gin-gonic/gin"
)

// BannerRequest 站点横幅请求
type BannerRequest struct {
	Title     string     `json:"title" binding:"required"`
	Subtitle  string     `json:"subtitle"`
	ImageURL  string     `json:"image_url" binding:"required"`
	LinkURL   string     `json:"link_url"`
	Placement string     `json:"placement"`
	IsActive  *bool      `json:"is_active"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}

func (r BannerRequest) toInput() service.BannerAdInput {
	return service.BannerAdInput{
		Title:     r.Title,
		Subtitle:  r.Subtitle,
		ImageURL:  r.ImageURL,
		LinkURL:   r.LinkURL,
		Placement: r.Placement,
		IsActive:  r.IsActive,
		StartsAt:  r.StartsAt,
		EndsAt:    r.EndsAt,
	}
}

// GetBanners 站点横幅列表
func (h *Handler) GetBanners(c *gin.Context) {
	page, pageSize := parsePagination(c)

	banners, total, err := h.BannerService.ListBanners(repository.BannerAdListFilter{
		Page:      page,
		PageSize:  pageSize,
		Placement: strings.TrimSpace(c.Query("placement")),
		IsActive:  parseQueryBoolPtr(c, "is_active"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch banners", err)
		return
	}
	response.SuccessWithPage(c, banners, response.BuildPagination(page, pageSize, total))
}

// CreateBanner 创建站点横幅
func (h *Handler) CreateBanner(c *gin.Context) {
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	banner, err := h.BannerService.CreateBanner(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, banner)
}

// UpdateBanner 更新站点横幅
func (h *Handler) UpdateBanner(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	banner, err := h.BannerService.UpdateBanner(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, banner)
}

// DeleteBanner 删除站点横幅
func (h *Handler) DeleteBanner(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.BannerService.DeleteBanner(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ProductBannerRequest 商品推广横幅请求
type ProductBannerRequest struct {
	ProductName  string     `json:"product_name" binding:"required"`
	ImageURL     string     `json:"image_url" binding:"required"`
	TargetURL    string     `json:"target_url"`
	Headline     string     `json:"headline"`
	PriceLabel   string     `json:"price_label"`
	ContactEmail string     `json:"contact_email"`
	IsActive     *bool      `json:"is_active"`
	IsPaid       *bool      `json:"is_paid"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

func (r ProductBannerRequest) toInput() service.ProductBannerAdInput {
	return service.ProductBannerAdInput{
		ProductName:  r.ProductName,
		ImageURL:     r.ImageURL,
		TargetURL:    r.TargetURL,
		Headline:     r.Headline,
		PriceLabel:   r.PriceLabel,
		ContactEmail: r.ContactEmail,
		IsActive:     r.IsActive,
		IsPaid:       r.IsPaid,
		ExpiresAt:    r.ExpiresAt,
	}
}

// GetProductBanners 商品推广横幅列表
func (h *Handler) GetProductBanners(c *gin.Context) {
	page, pageSize := parsePagination(c)

	banners, total, err := h.BannerService.ListProductBanners(repository.ProductBannerAdListFilter{
		Page:     page,
		PageSize: pageSize,
		IsActive: parseQueryBoolPtr(c, "is_active"),
		IsPaid:   parseQueryBoolPtr(c, "is_paid"),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch banners", err)
		return
	}
	response.SuccessWithPage(c, banners, response.BuildPagination(page, pageSize, total))
}

// CreateProductBanner 创建商品推广横幅
func (h *Handler) CreateProductBanner(c *gin.Context) {
	var req ProductBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	banner, err := h.BannerService.CreateProductBanner(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, banner)
}

// UpdateProductBanner 更新商品推广横幅
func (h *Handler) UpdateProductBanner(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ProductBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	banner, err := h.BannerService.UpdateProductBanner(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, banner)
}

// DeleteProductBanner 删除商品推广横幅
func (h *Handler) DeleteProductBanner(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.BannerService.DeleteProductBanner(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// MarkProductBannerPaidRequest 手动标记推广横幅已付费请求
type MarkProductBannerPaidRequest struct {
	DurationDays int `json:"duration_days" binding:"required"`
}

// MarkProductBannerPaid 手动标记推广横幅已付费并激活投放
func (h *Handler) MarkProductBannerPaid(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req MarkProductBannerPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.BannerService.MarkProductBannerPaid(id, time.Now(), req.DurationDays); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"paid": true})
}
