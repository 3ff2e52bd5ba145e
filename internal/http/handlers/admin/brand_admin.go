package admin

import (
	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/service"

	"github.com/gin-gonic/gin"
)

// BrandRequest 品牌请求
type BrandRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Logo        string `json:"logo"`
	Description string `json:"description"`
	Website     string `json:"website"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

func (r BrandRequest) toInput() service.BrandInput {
	return service.BrandInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Logo:        r.Logo,
		Description: r.Description,
		Website:     r.Website,
		SortOrder:   r.SortOrder,
		IsActive:    r.IsActive,
	}
}

// GetBrands 品牌列表（含停用）
func (h *Handler) GetBrands(c *gin.Context) {
	brands, err := h.BrandService.List(false)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch brands", err)
		return
	}
	response.Success(c, brands)
}

// CreateBrand 创建品牌
func (h *Handler) CreateBrand(c *gin.Context) {
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	brand, err := h.BrandService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, brand)
}

// UpdateBrand 更新品牌
func (h *Handler) UpdateBrand(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	brand, err := h.BrandService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, brand)
}

// DeleteBrand 删除品牌，仍有商品引用时拒绝
func (h *Handler) DeleteBrand(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.BrandService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
