package admin

import (
	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类请求
type CategoryRequest struct {
	ParentID  *uint  `json:"parent_id"`
	Name      string `json:"name" binding:"required"`
	Slug      string `json:"slug"`
	Icon      string `json:"icon"`
	Image     string `json:"image"`
	SortOrder int    `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{
		ParentID:  r.ParentID,
		Name:      r.Name,
		Slug:      r.Slug,
		Icon:      r.Icon,
		Image:     r.Image,
		SortOrder: r.SortOrder,
		IsActive:  r.IsActive,
	}
}

// GetCategories 分类树（含停用）
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListTree(false)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch categories", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类或子分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	category, err := h.CategoryService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	category, err := h.CategoryService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类，有子分类或商品时拒绝
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
