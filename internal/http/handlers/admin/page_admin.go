package admin

import (
	"strings"

	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/repository"
	"github.com/linkmart/internal/service"

	"github.com/gin-gonic/gin"
)

// PageRequest 静态页面请求
type PageRequest struct {
	Slug            string `json:"slug"`
	Title           string `json:"title" binding:"required"`
	Content         string `json:"content"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	IsPublished     *bool  `json:"is_published"`
}

func (r PageRequest) toInput() service.PageInput {
	return service.PageInput{
		Slug:            r.Slug,
		Title:           r.Title,
		Content:         r.Content,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
		IsPublished:     r.IsPublished,
	}
}

// GetPages 页面列表（含未发布）
func (h *Handler) GetPages(c *gin.Context) {
	page, pageSize := parsePagination(c)

	pages, total, err := h.PageService.List(repository.PageListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch pages", err)
		return
	}
	response.SuccessWithPage(c, pages, response.BuildPagination(page, pageSize, total))
}

// GetPage 页面详情
func (h *Handler) GetPage(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	page, err := h.PageService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, page)
}

// CreatePage 创建页面
func (h *Handler) CreatePage(c *gin.Context) {
	var req PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	page, err := h.PageService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, page)
}

// UpdatePage 更新页面
func (h *Handler) UpdatePage(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	page, err := h.PageService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, page)
}

// DeletePage 删除页面
func (h *Handler) DeletePage(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.PageService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
