package public

import (
	"strconv"
	"strings"

	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetCategories 获取分类树（仅启用的根分类及其子分类），带 slug 时返回单个分类
func (h *Handler) GetCategories(c *gin.Context) {
	if slug := strings.TrimSpace(c.Query("slug")); slug != "" {
		category, err := h.CategoryService.GetBySlug(slug)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		response.Success(c, category)
		return
	}

	categories, err := h.CategoryService.ListTree(true)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch categories", err)
		return
	}
	response.Success(c, categories)
}

// GetSubcategories 获取某个根分类下的子分类
func (h *Handler) GetSubcategories(c *gin.Context) {
	parentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	subcategories, err := h.CategoryService.ListSubcategories(parentID, true)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, subcategories)
}

// GetCategoryBySlug 根据 slug 获取分类
func (h *Handler) GetCategoryBySlug(c *gin.Context) {
	category, err := h.CategoryService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// GetBrands 获取启用的品牌列表
func (h *Handler) GetBrands(c *gin.Context) {
	brands, err := h.BrandService.List(true)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch brands", err)
		return
	}
	response.Success(c, brands)
}

// GetBrandBySlug 根据 slug 获取品牌
func (h *Handler) GetBrandBySlug(c *gin.Context) {
	brand, err := h.BrandService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, brand)
}

func parseQueryUint(c *gin.Context, name string) uint {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

func parseQueryBool(c *gin.Context, name string) bool {
	v, _ := strconv.ParseBool(c.Query(name))
	return v
}

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filter := repository.ProductListFilter{
		Page:           page,
		PageSize:       pageSize,
		CategoryID:     parseQueryUint(c, "category_id"),
		SubcategoryID:  parseQueryUint(c, "subcategory_id"),
		BrandID:        parseQueryUint(c, "brand_id"),
		Search:         strings.TrimSpace(c.Query("search")),
		Condition:      strings.TrimSpace(c.Query("condition")),
		PurchaseType:   strings.TrimSpace(c.Query("purchase_type")),
		MinPrice:       strings.TrimSpace(c.Query("min_price")),
		MaxPrice:       strings.TrimSpace(c.Query("max_price")),
		OnlyActive:     true,
		OnlyFeatured:   parseQueryBool(c, "featured"),
		OnlyBestseller: parseQueryBool(c, "bestseller"),
		InStockOnly:    parseQueryBool(c, "in_stock"),
		OrderBy:        strings.TrimSpace(c.Query("sort")),
		WithRelations:  true,
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch products", err)
		return
	}

	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetProductBySlug 根据 slug 获取商品详情，并记录一次浏览
func (h *Handler) GetProductBySlug(c *gin.Context) {
	product, err := h.ProductService.GetBySlug(c.Param("slug"), true)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// 浏览计数失败不影响详情返回
	_ = h.ProductService.RecordView(product.ID)

	response.Success(c, product)
}
