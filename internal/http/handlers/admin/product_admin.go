package admin

import (
	"strings"

	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/repository"
	"github.com/linkmart/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 商品请求
type ProductRequest struct {
	CategoryID    uint     `json:"category_id" binding:"required"`
	SubcategoryID *uint    `json:"subcategory_id"`
	BrandID       *uint    `json:"brand_id"`
	Name          string   `json:"name" binding:"required"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	ShortDesc     string   `json:"short_desc"`
	Price         string   `json:"price" binding:"required"`
	OriginalPrice *string  `json:"original_price"`
	PurchaseType  string   `json:"purchase_type"`
	AffiliateURL  string   `json:"affiliate_url"`
	Condition     string   `json:"condition"`
	StockQuantity *int     `json:"stock_quantity"`
	SKU           string   `json:"sku"`
	Images        []string `json:"images"`
	MainImage     string   `json:"main_image"`
	IsActive      *bool    `json:"is_active"`
	IsFeatured    *bool    `json:"is_featured"`
	IsBestseller  *bool    `json:"is_bestseller"`
	SortOrder     int      `json:"sort_order"`
}

func (r ProductRequest) toInput() (service.ProductInput, error) {
	price, err := models.NewMoneyFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return service.ProductInput{}, err
	}
	input := service.ProductInput{
		CategoryID:    r.CategoryID,
		SubcategoryID: r.SubcategoryID,
		BrandID:       r.BrandID,
		Name:          r.Name,
		Slug:          r.Slug,
		Description:   r.Description,
		ShortDesc:     r.ShortDesc,
		Price:         price,
		PurchaseType:  r.PurchaseType,
		AffiliateURL:  r.AffiliateURL,
		Condition:     r.Condition,
		StockQuantity: r.StockQuantity,
		SKU:           r.SKU,
		Images:        r.Images,
		MainImage:     r.MainImage,
		IsActive:      r.IsActive,
		IsFeatured:    r.IsFeatured,
		IsBestseller:  r.IsBestseller,
		SortOrder:     r.SortOrder,
	}
	if r.OriginalPrice != nil {
		original, err := models.NewMoneyFromString(strings.TrimSpace(*r.OriginalPrice))
		if err != nil {
			return service.ProductInput{}, err
		}
		input.OriginalPrice = &original
	}
	return input, nil
}

// GetProducts 商品列表（含下架）
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filter := repository.ProductListFilter{
		Page:          page,
		PageSize:      pageSize,
		Search:        strings.TrimSpace(c.Query("search")),
		Condition:     strings.TrimSpace(c.Query("condition")),
		PurchaseType:  strings.TrimSpace(c.Query("purchase_type")),
		OrderBy:       strings.TrimSpace(c.Query("sort")),
		WithRelations: true,
	}
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		filter.CategoryID = parseQueryUint(raw)
	}
	if raw := strings.TrimSpace(c.Query("brand_id")); raw != "" {
		filter.BrandID = parseQueryUint(raw)
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch products", err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid price", err)
		return
	}
	product, err := h.ProductService.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid price", err)
		return
	}
	product, err := h.ProductService.Update(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ResetProductSales 清零商品销量
func (h *Handler) ResetProductSales(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.ResetSales(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"reset": true})
}

// ProductSEORequest 商品 SEO 请求
type ProductSEORequest struct {
	MetaTitle       string      `json:"meta_title"`
	MetaDescription string      `json:"meta_description"`
	Keywords        []string    `json:"keywords"`
	CanonicalURL    string      `json:"canonical_url"`
	OGImage         string      `json:"og_image"`
	StructuredData  models.JSON `json:"structured_data"`
}

// UpsertProductSEO 写入或更新商品 SEO
func (h *Handler) UpsertProductSEO(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ProductSEORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	seo, err := h.ProductService.UpsertSEO(id, service.ProductSEOInput{
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		Keywords:        req.Keywords,
		CanonicalURL:    req.CanonicalURL,
		OGImage:         req.OGImage,
		StructuredData:  req.StructuredData,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, seo)
}

// GetProductSEO 获取商品 SEO
func (h *Handler) GetProductSEO(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	seo, err := h.ProductService.GetSEO(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, seo)
}
