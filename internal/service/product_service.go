package service

import (
	"strings"

	"github.com/linkmart/internal/constants"
	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/repository"
)

// ProductService 商品业务服务
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
}

// NewProductService 创建商品服务
func NewProductService(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
) *ProductService {
	return &ProductService{repo: repo, categoryRepo: categoryRepo, brandRepo: brandRepo}
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	CategoryID    uint
	SubcategoryID *uint
	BrandID       *uint
	Name          string
	Slug          string
	Description   string
	ShortDesc     string
	Price         models.Money
	OriginalPrice *models.Money
	PurchaseType  string
	AffiliateURL  string
	Condition     string
	StockQuantity *int
	SKU           string
	Images        []string
	MainImage     string
	IsActive      *bool
	IsFeatured    *bool
	IsBestseller  *bool
	SortOrder     int
}

// ProductSEOInput 商品 SEO 输入
type ProductSEOInput struct {
	MetaTitle       string
	MetaDescription string
	Keywords        []string
	CanonicalURL    string
	OGImage         string
	StructuredData  models.JSON
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.List(filter)
}

// Get 根据 ID 获取商品
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// GetBySlug 根据 slug 获取商品，上架校验由调用方决定
func (s *ProductService) GetBySlug(slug string, onlyActive bool) (*models.Product, error) {
	product, err := s.repo.GetBySlug(NormalizeSlug(slug))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if onlyActive && !product.IsActive {
		return nil, ErrNotFound
	}
	return product, nil
}

// RecordView 浏览数自增，失败不影响主流程
func (s *ProductService) RecordView(id uint) error {
	return s.repo.IncrementView(id)
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	slug := NormalizeSlug(input.Slug)
	if slug == "" {
		slug = SlugFromName(input.Name)
	}
	if slug == "" {
		return nil, ErrInvalidInput
	}
	count, err := s.repo.CountBySlug(slug, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	product := models.Product{
		CategoryID:    input.CategoryID,
		SubcategoryID: input.SubcategoryID,
		BrandID:       input.BrandID,
		Name:          strings.TrimSpace(input.Name),
		Slug:          slug,
		Description:   input.Description,
		ShortDesc:     input.ShortDesc,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		PurchaseType:  input.PurchaseType,
		AffiliateURL:  strings.TrimSpace(input.AffiliateURL),
		Condition:     input.Condition,
		StockQuantity: input.StockQuantity,
		SKU:           strings.TrimSpace(input.SKU),
		Images:        input.Images,
		MainImage:     strings.TrimSpace(input.MainImage),
		IsActive:      true,
		SortOrder:     input.SortOrder,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.IsBestseller != nil {
		product.IsBestseller = *input.IsBestseller
	}

	if err := s.repo.Create(&product); err != nil {
		return nil, translateSlugConflict(err)
	}
	return &product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	slug := NormalizeSlug(input.Slug)
	if slug == "" {
		slug = SlugFromName(input.Name)
	}
	count, err := s.repo.CountBySlug(slug, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	product.CategoryID = input.CategoryID
	product.SubcategoryID = input.SubcategoryID
	product.BrandID = input.BrandID
	product.Name = strings.TrimSpace(input.Name)
	product.Slug = slug
	product.Description = input.Description
	product.ShortDesc = input.ShortDesc
	product.Price = input.Price
	product.OriginalPrice = input.OriginalPrice
	product.PurchaseType = input.PurchaseType
	product.AffiliateURL = strings.TrimSpace(input.AffiliateURL)
	product.Condition = input.Condition
	product.StockQuantity = input.StockQuantity
	product.SKU = strings.TrimSpace(input.SKU)
	product.Images = input.Images
	product.MainImage = strings.TrimSpace(input.MainImage)
	product.SortOrder = input.SortOrder
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.IsBestseller != nil {
		product.IsBestseller = *input.IsBestseller
	}

	// Save 会连带写回预加载的关联，清空后再保存
	product.Category = nil
	product.Subcategory = nil
	product.Brand = nil
	product.SEO = nil

	if err := s.repo.Update(product); err != nil {
		return nil, translateSlugConflict(err)
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

// ResetSales 销量清零
func (s *ProductService) ResetSales(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	return s.repo.ResetSales(id)
}

// UpsertSEO 写入商品 SEO
func (s *ProductService) UpsertSEO(productID uint, input ProductSEOInput) (*models.ProductSEO, error) {
	product, err := s.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	seo := models.ProductSEO{
		ProductID:       productID,
		MetaTitle:       strings.TrimSpace(input.MetaTitle),
		MetaDescription: input.MetaDescription,
		Keywords:        input.Keywords,
		CanonicalURL:    strings.TrimSpace(input.CanonicalURL),
		OGImage:         strings.TrimSpace(input.OGImage),
		StructuredData:  input.StructuredData,
	}
	if err := s.repo.UpsertSEO(&seo); err != nil {
		return nil, err
	}
	return &seo, nil
}

// GetSEO 查询商品 SEO
func (s *ProductService) GetSEO(productID uint) (*models.ProductSEO, error) {
	seo, err := s.repo.GetSEOByProductID(productID)
	if err != nil {
		return nil, err
	}
	if seo == nil {
		return nil, ErrNotFound
	}
	return seo, nil
}

// validateInput 校验商品输入与分类一致性
func (s *ProductService) validateInput(input *ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrInvalidInput
	}
	if input.Price.IsNegative() {
		return ErrInvalidInput
	}

	switch input.PurchaseType {
	case "":
		input.PurchaseType = constants.PurchaseTypeAffiliate
	case constants.PurchaseTypeAffiliate, constants.PurchaseTypeDirect:
	default:
		return ErrInvalidInput
	}
	if input.PurchaseType == constants.PurchaseTypeAffiliate && strings.TrimSpace(input.AffiliateURL) == "" {
		return ErrInvalidInput
	}

	switch input.Condition {
	case "":
		input.Condition = constants.ProductConditionNew
	case constants.ProductConditionNew, constants.ProductConditionRefurbished, constants.ProductConditionUsed:
	default:
		return ErrInvalidInput
	}
	if input.StockQuantity != nil && *input.StockQuantity < 0 {
		return ErrInvalidInput
	}

	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil || !category.IsRoot() {
		return ErrNotFound
	}
	if input.SubcategoryID != nil {
		sub, err := s.categoryRepo.GetByID(*input.SubcategoryID)
		if err != nil {
			return err
		}
		if sub == nil {
			return ErrNotFound
		}
		if sub.ParentID == nil || *sub.ParentID != input.CategoryID {
			return ErrCategoryMismatch
		}
	}
	if input.BrandID != nil {
		brand, err := s.brandRepo.GetByID(*input.BrandID)
		if err != nil {
			return err
		}
		if brand == nil {
			return ErrNotFound
		}
	}
	return nil
}
