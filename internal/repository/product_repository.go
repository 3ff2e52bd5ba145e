package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/linkmart/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID uint) (int64, error)
	IncrementView(id uint) error
	DecrementStock(id uint, qty int) (bool, error)
	IncrementSales(id uint, qty int) error
	ResetSales(id uint) error
	UpsertSEO(seo *models.ProductSEO) error
	GetSEOByProductID(productID uint) (*models.ProductSEO, error)
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// List 商品列表，返回记录与总数
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})

	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.OnlyFeatured {
		query = query.Where("is_featured = ?", true)
	}
	if filter.OnlyBestseller {
		query = query.Where("is_bestseller = ?", true)
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.SubcategoryID > 0 {
		query = query.Where("subcategory_id = ?", filter.SubcategoryID)
	}
	if filter.BrandID > 0 {
		query = query.Where("brand_id = ?", filter.BrandID)
	}
	if filter.Condition != "" {
		query = query.Where("condition = ?", filter.Condition)
	}
	if filter.PurchaseType != "" {
		query = query.Where("purchase_type = ?", filter.PurchaseType)
	}
	if filter.MinPrice != "" {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != "" {
		query = query.Where("price <= ?", filter.MaxPrice)
	}
	if filter.InStockOnly {
		query = query.Where("stock_quantity IS NULL OR stock_quantity > 0")
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ? OR sku LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(productOrderClause(filter.OrderBy))
	query = applyPagination(query, filter.Page, filter.PageSize)
	if filter.WithRelations {
		query = query.Preload("Category").Preload("Subcategory").Preload("Brand")
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func productOrderClause(orderBy string) string {
	switch orderBy {
	case "price_asc":
		return "price ASC, id DESC"
	case "price_desc":
		return "price DESC, id DESC"
	case "newest":
		return "created_at DESC, id DESC"
	case "rating":
		return "rating DESC, review_count DESC, id DESC"
	case "best_selling":
		return "sales_count DESC, id DESC"
	default:
		return "sort_order ASC, created_at DESC, id DESC"
	}
}

// GetByID 根据 ID 获取商品，附带关联与 SEO
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").Preload("Subcategory").Preload("Brand").Preload("SEO").
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySlug 根据 slug 获取商品，附带关联与 SEO
func (r *GormProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").Preload("Subcategory").Preload("Brand").Preload("SEO").
		Where("slug = ?", slug).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 删除商品
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// CountBySlug 统计 slug 数量
func (r *GormProductRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IncrementView 浏览数自增
func (r *GormProductRepository) IncrementView(id uint) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// DecrementStock 条件扣减库存，库存不足时返回 false
// 不追踪库存（stock_quantity IS NULL）的商品直接视为成功
func (r *GormProductRepository) DecrementStock(id uint, qty int) (bool, error) {
	if qty <= 0 {
		return false, fmt.Errorf("invalid quantity %d", qty)
	}
	var product models.Product
	if err := r.db.Select("id", "stock_quantity").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if product.StockQuantity == nil {
		return true, nil
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, qty).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IncrementSales 销量自增
func (r *GormProductRepository) IncrementSales(id uint, qty int) error {
	if qty <= 0 {
		return nil
	}
	return r.db.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("sales_count", gorm.Expr("sales_count + ?", qty)).Error
}

// ResetSales 销量清零
func (r *GormProductRepository) ResetSales(id uint) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("sales_count", 0).Error
}

// UpsertSEO 写入商品 SEO，存在则整体覆盖
func (r *GormProductRepository) UpsertSEO(seo *models.ProductSEO) error {
	if seo == nil || seo.ProductID == 0 {
		return fmt.Errorf("seo payload requires product id")
	}
	var existing models.ProductSEO
	err := r.db.Where("product_id = ?", seo.ProductID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.Create(seo).Error
		}
		return err
	}
	seo.ID = existing.ID
	seo.CreatedAt = existing.CreatedAt
	return r.db.Save(seo).Error
}

// GetSEOByProductID 查询商品 SEO
func (r *GormProductRepository) GetSEOByProductID(productID uint) (*models.ProductSEO, error) {
	var seo models.ProductSEO
	if err := r.db.Where("product_id = ?", productID).First(&seo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &seo, nil
}
