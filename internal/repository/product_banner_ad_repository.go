package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/linkmart/internal/models"

	"gorm.io/gorm"
)

// ProductBannerAdRepository 商品推广横幅数据访问接口
type ProductBannerAdRepository interface {
	List(filter ProductBannerAdListFilter) ([]models.ProductBannerAd, int64, error)
	LatestEligible(now time.Time) (*models.ProductBannerAd, error)
	GetByID(id uint) (*models.ProductBannerAd, error)
	Create(banner *models.ProductBannerAd) error
	Update(banner *models.ProductBannerAd) error
	Delete(id uint) error
	IncrementClick(id uint) error
	DeactivateExpired(now time.Time) (int64, error)
}

// GormProductBannerAdRepository GORM 实现
type GormProductBannerAdRepository struct {
	db *gorm.DB
}

// NewProductBannerAdRepository 创建商品推广横幅仓库
func NewProductBannerAdRepository(db *gorm.DB) *GormProductBannerAdRepository {
	return &GormProductBannerAdRepository{db: db}
}

// List 推广横幅列表
func (r *GormProductBannerAdRepository) List(filter ProductBannerAdListFilter) ([]models.ProductBannerAd, int64, error) {
	query := r.db.Model(&models.ProductBannerAd{})
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsPaid != nil {
		query = query.Where("is_paid = ?", *filter.IsPaid)
	}
	if filter.OnlyValid {
		now := time.Now()
		query = query.Where("is_active = ? AND is_paid = ?", true, true).
			Where("expires_at IS NULL OR expires_at >= ?", now)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("product_name LIKE ? OR headline LIKE ? OR contact_email LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query.Order("created_at DESC, id DESC"), filter.Page, filter.PageSize)
	var banners []models.ProductBannerAd
	if err := query.Find(&banners).Error; err != nil {
		return nil, 0, err
	}
	return banners, total, nil
}

// LatestEligible 返回最新的可投放推广横幅：已付费、启用且未到期
func (r *GormProductBannerAdRepository) LatestEligible(now time.Time) (*models.ProductBannerAd, error) {
	var banner models.ProductBannerAd
	err := r.db.Where("is_active = ? AND is_paid = ?", true, true).
		Where("expires_at IS NULL OR expires_at >= ?", now).
		Order("created_at DESC, id DESC").
		First(&banner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &banner, nil
}

// GetByID 根据 ID 获取推广横幅
func (r *GormProductBannerAdRepository) GetByID(id uint) (*models.ProductBannerAd, error) {
	var banner models.ProductBannerAd
	if err := r.db.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &banner, nil
}

// Create 创建推广横幅
func (r *GormProductBannerAdRepository) Create(banner *models.ProductBannerAd) error {
	return r.db.Create(banner).Error
}

// Update 更新推广横幅
func (r *GormProductBannerAdRepository) Update(banner *models.ProductBannerAd) error {
	return r.db.Save(banner).Error
}

// Delete 删除推广横幅
func (r *GormProductBannerAdRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductBannerAd{}, id).Error
}

// IncrementClick 点击数自增
func (r *GormProductBannerAdRepository) IncrementClick(id uint) error {
	return r.db.Model(&models.ProductBannerAd{}).Where("id = ?", id).
		UpdateColumn("click_count", gorm.Expr("click_count + 1")).Error
}

// DeactivateExpired 批量下线已到期横幅，返回影响行数
func (r *GormProductBannerAdRepository) DeactivateExpired(now time.Time) (int64, error) {
	result := r.db.Model(&models.ProductBannerAd{}).
		Where("is_active = ? AND expires_at IS NOT NULL AND expires_at < ?", true, now).
		UpdateColumn("is_active", false)
	return result.RowsAffected, result.Error
}
