package repository

import (
	"errors"
	"time"

	"github.com/linkmart/internal/models"

	"gorm.io/gorm"
)

// BannerAdRepository 站点横幅数据访问接口
type BannerAdRepository interface {
	List(filter BannerAdListFilter) ([]models.BannerAd, int64, error)
	LatestEligible(placement string, now time.Time) (*models.BannerAd, error)
	GetByID(id uint) (*models.BannerAd, error)
	Create(banner *models.BannerAd) error
	Update(banner *models.BannerAd) error
	Delete(id uint) error
	IncrementClick(id uint) error
}

// GormBannerAdRepository GORM 实现
type GormBannerAdRepository struct {
	db *gorm.DB
}

// NewBannerAdRepository 创建站点横幅仓库
func NewBannerAdRepository(db *gorm.DB) *GormBannerAdRepository {
	return &GormBannerAdRepository{db: db}
}

// List 横幅列表
func (r *GormBannerAdRepository) List(filter BannerAdListFilter) ([]models.BannerAd, int64, error) {
	query := r.db.Model(&models.BannerAd{})
	if filter.Placement != "" {
		query = query.Where("placement = ?", filter.Placement)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.OnlyValid {
		now := time.Now()
		query = query.Where("is_active = ?", true).
			Where("starts_at IS NULL OR starts_at <= ?", now).
			Where("ends_at IS NULL OR ends_at >= ?", now)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query.Order("created_at DESC, id DESC"), filter.Page, filter.PageSize)
	var banners []models.BannerAd
	if err := query.Find(&banners).Error; err != nil {
		return nil, 0, err
	}
	return banners, total, nil
}

// LatestEligible 返回指定位置最新的可投放横幅，无则返回 nil
func (r *GormBannerAdRepository) LatestEligible(placement string, now time.Time) (*models.BannerAd, error) {
	var banner models.BannerAd
	query := r.db.Where("is_active = ?", true).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now)
	if placement != "" {
		query = query.Where("placement = ?", placement)
	}
	err := query.Order("created_at DESC, id DESC").First(&banner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &banner, nil
}

// GetByID 根据 ID 获取横幅
func (r *GormBannerAdRepository) GetByID(id uint) (*models.BannerAd, error) {
	var banner models.BannerAd
	if err := r.db.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &banner, nil
}

// Create 创建横幅
func (r *GormBannerAdRepository) Create(banner *models.BannerAd) error {
	return r.db.Create(banner).Error
}

// Update 更新横幅
func (r *GormBannerAdRepository) Update(banner *models.BannerAd) error {
	return r.db.Save(banner).Error
}

// Delete 删除横幅
func (r *GormBannerAdRepository) Delete(id uint) error {
	return r.db.Delete(&models.BannerAd{}, id).Error
}

// IncrementClick 点击数自增
func (r *GormBannerAdRepository) IncrementClick(id uint) error {
	return r.db.Model(&models.BannerAd{}).Where("id = ?", id).
		UpdateColumn("click_count", gorm.Expr("click_count + 1")).Error
}
