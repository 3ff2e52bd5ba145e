package service

import (
	"strings"
	"time"

	"github.com/linkmart/internal/metrics"
	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/repository"
)

// BannerService 横幅广告业务服务，覆盖站点横幅与付费商品推广横幅
type BannerService struct {
	bannerRepo  repository.BannerAdRepository
	productRepo repository.ProductBannerAdRepository
	metrics     *metrics.StoreMetrics
}

// NewBannerService 创建横幅服务
func NewBannerService(
	bannerRepo repository.BannerAdRepository,
	productRepo repository.ProductBannerAdRepository,
	m *metrics.StoreMetrics,
) *BannerService {
	return &BannerService{bannerRepo: bannerRepo, productRepo: productRepo, metrics: m}
}

// BannerAdInput 站点横幅输入
type BannerAdInput struct {
	Title     string
	Subtitle  string
	ImageURL  string
	LinkURL   string
	Placement string
	IsActive  *bool
	StartsAt  *time.Time
	EndsAt    *time.Time
}

// ProductBannerAdInput 商品推广横幅输入
type ProductBannerAdInput struct {
	ProductName  string
	ImageURL     string
	TargetURL    string
	Headline     string
	PriceLabel   string
	ContactEmail string
	IsActive     *bool
	IsPaid       *bool
	ExpiresAt    *time.Time
}

// ListBanners 站点横幅列表
func (s *BannerService) ListBanners(filter repository.BannerAdListFilter) ([]models.BannerAd, int64, error) {
	return s.bannerRepo.List(filter)
}

// LatestBanner 指定位置最新可投放横幅，无可投放时返回 nil 不报错
func (s *BannerService) LatestBanner(placement string, now time.Time) (*models.BannerAd, error) {
	return s.bannerRepo.LatestEligible(placement, now)
}

// GetBanner 根据 ID 获取站点横幅
func (s *BannerService) GetBanner(id uint) (*models.BannerAd, error) {
	banner, err := s.bannerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, ErrNotFound
	}
	return banner, nil
}

// CreateBanner 创建站点横幅
func (s *BannerService) CreateBanner(input BannerAdInput) (*models.BannerAd, error) {
	title := strings.TrimSpace(input.Title)
	imageURL := strings.TrimSpace(input.ImageURL)
	if title == "" || imageURL == "" {
		return nil, ErrInvalidInput
	}
	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		return nil, ErrInvalidInput
	}

	banner := models.BannerAd{
		Title:     title,
		Subtitle:  input.Subtitle,
		ImageURL:  imageURL,
		LinkURL:   strings.TrimSpace(input.LinkURL),
		Placement: strings.TrimSpace(input.Placement),
		IsActive:  true,
		StartsAt:  input.StartsAt,
		EndsAt:    input.EndsAt,
	}
	if banner.Placement == "" {
		banner.Placement = "home"
	}
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}
	if err := s.bannerRepo.Create(&banner); err != nil {
		return nil, err
	}
	return &banner, nil
}

// UpdateBanner 更新站点横幅
func (s *BannerService) UpdateBanner(id uint, input BannerAdInput) (*models.BannerAd, error) {
	banner, err := s.bannerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, ErrNotFound
	}

	title := strings.TrimSpace(input.Title)
	imageURL := strings.TrimSpace(input.ImageURL)
	if title == "" || imageURL == "" {
		return nil, ErrInvalidInput
	}
	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		return nil, ErrInvalidInput
	}

	banner.Title = title
	banner.Subtitle = input.Subtitle
	banner.ImageURL = imageURL
	banner.LinkURL = strings.TrimSpace(input.LinkURL)
	if placement := strings.TrimSpace(input.Placement); placement != "" {
		banner.Placement = placement
	}
	banner.StartsAt = input.StartsAt
	banner.EndsAt = input.EndsAt
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}
	if err := s.bannerRepo.Update(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// DeleteBanner 删除站点横幅
func (s *BannerService) DeleteBanner(id uint) error {
	banner, err := s.bannerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if banner == nil {
		return ErrNotFound
	}
	return s.bannerRepo.Delete(id)
}

// RecordBannerClick 站点横幅点击计数
func (s *BannerService) RecordBannerClick(id uint) error {
	banner, err := s.bannerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if banner == nil {
		return ErrNotFound
	}
	if err := s.bannerRepo.IncrementClick(id); err != nil {
		return err
	}
	s.metrics.RecordBannerClick("site")
	return nil
}

// ListProductBanners 商品推广横幅列表
func (s *BannerService) ListProductBanners(filter repository.ProductBannerAdListFilter) ([]models.ProductBannerAd, int64, error) {
	return s.productRepo.List(filter)
}

// LatestProductBanner 最新可投放推广横幅，无可投放时返回 nil 不报错
func (s *BannerService) LatestProductBanner(now time.Time) (*models.ProductBannerAd, error) {
	return s.productRepo.LatestEligible(now)
}

// GetProductBanner 根据 ID 获取推广横幅
func (s *BannerService) GetProductBanner(id uint) (*models.ProductBannerAd, error) {
	banner, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, ErrNotFound
	}
	return banner, nil
}

// CreateProductBanner 创建推广横幅，默认未付费待支付激活
func (s *BannerService) CreateProductBanner(input ProductBannerAdInput) (*models.ProductBannerAd, error) {
	name := strings.TrimSpace(input.ProductName)
	imageURL := strings.TrimSpace(input.ImageURL)
	targetURL := strings.TrimSpace(input.TargetURL)
	if name == "" || imageURL == "" || targetURL == "" {
		return nil, ErrInvalidInput
	}

	banner := models.ProductBannerAd{
		ProductName:  name,
		ImageURL:     imageURL,
		TargetURL:    targetURL,
		Headline:     input.Headline,
		PriceLabel:   strings.TrimSpace(input.PriceLabel),
		ContactEmail: strings.ToLower(strings.TrimSpace(input.ContactEmail)),
		IsActive:     true,
		ExpiresAt:    input.ExpiresAt,
	}
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}
	if input.IsPaid != nil {
		banner.IsPaid = *input.IsPaid
	}
	if err := s.productRepo.Create(&banner); err != nil {
		return nil, err
	}
	return &banner, nil
}

// UpdateProductBanner 更新推广横幅
func (s *BannerService) UpdateProductBanner(id uint, input ProductBannerAdInput) (*models.ProductBannerAd, error) {
	banner, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, ErrNotFound
	}

	name := strings.TrimSpace(input.ProductName)
	imageURL := strings.TrimSpace(input.ImageURL)
	targetURL := strings.TrimSpace(input.TargetURL)
	if name == "" || imageURL == "" || targetURL == "" {
		return nil, ErrInvalidInput
	}

	banner.ProductName = name
	banner.ImageURL = imageURL
	banner.TargetURL = targetURL
	banner.Headline = input.Headline
	banner.PriceLabel = strings.TrimSpace(input.PriceLabel)
	banner.ContactEmail = strings.ToLower(strings.TrimSpace(input.ContactEmail))
	banner.ExpiresAt = input.ExpiresAt
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}
	if input.IsPaid != nil {
		banner.IsPaid = *input.IsPaid
	}
	if err := s.productRepo.Update(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// DeleteProductBanner 删除推广横幅
func (s *BannerService) DeleteProductBanner(id uint) error {
	banner, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if banner == nil {
		return ErrNotFound
	}
	return s.productRepo.Delete(id)
}

// RecordProductBannerClick 推广横幅点击计数
func (s *BannerService) RecordProductBannerClick(id uint) error {
	banner, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if banner == nil {
		return ErrNotFound
	}
	if err := s.productRepo.IncrementClick(id); err != nil {
		return err
	}
	s.metrics.RecordBannerClick("product")
	return nil
}

// MarkProductBannerPaid 支付成功回调：标记已付费并设置到期时间
func (s *BannerService) MarkProductBannerPaid(id uint, paidAt time.Time, durationDays int) error {
	banner, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if banner == nil {
		return ErrNotFound
	}
	banner.IsPaid = true
	banner.IsActive = true
	if durationDays > 0 {
		expires := paidAt.AddDate(0, 0, durationDays)
		banner.ExpiresAt = &expires
	}
	return s.productRepo.Update(banner)
}

// DeactivateExpiredProductBanners 批量下线已到期的推广横幅
func (s *BannerService) DeactivateExpiredProductBanners(now time.Time) (int64, error) {
	return s.productRepo.DeactivateExpired(now)
}
