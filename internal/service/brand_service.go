package service

import (
	"strings"

	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/repository"
)

// BrandService 品牌业务服务
type BrandService struct {
	repo repository.BrandRepository
}

// NewBrandService 创建品牌服务
func NewBrandService(repo repository.BrandRepository) *BrandService {
	return &BrandService{repo: repo}
}

// BrandInput 创建/更新品牌输入
type BrandInput struct {
	Name        string
	Slug        string
	Logo        string
	Description string
	Website     string
	SortOrder   int
	IsActive    *bool
}

// List 品牌列表，带商品数
func (s *BrandService) List(onlyActive bool) ([]models.Brand, error) {
	brands, err := s.repo.List(onlyActive)
	if err != nil {
		return nil, err
	}
	for i := range brands {
		count, err := s.repo.CountProducts(brands[i].ID)
		if err != nil {
			return nil, err
		}
		brands[i].ProductCount = count
	}
	return brands, nil
}

// Get 根据 ID 获取品牌
func (s *BrandService) Get(id uint) (*models.Brand, error) {
	brand, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrNotFound
	}
	return brand, nil
}

// GetBySlug 根据 slug 获取品牌
func (s *BrandService) GetBySlug(slug string) (*models.Brand, error) {
	brand, err := s.repo.GetBySlug(NormalizeSlug(slug))
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrNotFound
	}
	return brand, nil
}

// Create 创建品牌
func (s *BrandService) Create(input BrandInput) (*models.Brand, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	slug := NormalizeSlug(input.Slug)
	if slug == "" {
		slug = SlugFromName(name)
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

	brand := models.Brand{
		Name:        name,
		Slug:        slug,
		Logo:        strings.TrimSpace(input.Logo),
		Description: input.Description,
		Website:     strings.TrimSpace(input.Website),
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}
	if input.IsActive != nil {
		brand.IsActive = *input.IsActive
	}
	if err := s.repo.Create(&brand); err != nil {
		return nil, translateSlugConflict(err)
	}
	return &brand, nil
}

// Update 更新品牌
func (s *BrandService) Update(id uint, input BrandInput) (*models.Brand, error) {
	brand, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrNotFound
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	slug := NormalizeSlug(input.Slug)
	if slug == "" {
		slug = SlugFromName(name)
	}

	count, err := s.repo.CountBySlug(slug, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	brand.Name = name
	brand.Slug = slug
	brand.Logo = strings.TrimSpace(input.Logo)
	brand.Description = input.Description
	brand.Website = strings.TrimSpace(input.Website)
	brand.SortOrder = input.SortOrder
	if input.IsActive != nil {
		brand.IsActive = *input.IsActive
	}

	if err := s.repo.Update(brand); err != nil {
		return nil, translateSlugConflict(err)
	}
	return brand, nil
}

// Delete 删除品牌：仍有商品时拒绝
func (s *BrandService) Delete(id uint) error {
	brand, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if brand == nil {
		return ErrNotFound
	}

	count, err := s.repo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrBrandInUse
	}
	return s.repo.Delete(id)
}
