package service

import (
	"strings"

	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/repository"
)

// PageService 静态页面业务服务
type PageService struct {
	repo repository.PageRepository
}

// NewPageService 创建页面服务
func NewPageService(repo repository.PageRepository) *PageService {
	return &PageService{repo: repo}
}

// PageInput 创建/更新页面输入
type PageInput struct {
	Slug            string
	Title           string
	Content         string
	MetaTitle       string
	MetaDescription string
	IsPublished     *bool
}

// List 页面列表
func (s *PageService) List(filter repository.PageListFilter) ([]models.Page, int64, error) {
	return s.repo.List(filter)
}

// Get 根据 ID 获取页面
func (s *PageService) Get(id uint) (*models.Page, error) {
	page, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrNotFound
	}
	return page, nil
}

// GetBySlug 根据 slug 获取页面，onlyPublished 时未发布视为不存在
func (s *PageService) GetBySlug(slug string, onlyPublished bool) (*models.Page, error) {
	page, err := s.repo.GetBySlug(NormalizeSlug(slug))
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrNotFound
	}
	if onlyPublished && !page.IsPublished {
		return nil, ErrNotFound
	}
	return page, nil
}

// Create 创建页面
func (s *PageService) Create(input PageInput) (*models.Page, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalidInput
	}
	slug := NormalizeSlug(input.Slug)
	if slug == "" {
		slug = SlugFromName(title)
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

	page := models.Page{
		Slug:            slug,
		Title:           title,
		Content:         input.Content,
		MetaTitle:       strings.TrimSpace(input.MetaTitle),
		MetaDescription: input.MetaDescription,
		IsPublished:     true,
	}
	if input.IsPublished != nil {
		page.IsPublished = *input.IsPublished
	}
	if err := s.repo.Create(&page); err != nil {
		return nil, translateSlugConflict(err)
	}
	return &page, nil
}

// Update 更新页面
func (s *PageService) Update(id uint, input PageInput) (*models.Page, error) {
	page, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrNotFound
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalidInput
	}
	slug := NormalizeSlug(input.Slug)
	if slug == "" {
		slug = SlugFromName(title)
	}

	count, err := s.repo.CountBySlug(slug, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	page.Slug = slug
	page.Title = title
	page.Content = input.Content
	page.MetaTitle = strings.TrimSpace(input.MetaTitle)
	page.MetaDescription = input.MetaDescription
	if input.IsPublished != nil {
		page.IsPublished = *input.IsPublished
	}
	if err := s.repo.Update(page); err != nil {
		return nil, translateSlugConflict(err)
	}
	return page, nil
}

// Delete 删除页面
func (s *PageService) Delete(id uint) error {
	page, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if page == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
