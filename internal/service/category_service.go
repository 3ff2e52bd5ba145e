package service

import (
	"strings"

	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/repository"
)

// CategoryService 分类业务服务，维护两级分类树
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	ParentID  *uint
	Name      string
	Slug      string
	Icon      string
	Image     string
	SortOrder int
	IsActive  *bool
}

// ListTree 分类树：顶级分类带子分类与商品数
func (s *CategoryService) ListTree(onlyActive bool) ([]models.Category, error) {
	roots, err := s.repo.ListRoots(onlyActive)
	if err != nil {
		return nil, err
	}
	for i := range roots {
		children, err := s.repo.ListChildren(roots[i].ID, onlyActive)
		if err != nil {
			return nil, err
		}
		for j := range children {
			count, err := s.repo.CountProducts(children[j].ID)
			if err != nil {
				return nil, err
			}
			children[j].ProductCount = count
		}
		roots[i].Children = children
		count, err := s.repo.CountProducts(roots[i].ID)
		if err != nil {
			return nil, err
		}
		roots[i].ProductCount = count
	}
	return roots, nil
}

// ListSubcategories 子分类列表
func (s *CategoryService) ListSubcategories(parentID uint, onlyActive bool) ([]models.Category, error) {
	parent, err := s.repo.GetByID(parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil || !parent.IsRoot() {
		return nil, ErrNotFound
	}
	children, err := s.repo.ListChildren(parentID, onlyActive)
	if err != nil {
		return nil, err
	}
	for i := range children {
		count, err := s.repo.CountProducts(children[i].ID)
		if err != nil {
			return nil, err
		}
		children[i].ProductCount = count
	}
	return children, nil
}

// Get 根据 ID 获取分类
func (s *CategoryService) Get(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// GetBySlug 根据 slug 获取分类
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	category, err := s.repo.GetBySlug(NormalizeSlug(slug))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// Create 创建分类，子分类的父级必须是顶级分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
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

	if input.ParentID != nil {
		parent, err := s.repo.GetByID(*input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrNotFound
		}
		if !parent.IsRoot() {
			return nil, ErrParentInvalid
		}
	}

	count, err := s.repo.CountBySlug(slug, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	category := models.Category{
		ParentID:  input.ParentID,
		Name:      name,
		Slug:      slug,
		Icon:      strings.TrimSpace(input.Icon),
		Image:     strings.TrimSpace(input.Image),
		SortOrder: input.SortOrder,
		IsActive:  true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, translateSlugConflict(err)
	}
	return &category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
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

	// 父级变更：不允许把带子分类的顶级分类降级
	if input.ParentID != nil {
		if *input.ParentID == id {
			return nil, ErrParentInvalid
		}
		childCount, err := s.repo.CountChildren(id)
		if err != nil {
			return nil, err
		}
		if childCount > 0 {
			return nil, ErrParentInvalid
		}
		parent, err := s.repo.GetByID(*input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrNotFound
		}
		if !parent.IsRoot() {
			return nil, ErrParentInvalid
		}
	}

	count, err := s.repo.CountBySlug(slug, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	category.ParentID = input.ParentID
	category.Name = name
	category.Slug = slug
	category.Icon = strings.TrimSpace(input.Icon)
	category.Image = strings.TrimSpace(input.Image)
	category.SortOrder = input.SortOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.repo.Update(category); err != nil {
		return nil, translateSlugConflict(err)
	}
	return category, nil
}

// Delete 删除分类：仍有商品或子分类时拒绝
func (s *CategoryService) Delete(id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}

	productCount, err := s.repo.CountProducts(id)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return ErrCategoryInUse
	}

	childCount, err := s.repo.CountChildren(id)
	if err != nil {
		return err
	}
	if childCount > 0 {
		return ErrCategoryInUse
	}

	return s.repo.Delete(id)
}
