package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/linkmart/internal/models"

	"gorm.io/gorm"
)

// ContactRepository 联系留言数据访问接口
type ContactRepository interface {
	Create(message *models.ContactMessage) error
	GetByID(id uint) (*models.ContactMessage, error)
	List(filter ContactListFilter) ([]models.ContactMessage, int64, error)
	MarkReplied(id uint, now time.Time) error
	Delete(id uint) error
}

// GormContactRepository GORM 实现
type GormContactRepository struct {
	db *gorm.DB
}

// NewContactRepository 创建联系留言仓库
func NewContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// Create 落库留言
func (r *GormContactRepository) Create(message *models.ContactMessage) error {
	return r.db.Create(message).Error
}

// GetByID 根据 ID 获取留言
func (r *GormContactRepository) GetByID(id uint) (*models.ContactMessage, error) {
	var message models.ContactMessage
	if err := r.db.First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// List 留言列表
func (r *GormContactRepository) List(filter ContactListFilter) ([]models.ContactMessage, int64, error) {
	query := r.db.Model(&models.ContactMessage{})
	if filter.OnlyOpen {
		query = query.Where("replied_at IS NULL")
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR subject LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.ContactMessage
	err := applyPagination(query.Order("created_at DESC, id DESC"), filter.Page, filter.PageSize).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// MarkReplied 标记已回复
func (r *GormContactRepository) MarkReplied(id uint, now time.Time) error {
	return r.db.Model(&models.ContactMessage{}).
		Where("id = ? AND replied_at IS NULL", id).
		UpdateColumn("replied_at", now).Error
}

// Delete 删除留言
func (r *GormContactRepository) Delete(id uint) error {
	return r.db.Delete(&models.ContactMessage{}, id).Error
}
