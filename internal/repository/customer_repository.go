package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/linkmart/internal/models"

	"gorm.io/gorm"
)

// CustomerRepository 顾客数据访问接口
type CustomerRepository interface {
	GetByID(id uint) (*models.Customer, error)
	GetByEmail(email string) (*models.Customer, error)
	GetByResetToken(token string) (*models.Customer, error)
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
	List(filter CustomerListFilter) ([]models.Customer, int64, error)
	CountByEmail(email string) (int64, error)
}

// GormCustomerRepository GORM 实现
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建顾客仓库
func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// GetByID 根据 ID 获取顾客
func (r *GormCustomerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// GetByEmail 根据邮箱获取顾客，邮箱统一小写比较
func (r *GormCustomerRepository) GetByEmail(email string) (*models.Customer, error) {
	var customer models.Customer
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := r.db.Where("email = ?", normalized).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// GetByResetToken 根据重置令牌获取顾客
func (r *GormCustomerRepository) GetByResetToken(token string) (*models.Customer, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}
	var customer models.Customer
	if err := r.db.Where("reset_token = ?", token).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// Create 创建顾客
func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// Update 更新顾客
func (r *GormCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// List 顾客列表
func (r *GormCustomerRepository) List(filter CustomerListFilter) ([]models.Customer, int64, error) {
	query := r.db.Model(&models.Customer{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("email LIKE ? OR first_name LIKE ? OR last_name LIKE ? OR phone LIKE ?", like, like, like, like)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query.Order("created_at DESC, id DESC"), filter.Page, filter.PageSize)
	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// CountByEmail 统计邮箱数量
func (r *GormCustomerRepository) CountByEmail(email string) (int64, error) {
	var count int64
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := r.db.Model(&models.Customer{}).Where("email = ?", normalized).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CustomerSessionRepository 顾客会话数据访问接口
type CustomerSessionRepository interface {
	Create(session *models.CustomerSession) error
	GetByToken(token string) (*models.CustomerSession, error)
	DeleteByToken(token string) error
	DeleteByCustomer(customerID uint) error
	DeleteExpired(now time.Time) (int64, error)
}

// GormCustomerSessionRepository GORM 实现
type GormCustomerSessionRepository struct {
	db *gorm.DB
}

// NewCustomerSessionRepository 创建顾客会话仓库
func NewCustomerSessionRepository(db *gorm.DB) *GormCustomerSessionRepository {
	return &GormCustomerSessionRepository{db: db}
}

// Create 创建会话
func (r *GormCustomerSessionRepository) Create(session *models.CustomerSession) error {
	return r.db.Create(session).Error
}

// GetByToken 根据令牌获取会话，附带顾客
func (r *GormCustomerSessionRepository) GetByToken(token string) (*models.CustomerSession, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}
	var session models.CustomerSession
	if err := r.db.Preload("Customer").Where("token = ?", token).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// DeleteByToken 删除指定令牌的会话
func (r *GormCustomerSessionRepository) DeleteByToken(token string) error {
	return r.db.Where("token = ?", strings.TrimSpace(token)).Delete(&models.CustomerSession{}).Error
}

// DeleteByCustomer 删除某顾客全部会话，重置密码后强制下线
func (r *GormCustomerSessionRepository) DeleteByCustomer(customerID uint) error {
	return r.db.Where("customer_id = ?", customerID).Delete(&models.CustomerSession{}).Error
}

// DeleteExpired 清理过期会话，返回删除行数
func (r *GormCustomerSessionRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at < ?", now).Delete(&models.CustomerSession{})
	return result.RowsAffected, result.Error
}
