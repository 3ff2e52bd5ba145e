package repository

import (
	"errors"
	"time"

	"github.com/linkmart/internal/models"

	"gorm.io/gorm"
)

// CustomerAddressRepository 顾客地址数据访问接口
type CustomerAddressRepository interface {
	ListByCustomer(customerID uint) ([]models.CustomerAddress, error)
	GetByID(customerID, id uint) (*models.CustomerAddress, error)
	Create(address *models.CustomerAddress) error
	Update(address *models.CustomerAddress) error
	Delete(customerID, id uint) error
	ClearDefault(customerID uint) error
}

// GormCustomerAddressRepository GORM 实现
type GormCustomerAddressRepository struct {
	db *gorm.DB
}

// NewCustomerAddressRepository 创建顾客地址仓库
func NewCustomerAddressRepository(db *gorm.DB) *GormCustomerAddressRepository {
	return &GormCustomerAddressRepository{db: db}
}

// ListByCustomer 某顾客地址列表，默认地址排前
func (r *GormCustomerAddressRepository) ListByCustomer(customerID uint) ([]models.CustomerAddress, error) {
	var addresses []models.CustomerAddress
	err := r.db.Where("customer_id = ?", customerID).
		Order("is_default DESC, id DESC").Find(&addresses).Error
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

// GetByID 按顾客限定查询地址
func (r *GormCustomerAddressRepository) GetByID(customerID, id uint) (*models.CustomerAddress, error) {
	var address models.CustomerAddress
	err := r.db.Where("customer_id = ? AND id = ?", customerID, id).First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

// Create 创建地址
func (r *GormCustomerAddressRepository) Create(address *models.CustomerAddress) error {
	return r.db.Create(address).Error
}

// Update 更新地址
func (r *GormCustomerAddressRepository) Update(address *models.CustomerAddress) error {
	return r.db.Save(address).Error
}

// Delete 删除地址
func (r *GormCustomerAddressRepository) Delete(customerID, id uint) error {
	return r.db.Where("customer_id = ? AND id = ?", customerID, id).
		Delete(&models.CustomerAddress{}).Error
}

// ClearDefault 清除某顾客全部默认标记
func (r *GormCustomerAddressRepository) ClearDefault(customerID uint) error {
	return r.db.Model(&models.CustomerAddress{}).
		Where("customer_id = ?", customerID).
		UpdateColumn("is_default", false).Error
}

// WishlistRepository 收藏数据访问接口
type WishlistRepository interface {
	ListByCustomer(customerID uint) ([]models.WishlistItem, error)
	Exists(customerID, productID uint) (bool, error)
	Add(item *models.WishlistItem) error
	Remove(customerID, productID uint) error
}

// GormWishlistRepository GORM 实现
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建收藏仓库
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// ListByCustomer 某顾客收藏列表，附带商品
func (r *GormWishlistRepository) ListByCustomer(customerID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.Preload("Product").Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Exists 是否已收藏
func (r *GormWishlistRepository) Exists(customerID, productID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.WishlistItem{}).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add 添加收藏
func (r *GormWishlistRepository) Add(item *models.WishlistItem) error {
	return r.db.Create(item).Error
}

// Remove 移除收藏
func (r *GormWishlistRepository) Remove(customerID, productID uint) error {
	return r.db.Where("customer_id = ? AND product_id = ?", customerID, productID).
		Delete(&models.WishlistItem{}).Error
}

// RewardRepository 积分流水数据访问接口
type RewardRepository interface {
	ListByCustomer(customerID uint, page, pageSize int) ([]models.RewardEntry, int64, error)
	Create(entry *models.RewardEntry) error
	Balance(customerID uint) (int64, error)
}

// GormRewardRepository GORM 实现
type GormRewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository 创建积分仓库
func NewRewardRepository(db *gorm.DB) *GormRewardRepository {
	return &GormRewardRepository{db: db}
}

// ListByCustomer 某顾客积分流水
func (r *GormRewardRepository) ListByCustomer(customerID uint, page, pageSize int) ([]models.RewardEntry, int64, error) {
	query := r.db.Model(&models.RewardEntry{}).Where("customer_id = ?", customerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.RewardEntry
	err := applyPagination(query.Order("created_at DESC, id DESC"), page, pageSize).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Create 写入积分流水
func (r *GormRewardRepository) Create(entry *models.RewardEntry) error {
	return r.db.Create(entry).Error
}

// Balance 积分余额，由流水累加
func (r *GormRewardRepository) Balance(customerID uint) (int64, error) {
	var balance *int64
	err := r.db.Model(&models.RewardEntry{}).
		Where("customer_id = ?", customerID).
		Select("SUM(points)").Scan(&balance).Error
	if err != nil {
		return 0, err
	}
	if balance == nil {
		return 0, nil
	}
	return *balance, nil
}

// NotificationRepository 站内通知数据访问接口
type NotificationRepository interface {
	ListByCustomer(customerID uint, page, pageSize int) ([]models.Notification, int64, error)
	Create(notification *models.Notification) error
	MarkRead(customerID, id uint, now time.Time) error
	MarkAllRead(customerID uint, now time.Time) error
	CountUnread(customerID uint) (int64, error)
}

// GormNotificationRepository GORM 实现
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓库
func NewNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// ListByCustomer 某顾客通知列表
func (r *GormNotificationRepository) ListByCustomer(customerID uint, page, pageSize int) ([]models.Notification, int64, error) {
	query := r.db.Model(&models.Notification{}).Where("customer_id = ?", customerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	err := applyPagination(query.Order("created_at DESC, id DESC"), page, pageSize).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// Create 创建通知
func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// MarkRead 标记单条已读
func (r *GormNotificationRepository) MarkRead(customerID, id uint, now time.Time) error {
	return r.db.Model(&models.Notification{}).
		Where("customer_id = ? AND id = ? AND read_at IS NULL", customerID, id).
		UpdateColumn("read_at", now).Error
}

// MarkAllRead 标记全部已读
func (r *GormNotificationRepository) MarkAllRead(customerID uint, now time.Time) error {
	return r.db.Model(&models.Notification{}).
		Where("customer_id = ? AND read_at IS NULL", customerID).
		UpdateColumn("read_at", now).Error
}

// CountUnread 未读数量
func (r *GormNotificationRepository) CountUnread(customerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("customer_id = ? AND read_at IS NULL", customerID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
