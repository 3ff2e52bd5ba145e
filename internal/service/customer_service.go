package service

import (
	"strings"
	"time"

	"github.com/linkmart/internal/constants"
	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/repository"
)

// CustomerService 顾客资料与管理端顾客管理
type CustomerService struct {
	repo             repository.CustomerRepository
	sessionRepo      repository.CustomerSessionRepository
	addressRepo      repository.CustomerAddressRepository
	wishlistRepo     repository.WishlistRepository
	rewardRepo       repository.RewardRepository
	notificationRepo repository.NotificationRepository
	productRepo      repository.ProductRepository
}

// NewCustomerService 创建顾客服务
func NewCustomerService(
	repo repository.CustomerRepository,
	sessionRepo repository.CustomerSessionRepository,
	addressRepo repository.CustomerAddressRepository,
	wishlistRepo repository.WishlistRepository,
	rewardRepo repository.RewardRepository,
	notificationRepo repository.NotificationRepository,
	productRepo repository.ProductRepository,
) *CustomerService {
	return &CustomerService{
		repo:             repo,
		sessionRepo:      sessionRepo,
		addressRepo:      addressRepo,
		wishlistRepo:     wishlistRepo,
		rewardRepo:       rewardRepo,
		notificationRepo: notificationRepo,
		productRepo:      productRepo,
	}
}

// ProfileInput 资料更新输入
type ProfileInput struct {
	FirstName string
	LastName  string
	Phone     string
}

// AddressInput 地址输入
type AddressInput struct {
	Label     string
	Recipient string
	Phone     string
	Address   string
	City      string
	State     string
	Zip       string
	Country   string
	IsDefault bool
}

// Get 根据 ID 获取顾客
func (s *CustomerService) Get(id uint) (*models.Customer, error) {
	customer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotFound
	}
	return customer, nil
}

// List 管理端顾客列表
func (s *CustomerService) List(filter repository.CustomerListFilter) ([]models.Customer, int64, error) {
	return s.repo.List(filter)
}

// UpdateProfile 顾客更新资料
func (s *CustomerService) UpdateProfile(customerID uint, input ProfileInput) (*models.Customer, error) {
	customer, err := s.Get(customerID)
	if err != nil {
		return nil, err
	}
	customer.FirstName = strings.TrimSpace(input.FirstName)
	customer.LastName = strings.TrimSpace(input.LastName)
	customer.Phone = strings.TrimSpace(input.Phone)
	if err := s.repo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// SetActive 管理端启用/停用账号，停用时清除全部会话
func (s *CustomerService) SetActive(customerID uint, active bool) (*models.Customer, error) {
	customer, err := s.Get(customerID)
	if err != nil {
		return nil, err
	}
	customer.IsActive = active
	if err := s.repo.Update(customer); err != nil {
		return nil, err
	}
	if !active {
		if err := s.sessionRepo.DeleteByCustomer(customerID); err != nil {
			return nil, err
		}
	}
	return customer, nil
}

// ListAddresses 顾客地址列表
func (s *CustomerService) ListAddresses(customerID uint) ([]models.CustomerAddress, error) {
	return s.addressRepo.ListByCustomer(customerID)
}

// CreateAddress 新增地址，设为默认时清除其他默认标记
func (s *CustomerService) CreateAddress(customerID uint, input AddressInput) (*models.CustomerAddress, error) {
	if strings.TrimSpace(input.Address) == "" {
		return nil, ErrInvalidInput
	}
	if input.IsDefault {
		if err := s.addressRepo.ClearDefault(customerID); err != nil {
			return nil, err
		}
	}
	address := models.CustomerAddress{
		CustomerID: customerID,
		Label:      strings.TrimSpace(input.Label),
		Recipient:  strings.TrimSpace(input.Recipient),
		Phone:      strings.TrimSpace(input.Phone),
		Address:    strings.TrimSpace(input.Address),
		City:       strings.TrimSpace(input.City),
		State:      strings.TrimSpace(input.State),
		Zip:        strings.TrimSpace(input.Zip),
		Country:    strings.TrimSpace(input.Country),
		IsDefault:  input.IsDefault,
	}
	if err := s.addressRepo.Create(&address); err != nil {
		return nil, err
	}
	return &address, nil
}

// UpdateAddress 更新地址
func (s *CustomerService) UpdateAddress(customerID, addressID uint, input AddressInput) (*models.CustomerAddress, error) {
	address, err := s.addressRepo.GetByID(customerID, addressID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(input.Address) == "" {
		return nil, ErrInvalidInput
	}
	if input.IsDefault && !address.IsDefault {
		if err := s.addressRepo.ClearDefault(customerID); err != nil {
			return nil, err
		}
	}
	address.Label = strings.TrimSpace(input.Label)
	address.Recipient = strings.TrimSpace(input.Recipient)
	address.Phone = strings.TrimSpace(input.Phone)
	address.Address = strings.TrimSpace(input.Address)
	address.City = strings.TrimSpace(input.City)
	address.State = strings.TrimSpace(input.State)
	address.Zip = strings.TrimSpace(input.Zip)
	address.Country = strings.TrimSpace(input.Country)
	address.IsDefault = input.IsDefault
	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

// DeleteAddress 删除地址
func (s *CustomerService) DeleteAddress(customerID, addressID uint) error {
	address, err := s.addressRepo.GetByID(customerID, addressID)
	if err != nil {
		return err
	}
	if address == nil {
		return ErrNotFound
	}
	return s.addressRepo.Delete(customerID, addressID)
}

// ListWishlist 收藏列表
func (s *CustomerService) ListWishlist(customerID uint) ([]models.WishlistItem, error) {
	return s.wishlistRepo.ListByCustomer(customerID)
}

// AddToWishlist 添加收藏，重复收藏报错
func (s *CustomerService) AddToWishlist(customerID, productID uint) (*models.WishlistItem, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrNotFound
	}

	exists, err := s.wishlistRepo.Exists(customerID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyWishlisted
	}
	item := models.WishlistItem{CustomerID: customerID, ProductID: productID}
	if err := s.wishlistRepo.Add(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveFromWishlist 移除收藏
func (s *CustomerService) RemoveFromWishlist(customerID, productID uint) error {
	exists, err := s.wishlistRepo.Exists(customerID, productID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return s.wishlistRepo.Remove(customerID, productID)
}

// ListRewards 积分流水与余额
func (s *CustomerService) ListRewards(customerID uint, page, pageSize int) ([]models.RewardEntry, int64, int64, error) {
	entries, total, err := s.rewardRepo.ListByCustomer(customerID, page, pageSize)
	if err != nil {
		return nil, 0, 0, err
	}
	balance, err := s.rewardRepo.Balance(customerID)
	if err != nil {
		return nil, 0, 0, err
	}
	return entries, total, balance, nil
}

// RewardBalance 积分余额
func (s *CustomerService) RewardBalance(customerID uint) (int64, error) {
	return s.rewardRepo.Balance(customerID)
}

// AdjustRewards 管理端积分调整，扣减不允许透支
func (s *CustomerService) AdjustRewards(customerID uint, points int, reason string) (*models.RewardEntry, error) {
	if points == 0 {
		return nil, ErrInvalidInput
	}
	if _, err := s.Get(customerID); err != nil {
		return nil, err
	}
	if points < 0 {
		balance, err := s.rewardRepo.Balance(customerID)
		if err != nil {
			return nil, err
		}
		if balance+int64(points) < 0 {
			return nil, ErrInvalidInput
		}
	}
	entry := models.RewardEntry{
		CustomerID: customerID,
		Type:       constants.RewardEntryAdjust,
		Points:     points,
		Reason:     strings.TrimSpace(reason),
	}
	if err := s.rewardRepo.Create(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// EarnRewards 写入积分获得流水
func (s *CustomerService) EarnRewards(customerID uint, points int, reason string, orderID *uint) (*models.RewardEntry, error) {
	if points <= 0 {
		return nil, ErrInvalidInput
	}
	entry := models.RewardEntry{
		CustomerID: customerID,
		Type:       constants.RewardEntryEarn,
		Points:     points,
		Reason:     strings.TrimSpace(reason),
		OrderID:    orderID,
	}
	if err := s.rewardRepo.Create(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListNotifications 通知列表
func (s *CustomerService) ListNotifications(customerID uint, page, pageSize int) ([]models.Notification, int64, error) {
	return s.notificationRepo.ListByCustomer(customerID, page, pageSize)
}

// UnreadNotificationCount 未读通知数
func (s *CustomerService) UnreadNotificationCount(customerID uint) (int64, error) {
	return s.notificationRepo.CountUnread(customerID)
}

// MarkNotificationRead 标记单条通知已读
func (s *CustomerService) MarkNotificationRead(customerID, id uint) error {
	return s.notificationRepo.MarkRead(customerID, id, time.Now())
}

// MarkAllNotificationsRead 标记全部通知已读
func (s *CustomerService) MarkAllNotificationsRead(customerID uint) error {
	return s.notificationRepo.MarkAllRead(customerID, time.Now())
}

// Notify 写入站内通知
func (s *CustomerService) Notify(customerID uint, title, body, kind, linkURL string) (*models.Notification, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidInput
	}
	notification := models.Notification{
		CustomerID: customerID,
		Title:      title,
		Body:       body,
		Kind:       kind,
		LinkURL:    strings.TrimSpace(linkURL),
	}
	if notification.Kind == "" {
		notification.Kind = "general"
	}
	if err := s.notificationRepo.Create(&notification); err != nil {
		return nil, err
	}
	return &notification, nil
}
