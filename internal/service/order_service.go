package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/linkmart/internal/config"
	"github.com/linkmart/internal/constants"
	"github.com/linkmart/internal/logger"
	"github.com/linkmart/internal/metrics"
	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/queue"
	"github.com/linkmart/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单业务服务
type OrderService struct {
	repo        repository.OrderRepository
	productRepo repository.ProductRepository
	queue       *queue.Client
	metrics     *metrics.StoreMetrics
	store       config.StoreConfig
}

// NewOrderService 创建订单服务
func NewOrderService(
	repo repository.OrderRepository,
	productRepo repository.ProductRepository,
	queueClient *queue.Client,
	m *metrics.StoreMetrics,
	store config.StoreConfig,
) *OrderService {
	return &OrderService{
		repo:        repo,
		productRepo: productRepo,
		queue:       queueClient,
		metrics:     m,
		store:       store,
	}
}

// OrderItemInput 下单商品项
type OrderItemInput struct {
	ProductID uint
	Quantity  int
}

// OrderInput 下单输入
type OrderInput struct {
	CustomerID    *uint
	CustomerEmail string
	CustomerName  string
	CustomerPhone string

	ShippingAddress string
	ShippingCity    string
	ShippingState   string
	ShippingZip     string
	ShippingCountry string

	Notes string
	Items []OrderItemInput
}

// OrderStatusInput 订单状态更新输入
type OrderStatusInput struct {
	Status         string
	TrackingNumber string
	Carrier        string
}

// GenerateOrderNo 生成订单号：LM + 时间戳 + 随机数字，库内去重
func (s *OrderService) GenerateOrderNo(now time.Time) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		suffix := make([]byte, constants.OrderNumberRandDigits)
		for i := range suffix {
			n, err := rand.Int(rand.Reader, big.NewInt(10))
			if err != nil {
				return "", err
			}
			suffix[i] = byte('0' + n.Int64())
		}
		orderNo := fmt.Sprintf("LM%s%s", now.Format("20060102150405"), suffix)
		count, err := s.repo.CountByOrderNo(orderNo)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return orderNo, nil
		}
	}
	return "", fmt.Errorf("order number generation exhausted retries")
}

// Create 创建订单：校验商品、扣减库存、快照商品信息，全部在一个事务内
func (s *OrderService) Create(input OrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	email := strings.ToLower(strings.TrimSpace(input.CustomerEmail))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	for _, item := range input.Items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return nil, ErrInvalidInput
		}
	}

	orderNo, err := s.GenerateOrderNo(time.Now())
	if err != nil {
		return nil, err
	}

	currency := s.store.Currency
	if currency == "" {
		currency = "USD"
	}

	var order models.Order
	err = s.repo.Transaction(func(tx *gorm.DB) error {
		subtotal := models.Money{}
		items := make([]models.OrderItem, 0, len(input.Items))

		for _, in := range input.Items {
			var product models.Product
			if err := tx.First(&product, in.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			if !product.IsActive {
				return ErrNotFound
			}
			if product.IsAffiliate() {
				return ErrAffiliateProduct
			}
			if !product.HasEnoughStock(in.Quantity) {
				return ErrOutOfStock
			}

			if product.StockQuantity != nil {
				result := tx.Model(&models.Product{}).
					Where("id = ? AND stock_quantity >= ?", product.ID, in.Quantity).
					UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", in.Quantity))
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected == 0 {
					return ErrOutOfStock
				}
			}
			if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
				UpdateColumn("sales_count", gorm.Expr("sales_count + ?", in.Quantity)).Error; err != nil {
				return err
			}

			productID := product.ID
			lineTotal := product.Price.MulInt(in.Quantity)
			subtotal = subtotal.Add(lineTotal)
			items = append(items, models.OrderItem{
				ProductID:    &productID,
				ProductName:  product.Name,
				ProductSlug:  product.Slug,
				ProductImage: product.MainImage,
				Quantity:     in.Quantity,
				UnitPrice:    product.Price,
				TotalPrice:   lineTotal,
			})
		}

		shipping := models.NewMoneyFromFloat(s.store.ShippingFlatFee)
		tax := subtotal.MulFloat(s.store.TaxRate)
		order = models.Order{
			OrderNo:         orderNo,
			CustomerID:      input.CustomerID,
			CustomerEmail:   email,
			CustomerName:    strings.TrimSpace(input.CustomerName),
			CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
			Subtotal:        subtotal,
			ShippingFee:     shipping,
			TaxAmount:       tax,
			TotalAmount:     subtotal.Add(shipping).Add(tax),
			Currency:        currency,
			PaymentStatus:   constants.OrderPaymentPending,
			Status:          constants.OrderStatusPending,
			ShippingAddress: strings.TrimSpace(input.ShippingAddress),
			ShippingCity:    strings.TrimSpace(input.ShippingCity),
			ShippingState:   strings.TrimSpace(input.ShippingState),
			ShippingZip:     strings.TrimSpace(input.ShippingZip),
			ShippingCountry: strings.TrimSpace(input.ShippingCountry),
			Notes:           input.Notes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordOrderCreated(currency)
	return &order, nil
}

// Get 根据 ID 获取订单
func (s *OrderService) Get(id uint) (*models.Order, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// GetByNumber 管理端按订单号查询
func (s *OrderService) GetByNumber(orderNo string) (*models.Order, error) {
	order, err := s.repo.GetByOrderNo(strings.TrimSpace(orderNo))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// LookupForCustomer 已登录客户查单，订单必须归属该客户
func (s *OrderService) LookupForCustomer(orderNo string, customerID uint) (*models.Order, error) {
	order, err := s.repo.GetByOrderNo(strings.TrimSpace(orderNo))
	if err != nil {
		return nil, err
	}
	if order == nil || order.CustomerID == nil || *order.CustomerID != customerID {
		return nil, ErrNotFound
	}
	return order, nil
}

// LookupForGuest 访客查单，订单号加下单邮箱双重匹配
func (s *OrderService) LookupForGuest(orderNo, email string) (*models.Order, error) {
	order, err := s.repo.GetByOrderNoForEmail(strings.TrimSpace(orderNo), email)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// List 订单列表
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.repo.List(filter)
}

// orderStatusTransitions 允许的状态迁移
var orderStatusTransitions = map[string][]string{
	constants.OrderStatusPending:    {constants.OrderStatusProcessing, constants.OrderStatusCancelled},
	constants.OrderStatusProcessing: {constants.OrderStatusShipped, constants.OrderStatusCancelled},
	constants.OrderStatusShipped:    {constants.OrderStatusDelivered},
}

func canTransition(from, to string) bool {
	for _, allowed := range orderStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// UpdateStatus 管理端更新订单状态，按迁移表校验并回填时间戳
func (s *OrderService) UpdateStatus(id uint, input OrderStatusInput) (*models.Order, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if input.Status == order.Status {
		// 状态不变时仅更新物流信息
		if input.TrackingNumber != "" {
			order.TrackingNumber = strings.TrimSpace(input.TrackingNumber)
		}
		if input.Carrier != "" {
			order.Carrier = strings.TrimSpace(input.Carrier)
		}
		if err := s.repo.Update(order); err != nil {
			return nil, err
		}
		return order, nil
	}
	if !canTransition(order.Status, input.Status) {
		return nil, ErrStatusInvalid
	}

	now := time.Now()
	order.Status = input.Status
	switch input.Status {
	case constants.OrderStatusShipped:
		order.ShippedAt = &now
		order.TrackingNumber = strings.TrimSpace(input.TrackingNumber)
		order.Carrier = strings.TrimSpace(input.Carrier)
	case constants.OrderStatusDelivered:
		order.DeliveredAt = &now
	case constants.OrderStatusCancelled:
		order.CancelledAt = &now
	}
	if err := s.repo.Update(order); err != nil {
		return nil, err
	}
	if input.Status == constants.OrderStatusCancelled {
		s.restock(order)
		s.metrics.RecordOrderCancelled(order.Currency)
	}
	return order, nil
}

// MarkPaid 支付成功回调：置已支付并推进到处理中，发确认邮件
func (s *OrderService) MarkPaid(id uint, paidAt time.Time) (*models.Order, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if order.IsPaid() {
		return order, nil
	}

	order.PaymentStatus = constants.OrderPaymentPaid
	order.PaidAt = &paidAt
	if order.Status == constants.OrderStatusPending {
		order.Status = constants.OrderStatusProcessing
	}
	if err := s.repo.Update(order); err != nil {
		return nil, err
	}

	amount, _ := order.TotalAmount.Decimal().Float64()
	s.metrics.RecordOrderPaid(order.Currency, amount)
	// 邮件任务失败不影响支付状态
	_ = s.queue.EnqueueOrderConfirmEmail(queue.OrderConfirmEmailPayload{OrderID: order.ID})
	return order, nil
}

// MarkPaymentFailed 支付失败回调
func (s *OrderService) MarkPaymentFailed(id uint) error {
	order, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrNotFound
	}
	if order.IsPaid() {
		return ErrPaymentFinal
	}
	order.PaymentStatus = constants.OrderPaymentFailed
	return s.repo.Update(order)
}

// Cancel 取消订单：仅待处理/处理中允许，回补追踪库存
func (s *OrderService) Cancel(id uint) (*models.Order, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if !order.CanCancel() {
		return nil, ErrOrderNotCancelable
	}

	now := time.Now()
	order.Status = constants.OrderStatusCancelled
	order.CancelledAt = &now
	if err := s.repo.Update(order); err != nil {
		return nil, err
	}
	s.restock(order)
	s.metrics.RecordOrderCancelled(order.Currency)
	return order, nil
}

// ResetSalesData 清空全部销售数据（订单、订单项、支付）并归零商品销量
// 面向演示和对账前清理的维护操作，不可恢复。
func (s *OrderService) ResetSalesData() (int64, error) {
	removed, err := s.repo.PurgeSalesData()
	if err != nil {
		return 0, err
	}
	logger.Warnw("sales_data_reset", "orders_removed", removed)
	return removed, nil
}

// restock 取消订单后回补库存，商品已删除或不追踪库存的跳过
func (s *OrderService) restock(order *models.Order) {
	for _, item := range order.Items {
		if item.ProductID == nil {
			continue
		}
		product, err := s.productRepo.GetByID(*item.ProductID)
		if err != nil {
			logger.Warnw("order_restock_fetch_failed", "order_id", order.ID, "product_id", *item.ProductID, "error", err)
			continue
		}
		if product == nil || product.StockQuantity == nil {
			continue
		}
		newQty := *product.StockQuantity + item.Quantity
		product.StockQuantity = &newQty
		product.Category = nil
		product.Subcategory = nil
		product.Brand = nil
		product.SEO = nil
		if err := s.productRepo.Update(product); err != nil {
			logger.Warnw("order_restock_update_failed", "order_id", order.ID, "product_id", product.ID, "error", err)
		}
	}
}
