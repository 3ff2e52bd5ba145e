package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/linkmart/internal/constants"
	"github.com/linkmart/internal/logger"
	"github.com/linkmart/internal/metrics"
	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/payment/stripe"
	"github.com/linkmart/internal/repository"
)

// 支付用途，写入 Stripe metadata 便于 webhook 归属
const (
	PaymentPurposeOrder  = "order"
	PaymentPurposeBanner = "banner_ad"
)

// PaymentService 支付业务服务，封装 Stripe PaymentIntent 全流程
type PaymentService struct {
	repo          repository.PaymentRepository
	stripeClient  *stripe.Client
	orderService  *OrderService
	bannerService *BannerService
	metrics       *metrics.StoreMetrics
}

// NewPaymentService 创建支付服务
func NewPaymentService(
	repo repository.PaymentRepository,
	stripeClient *stripe.Client,
	orderService *OrderService,
	bannerService *BannerService,
	m *metrics.StoreMetrics,
) *PaymentService {
	return &PaymentService{
		repo:          repo,
		stripeClient:  stripeClient,
		orderService:  orderService,
		bannerService: bannerService,
		metrics:       m,
	}
}

// IntentOutput 创建支付意图返回
type IntentOutput struct {
	PaymentID    uint         `json:"payment_id"`
	IntentID     string       `json:"intent_id"`
	ClientSecret string       `json:"client_secret"`
	Amount       models.Money `json:"amount"`
	Currency     string       `json:"currency"`
	Status       string       `json:"status"`
}

// CreateOrderIntent 为订单创建支付意图
func (s *PaymentService) CreateOrderIntent(ctx context.Context, orderNo, email string) (*IntentOutput, error) {
	order, err := s.orderService.LookupForGuest(orderNo, email)
	if err != nil {
		return nil, err
	}
	if order.IsPaid() {
		return nil, ErrPaymentFinal
	}

	result, err := s.stripeClient.CreatePaymentIntent(ctx, stripe.IntentInput{
		Amount:      order.TotalAmount.String(),
		Currency:    order.Currency,
		Description: "Order " + order.OrderNo,
		Email:       order.CustomerEmail,
		Metadata: map[string]string{
			"purpose":  PaymentPurposeOrder,
			"order_no": order.OrderNo,
		},
	})
	if err != nil {
		s.metrics.RecordPaymentIntent(PaymentPurposeOrder, "create_failed")
		return nil, err
	}

	orderID := order.ID
	payment := models.Payment{
		ProviderIntentID: result.IntentID,
		OrderID:          &orderID,
		CustomerEmail:    order.CustomerEmail,
		Amount:           order.TotalAmount,
		Currency:         order.Currency,
		Status:           stripe.MapIntentStatus(result.Status),
		Description:      "Order " + order.OrderNo,
	}
	if err := s.repo.Create(&payment); err != nil {
		return nil, err
	}
	s.metrics.RecordPaymentIntent(PaymentPurposeOrder, payment.Status)

	return &IntentOutput{
		PaymentID:    payment.ID,
		IntentID:     result.IntentID,
		ClientSecret: result.ClientSecret,
		Amount:       payment.Amount,
		Currency:     payment.Currency,
		Status:       payment.Status,
	}, nil
}

// CreateBannerIntent 为商品推广横幅投放创建支付意图
func (s *PaymentService) CreateBannerIntent(ctx context.Context, bannerID uint, amount models.Money, durationDays int, email string) (*IntentOutput, error) {
	if amount.IsZero() || amount.IsNegative() || durationDays <= 0 {
		return nil, ErrInvalidInput
	}
	banner, err := s.bannerService.GetProductBanner(bannerID)
	if err != nil {
		return nil, err
	}
	if banner.IsPaid {
		return nil, ErrPaymentFinal
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = banner.ContactEmail
	}

	currency := "USD"
	result, err := s.stripeClient.CreatePaymentIntent(ctx, stripe.IntentInput{
		Amount:      amount.String(),
		Currency:    currency,
		Description: "Banner placement: " + banner.ProductName,
		Email:       email,
		Metadata: map[string]string{
			"purpose":       PaymentPurposeBanner,
			"banner_ad_id":  strconv.FormatUint(uint64(bannerID), 10),
			"duration_days": strconv.Itoa(durationDays),
		},
	})
	if err != nil {
		s.metrics.RecordPaymentIntent(PaymentPurposeBanner, "create_failed")
		return nil, err
	}

	payment := models.Payment{
		ProviderIntentID: result.IntentID,
		BannerAdID:       &bannerID,
		CustomerEmail:    email,
		Amount:           amount,
		Currency:         currency,
		Status:           stripe.MapIntentStatus(result.Status),
		Description:      "Banner placement: " + banner.ProductName,
	}
	if err := s.repo.Create(&payment); err != nil {
		return nil, err
	}
	s.metrics.RecordPaymentIntent(PaymentPurposeBanner, payment.Status)

	return &IntentOutput{
		PaymentID:    payment.ID,
		IntentID:     result.IntentID,
		ClientSecret: result.ClientSecret,
		Amount:       payment.Amount,
		Currency:     payment.Currency,
		Status:       payment.Status,
	}, nil
}

// Get 根据 ID 获取支付记录
func (s *PaymentService) Get(id uint) (*models.Payment, error) {
	payment, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrNotFound
	}
	return payment, nil
}

// List 支付记录列表
func (s *PaymentService) List(filter repository.PaymentListFilter) ([]models.Payment, int64, error) {
	return s.repo.List(filter)
}

// HandleWebhook 处理 Stripe webhook：验签、幂等更新支付记录并联动订单/横幅
func (s *PaymentService) HandleWebhook(ctx context.Context, signatureHeader string, body []byte, now time.Time) error {
	result, err := s.stripeClient.VerifyAndParseWebhook(signatureHeader, body, now)
	if err != nil {
		return err
	}
	if result.IntentID == "" || result.Status == "" {
		logger.Infow("stripe_webhook_skipped", "event_type", result.EventType, "event_id", result.EventID)
		return nil
	}

	payment, err := s.repo.GetByProviderIntentID(result.IntentID)
	if err != nil {
		return err
	}
	if payment == nil {
		// 未知 intent 可能来自其他环境，确认收到即可
		logger.Warnw("stripe_webhook_unknown_intent", "intent_id", result.IntentID, "event_type", result.EventType)
		return nil
	}
	if payment.IsFinal() {
		logger.Infow("stripe_webhook_duplicate", "intent_id", result.IntentID, "status", payment.Status)
		return nil
	}
	if payment.Status == result.Status {
		return nil
	}

	payment.Status = result.Status
	payment.FailureReason = result.Failure
	if result.Status == constants.PaymentStatusSucceeded {
		paidAt := now
		if result.PaidAt != nil {
			paidAt = *result.PaidAt
		}
		payment.SucceededAt = &paidAt
	}
	if err := s.repo.Update(payment); err != nil {
		return err
	}

	purpose := PaymentPurposeOrder
	if payment.BannerAdID != nil {
		purpose = PaymentPurposeBanner
	}
	s.metrics.RecordPaymentIntent(purpose, payment.Status)

	if payment.Status != constants.PaymentStatusSucceeded {
		if payment.Status == constants.PaymentStatusFailed && payment.OrderID != nil {
			if err := s.orderService.MarkPaymentFailed(*payment.OrderID); err != nil {
				logger.Warnw("order_payment_fail_mark_error", "order_id", *payment.OrderID, "error", err)
			}
		}
		return nil
	}

	switch {
	case payment.OrderID != nil:
		if _, err := s.orderService.MarkPaid(*payment.OrderID, *payment.SucceededAt); err != nil {
			return err
		}
		logger.Infow("order_paid", "order_id", *payment.OrderID, "intent_id", payment.ProviderIntentID)
	case payment.BannerAdID != nil:
		durationDays := parseDurationDays(result.Metadata["duration_days"])
		if err := s.bannerService.MarkProductBannerPaid(*payment.BannerAdID, *payment.SucceededAt, durationDays); err != nil {
			return err
		}
		logger.Infow("banner_ad_paid", "banner_ad_id", *payment.BannerAdID, "intent_id", payment.ProviderIntentID)
	}
	return nil
}

// parseDurationDays 解析回调元数据里的投放天数，缺失或非法时兜底默认时长，
// 避免已付费横幅永不过期
func parseDurationDays(raw string) int {
	days, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || days <= 0 {
		return constants.DefaultBannerDurationDays
	}
	return days
}
