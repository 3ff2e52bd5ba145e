package models

import (
	"time"

	"github.com/linkmart/internal/constants"
)

// Payment 支付记录，对应支付提供方的一次 PaymentIntent
type Payment struct {
	ID               uint   `gorm:"primarykey" json:"id"`
	ProviderIntentID string `gorm:"size:120;uniqueIndex;not null" json:"provider_intent_id"`
	OrderID          *uint  `gorm:"index" json:"order_id"`
	BannerAdID       *uint  `gorm:"index" json:"banner_ad_id"` // 商品横幅投放付费

	CustomerEmail string `gorm:"size:200;index" json:"customer_email"`
	Amount        Money  `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency      string `gorm:"size:8;not null;default:USD" json:"currency"`
	Status        string `gorm:"size:20;not null;default:pending;index" json:"status"`
	Description   string `gorm:"size:500" json:"description"`
	FailureReason string `gorm:"size:500" json:"failure_reason"`

	SucceededAt *time.Time `json:"succeeded_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName 指定表名
func (Payment) TableName() string {
	return "payments"
}

// IsFinal 是否为终态
func (p *Payment) IsFinal() bool {
	switch p.Status {
	case constants.PaymentStatusSucceeded, constants.PaymentStatusFailed, constants.PaymentStatusCanceled:
		return true
	}
	return false
}
