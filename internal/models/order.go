package models

import (
	"time"

	"github.com/linkmart/internal/constants"

	"gorm.io/gorm"
)

// Order 订单
type Order struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	OrderNo    string `gorm:"size:32;uniqueIndex;not null" json:"order_no"`
	CustomerID *uint  `gorm:"index" json:"customer_id"` // nil 表示访客下单

	CustomerEmail string `gorm:"size:200;not null;index" json:"customer_email"`
	CustomerName  string `gorm:"size:200" json:"customer_name"`
	CustomerPhone string `gorm:"size:50" json:"customer_phone"`

	Subtotal    Money  `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	ShippingFee Money  `gorm:"type:decimal(12,2);not null" json:"shipping_fee"`
	TaxAmount   Money  `gorm:"type:decimal(12,2);not null" json:"tax_amount"`
	TotalAmount Money  `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Currency    string `gorm:"size:8;not null;default:USD" json:"currency"`

	PaymentStatus string `gorm:"size:20;not null;default:pending;index" json:"payment_status"`
	Status        string `gorm:"size:20;not null;default:pending;index" json:"status"`

	ShippingAddress string `gorm:"size:500" json:"shipping_address"`
	ShippingCity    string `gorm:"size:120" json:"shipping_city"`
	ShippingState   string `gorm:"size:120" json:"shipping_state"`
	ShippingZip     string `gorm:"size:30" json:"shipping_zip"`
	ShippingCountry string `gorm:"size:120" json:"shipping_country"`

	TrackingNumber string `gorm:"size:120" json:"tracking_number"`
	Carrier        string `gorm:"size:120" json:"carrier"`
	Notes          string `gorm:"type:text" json:"notes"`

	PaidAt      *time.Time `json:"paid_at"`
	ShippedAt   *time.Time `json:"shipped_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// IsPaid 是否已支付
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == constants.OrderPaymentPaid
}

// CanCancel 是否允许取消
func (o *Order) CanCancel() bool {
	return o.Status == constants.OrderStatusPending || o.Status == constants.OrderStatusProcessing
}
