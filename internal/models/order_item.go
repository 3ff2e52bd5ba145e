package models

import "time"

// OrderItem 订单项，下单时快照商品信息，后续商品变更不回写
type OrderItem struct {
	ID        uint  `gorm:"primarykey" json:"id"`
	OrderID   uint  `gorm:"not null;index" json:"order_id"`
	ProductID *uint `gorm:"index" json:"product_id"` // 商品删除后置空，快照保留

	ProductName  string `gorm:"size:300;not null" json:"product_name"`
	ProductSlug  string `gorm:"size:340" json:"product_slug"`
	ProductImage string `gorm:"size:500" json:"product_image"`

	Quantity   int   `gorm:"not null" json:"quantity"`
	UnitPrice  Money `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	TotalPrice Money `gorm:"type:decimal(12,2);not null" json:"total_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
