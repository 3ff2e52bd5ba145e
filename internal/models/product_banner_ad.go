package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductBannerAd 商品推广横幅，付费投放，到期自动下线
type ProductBannerAd struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	ProductName string         `gorm:"size:300;not null" json:"product_name"`
	ImageURL    string         `gorm:"size:500;not null" json:"image_url"`
	TargetURL   string         `gorm:"size:1000;not null" json:"target_url"`
	Headline    string         `gorm:"size:200" json:"headline"`
	PriceLabel  string         `gorm:"size:50" json:"price_label"`
	ContactEmail string        `gorm:"size:200" json:"contact_email"`
	IsActive    bool           `gorm:"index" json:"is_active"`
	IsPaid      bool           `gorm:"default:false;index" json:"is_paid"`
	ExpiresAt   *time.Time     `json:"expires_at"`
	ClickCount  int            `gorm:"default:0" json:"click_count"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (ProductBannerAd) TableName() string {
	return "product_banner_ads"
}

// EligibleAt 在指定时刻是否可投放：已付费、启用且未到期
func (b *ProductBannerAd) EligibleAt(now time.Time) bool {
	if !b.IsActive || !b.IsPaid {
		return false
	}
	if b.ExpiresAt != nil && now.After(*b.ExpiresAt) {
		return false
	}
	return true
}
