package models

import (
	"time"

	"gorm.io/gorm"
)

// BannerAd 站点横幅广告
type BannerAd struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Title     string         `gorm:"size:200;not null" json:"title"`
	Subtitle  string         `gorm:"size:300" json:"subtitle"`
	ImageURL  string         `gorm:"size:500;not null" json:"image_url"`
	LinkURL   string         `gorm:"size:1000" json:"link_url"`
	Placement string         `gorm:"size:50;default:home;index" json:"placement"`
	IsActive  bool           `gorm:"index" json:"is_active"`
	StartsAt  *time.Time     `json:"starts_at"`
	EndsAt    *time.Time     `json:"ends_at"`
	ClickCount int           `gorm:"default:0" json:"click_count"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (BannerAd) TableName() string {
	return "banner_ads"
}

// EligibleAt 在指定时刻是否可投放
func (b *BannerAd) EligibleAt(now time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartsAt != nil && now.Before(*b.StartsAt) {
		return false
	}
	if b.EndsAt != nil && now.After(*b.EndsAt) {
		return false
	}
	return true
}
