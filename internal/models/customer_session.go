package models

import "time"

// CustomerSession 顾客登录会话，令牌落库，登出即删除
type CustomerSession struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	Token      string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	UserAgent  string    `gorm:"size:300" json:"user_agent"`
	IP         string    `gorm:"size:64" json:"ip"`
	ExpiresAt  time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// TableName 指定表名
func (CustomerSession) TableName() string {
	return "customer_sessions"
}

// Expired 会话在指定时刻是否已过期
func (s *CustomerSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
