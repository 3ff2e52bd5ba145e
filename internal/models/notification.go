package models

import "time"

// Notification 顾客站内通知
type Notification struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	CustomerID uint       `gorm:"not null;index" json:"customer_id"`
	Title      string     `gorm:"size:200;not null" json:"title"`
	Body       string     `gorm:"type:text" json:"body"`
	Kind       string     `gorm:"size:40;default:general" json:"kind"`
	LinkURL    string     `gorm:"size:500" json:"link_url"`
	ReadAt     *time.Time `json:"read_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}

// IsRead 是否已读
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
