package models

import "time"

// AnalyticsEvent 访问分析事件，追加写入
type AnalyticsEvent struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	EventType  string `gorm:"size:60;not null;index" json:"event_type"`
	PagePath   string `gorm:"size:500" json:"page_path"`
	Referrer   string `gorm:"size:500" json:"referrer"`
	ProductID  *uint  `gorm:"index" json:"product_id"`
	CustomerID *uint  `gorm:"index" json:"customer_id"`
	SessionID  string `gorm:"size:64;index" json:"session_id"`
	IP         string `gorm:"size:64" json:"ip"`
	UserAgent  string `gorm:"size:300" json:"user_agent"`
	Metadata   JSON   `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}
