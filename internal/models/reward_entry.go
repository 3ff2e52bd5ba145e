package models

import "time"

// RewardEntry 积分流水，余额由流水累加得出
type RewardEntry struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	CustomerID uint   `gorm:"not null;index" json:"customer_id"`
	Type       string `gorm:"size:20;not null" json:"type"` // earn / redeem / adjust
	Points     int    `gorm:"not null" json:"points"`       // redeem 记负值
	Reason     string `gorm:"size:300" json:"reason"`
	OrderID    *uint  `gorm:"index" json:"order_id"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (RewardEntry) TableName() string {
	return "reward_entries"
}
