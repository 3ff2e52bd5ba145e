package models

import "time"

// Setting 站点配置键值对，KeyName 唯一，写入走 upsert
type Setting struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	KeyName     string    `gorm:"size:120;uniqueIndex;not null" json:"key_name"`
	Value       string    `gorm:"type:text" json:"value"`
	Description string    `gorm:"size:300" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Setting) TableName() string {
	return "settings"
}
