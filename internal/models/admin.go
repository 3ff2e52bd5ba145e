package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin 后台管理员（数据库账号方案）
type Admin struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	Username     string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:200;not null" json:"-"`
	DisplayName  string `gorm:"size:200" json:"display_name"`
	Email        string `gorm:"size:200" json:"email"`
	IsSuper      bool   `gorm:"default:false" json:"is_super"`
	IsActive     bool   `json:"is_active"`

	// TokenVersion 修改密码或强制下线时递增，旧 JWT 即刻失效
	TokenVersion int64 `gorm:"default:0" json:"-"`

	LastLoginAt *time.Time     `json:"last_login_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}
