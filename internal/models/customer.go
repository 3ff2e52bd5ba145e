package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer 顾客账号
type Customer struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	Email        string `gorm:"size:200;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:200;not null" json:"-"`
	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	Phone        string `gorm:"size:50" json:"phone"`

	IsActive      bool `gorm:"index" json:"is_active"`
	EmailVerified bool `gorm:"default:false" json:"email_verified"`

	ResetToken          string     `gorm:"size:64;index" json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}

// FullName 拼接姓名
func (c *Customer) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// ResetTokenValid 重置令牌在指定时刻是否有效
func (c *Customer) ResetTokenValid(now time.Time) bool {
	return c.ResetToken != "" && c.ResetTokenExpiresAt != nil && now.Before(*c.ResetTokenExpiresAt)
}
