package models

import (
	"time"

	"gorm.io/gorm"
)

// Page 静态页面（关于我们、服务条款等）
type Page struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Slug            string         `gorm:"size:160;uniqueIndex;not null" json:"slug"`
	Title           string         `gorm:"size:200;not null" json:"title"`
	Content         string         `gorm:"type:text" json:"content"`
	MetaTitle       string         `gorm:"size:300" json:"meta_title"`
	MetaDescription string         `gorm:"size:600" json:"meta_description"`
	IsPublished     bool           `gorm:"index" json:"is_published"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Page) TableName() string {
	return "pages"
}
