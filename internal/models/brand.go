package models

import (
	"time"

	"gorm.io/gorm"
)

// Brand 商品品牌
type Brand struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"size:120;not null" json:"name"`
	Slug        string         `gorm:"size:160;uniqueIndex;not null" json:"slug"`
	Logo        string         `gorm:"size:500" json:"logo"`
	Description string         `gorm:"type:text" json:"description"`
	Website     string         `gorm:"size:300" json:"website"`
	IsActive    bool           `gorm:"index" json:"is_active"`
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// ProductCount 非持久化字段，列表查询时回填
	ProductCount int64 `gorm:"-" json:"product_count"`
}

// TableName 指定表名
func (Brand) TableName() string {
	return "brands"
}
