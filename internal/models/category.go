package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 商品分类，ParentID 为空表示顶级分类
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ParentID  *uint          `gorm:"index" json:"parent_id"`
	Name      string         `gorm:"size:120;not null" json:"name"`
	Slug      string         `gorm:"size:160;uniqueIndex;not null" json:"slug"`
	Icon      string         `gorm:"size:120" json:"icon"`
	Image     string         `gorm:"size:500" json:"image"`
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`
	IsActive  bool           `gorm:"index" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`

	// ProductCount 非持久化字段，列表查询时回填
	ProductCount int64 `gorm:"-" json:"product_count"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// IsRoot 是否为顶级分类
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}
