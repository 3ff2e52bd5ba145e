package models

import "time"

// ProductSEO 商品 SEO 载荷，与商品一对一
type ProductSEO struct {
	ID              uint        `gorm:"primarykey" json:"id"`
	ProductID       uint        `gorm:"uniqueIndex;not null" json:"product_id"`
	MetaTitle       string      `gorm:"size:300" json:"meta_title"`
	MetaDescription string      `gorm:"size:600" json:"meta_description"`
	Keywords        StringArray `gorm:"type:text" json:"keywords"`
	CanonicalURL    string      `gorm:"size:500" json:"canonical_url"`
	OGImage         string      `gorm:"size:500" json:"og_image"`
	StructuredData  JSON        `gorm:"type:text" json:"structured_data"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// TableName 指定表名
func (ProductSEO) TableName() string {
	return "product_seo"
}
