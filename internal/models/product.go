package models

import (
	"time"

	"github.com/linkmart/internal/constants"

	"gorm.io/gorm"
)

// Product 商品
type Product struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	CategoryID    uint   `gorm:"not null;index" json:"category_id"`
	SubcategoryID *uint  `gorm:"index" json:"subcategory_id"`
	BrandID       *uint  `gorm:"index" json:"brand_id"`
	Name          string `gorm:"size:300;not null" json:"name"`
	Slug          string `gorm:"size:340;uniqueIndex;not null" json:"slug"`
	Description   string `gorm:"type:text" json:"description"`
	ShortDesc     string `gorm:"size:500" json:"short_desc"`

	Price         Money  `gorm:"type:decimal(12,2);not null" json:"price"`
	OriginalPrice *Money `gorm:"type:decimal(12,2)" json:"original_price"`

	// PurchaseType affiliate 外链购买 / direct 站内下单
	PurchaseType string `gorm:"size:20;not null;default:affiliate" json:"purchase_type"`
	AffiliateURL string `gorm:"size:1000" json:"affiliate_url"`

	Condition     string `gorm:"size:20;default:new" json:"condition"`
	StockQuantity *int   `json:"stock_quantity"` // nil 表示不追踪库存
	SKU           string `gorm:"size:100" json:"sku"`

	Images    StringArray `gorm:"type:text" json:"images"`
	MainImage string      `gorm:"size:500" json:"main_image"`

	IsActive     bool `gorm:"index" json:"is_active"`
	IsFeatured   bool `gorm:"default:false;index" json:"is_featured"`
	IsBestseller bool `gorm:"default:false;index" json:"is_bestseller"`

	Rating      float64 `gorm:"default:0" json:"rating"`
	ReviewCount int     `gorm:"default:0" json:"review_count"`
	SalesCount  int     `gorm:"default:0" json:"sales_count"`
	ViewCount   int     `gorm:"default:0" json:"view_count"`
	SortOrder   int     `gorm:"default:0" json:"sort_order"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Category    *Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Subcategory *Category   `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`
	Brand       *Brand      `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	SEO         *ProductSEO `gorm:"foreignKey:ProductID" json:"seo,omitempty"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// IsAffiliate 是否为外链购买商品
func (p *Product) IsAffiliate() bool {
	return p.PurchaseType == constants.PurchaseTypeAffiliate
}

// InStock 是否可售：不追踪库存或剩余大于零
func (p *Product) InStock() bool {
	return p.StockQuantity == nil || *p.StockQuantity > 0
}

// HasEnoughStock 库存是否满足数量
func (p *Product) HasEnoughStock(qty int) bool {
	return p.StockQuantity == nil || *p.StockQuantity >= qty
}
