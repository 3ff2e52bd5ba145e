package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page          int
	PageSize      int
	CategoryID    uint
	SubcategoryID uint
	BrandID       uint
	Search        string
	Condition     string
	PurchaseType  string
	MinPrice      string
	MaxPrice      string
	OnlyActive    bool
	OnlyFeatured  bool
	OnlyBestseller bool
	InStockOnly   bool
	OrderBy       string
	WithRelations bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page          int
	PageSize      int
	CustomerID    uint
	Status        string
	PaymentStatus string
	OrderNo       string
	Email         string
	Search        string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// PaymentListFilter 查询支付记录列表的过滤条件
type PaymentListFilter struct {
	Page        int
	PageSize    int
	OrderID     uint
	Status      string
	Email       string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// CustomerListFilter 查询顾客列表的过滤条件
type CustomerListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	OnlyActive  bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// BannerAdListFilter 查询站点横幅列表的过滤条件
type BannerAdListFilter struct {
	Page      int
	PageSize  int
	Placement string
	IsActive  *bool
	OnlyValid bool
}

// ProductBannerAdListFilter 查询商品推广横幅列表的过滤条件
type ProductBannerAdListFilter struct {
	Page      int
	PageSize  int
	IsActive  *bool
	IsPaid    *bool
	OnlyValid bool
	Search    string
}

// AnalyticsListFilter 查询分析事件列表的过滤条件
type AnalyticsListFilter struct {
	Page        int
	PageSize    int
	EventType   string
	ProductID   uint
	SessionID   string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ContactListFilter 查询联系留言列表的过滤条件
type ContactListFilter struct {
	Page      int
	PageSize  int
	Search    string
	OnlyOpen  bool
}

// PageListFilter 查询静态页面列表的过滤条件
type PageListFilter struct {
	Page          int
	PageSize      int
	OnlyPublished bool
	Search        string
}

// AdminListFilter 查询管理员列表的过滤条件
type AdminListFilter struct {
	Page     int
	PageSize int
	Keyword  string
}
