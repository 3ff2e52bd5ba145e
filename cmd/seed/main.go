package main

import (
	"github.com/linkmart/internal/config"
	"github.com/linkmart/internal/constants"
	"github.com/linkmart/internal/logger"
	"github.com/linkmart/internal/models"

	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	db, err := models.InitDB(cfg.Database, cfg.Server.Mode)
	if err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	seedCategories(db, stdLog.Printf)
	seedBrands(db, stdLog.Printf)
	seedProducts(db, stdLog.Printf)
	seedSettings(db, stdLog.Printf)
	seedPages(db, stdLog.Printf)
	seedBanners(db, stdLog.Printf)

	stdLog.Println("Seed completed.")
}

type logf func(format string, args ...interface{})

func seedCategories(db *gorm.DB, log logf) {
	roots := []models.Category{
		{Name: "Electronics", Slug: "electronics", SortOrder: 1, IsActive: true},
		{Name: "Home & Kitchen", Slug: "home-kitchen", SortOrder: 2, IsActive: true},
		{Name: "Outdoors", Slug: "outdoors", SortOrder: 3, IsActive: true},
	}
	for i := range roots {
		if err := firstOrCreateBySlug(db, &roots[i], roots[i].Slug); err != nil {
			log("seed category %s failed: %v", roots[i].Slug, err)
		}
	}

	subs := []struct {
		parentSlug string
		category   models.Category
	}{
		{"electronics", models.Category{Name: "Headphones", Slug: "headphones", SortOrder: 1, IsActive: true}},
		{"electronics", models.Category{Name: "Smart Home", Slug: "smart-home", SortOrder: 2, IsActive: true}},
		{"home-kitchen", models.Category{Name: "Coffee & Tea", Slug: "coffee-tea", SortOrder: 1, IsActive: true}},
		{"outdoors", models.Category{Name: "Camping", Slug: "camping", SortOrder: 1, IsActive: true}},
	}
	for _, item := range subs {
		var parent models.Category
		if err := db.Where("slug = ?", item.parentSlug).First(&parent).Error; err != nil {
			log("seed subcategory %s skipped, parent missing: %v", item.category.Slug, err)
			continue
		}
		item.category.ParentID = &parent.ID
		if err := firstOrCreateBySlug(db, &item.category, item.category.Slug); err != nil {
			log("seed subcategory %s failed: %v", item.category.Slug, err)
		}
	}
}

func seedBrands(db *gorm.DB, log logf) {
	brands := []models.Brand{
		{Name: "Aurora Audio", Slug: "aurora-audio", SortOrder: 1, IsActive: true},
		{Name: "Northwind Gear", Slug: "northwind-gear", SortOrder: 2, IsActive: true},
		{Name: "BrewCraft", Slug: "brewcraft", SortOrder: 3, IsActive: true},
	}
	for i := range brands {
		if err := firstOrCreateBySlug(db, &brands[i], brands[i].Slug); err != nil {
			log("seed brand %s failed: %v", brands[i].Slug, err)
		}
	}
}

func seedProducts(db *gorm.DB, log logf) {
	var electronics, headphones models.Category
	if err := db.Where("slug = ?", "electronics").First(&electronics).Error; err != nil {
		log("seed products skipped, categories missing: %v", err)
		return
	}
	_ = db.Where("slug = ?", "headphones").First(&headphones).Error

	var aurora models.Brand
	_ = db.Where("slug = ?", "aurora-audio").First(&aurora).Error

	stock := 25
	products := []models.Product{
		{
			CategoryID:   electronics.ID,
			Name:         "Aurora ANC Wireless Headphones",
			Slug:         "aurora-anc-wireless-headphones",
			ShortDesc:    "Over-ear noise cancelling headphones with 40h battery life.",
			Price:        models.NewMoneyFromFloat(129.99),
			PurchaseType: constants.PurchaseTypeAffiliate,
			AffiliateURL: "https://example.com/affiliate/aurora-anc",
			Condition:    constants.ProductConditionNew,
			MainImage:    "/uploads/products/aurora-anc.jpg",
			IsActive:     true,
			IsFeatured:   true,
		},
		{
			CategoryID:    electronics.ID,
			Name:          "Aurora Pods Mini",
			Slug:          "aurora-pods-mini",
			ShortDesc:     "Compact true wireless earbuds, USB-C charging case.",
			Price:         models.NewMoneyFromFloat(49.00),
			PurchaseType:  constants.PurchaseTypeDirect,
			Condition:     constants.ProductConditionNew,
			StockQuantity: &stock,
			SKU:           "AUR-PODS-MINI",
			MainImage:     "/uploads/products/aurora-pods-mini.jpg",
			IsActive:      true,
			IsBestseller:  true,
		},
	}
	if headphones.ID != 0 {
		for i := range products {
			products[i].SubcategoryID = &headphones.ID
		}
	}
	if aurora.ID != 0 {
		for i := range products {
			products[i].BrandID = &aurora.ID
		}
	}
	for i := range products {
		if err := firstOrCreateBySlug(db, &products[i], products[i].Slug); err != nil {
			log("seed product %s failed: %v", products[i].Slug, err)
		}
	}
}

func seedSettings(db *gorm.DB, log logf) {
	settings := []models.Setting{
		{KeyName: constants.SettingKeySiteName, Value: "LinkMart", Description: "Site display name"},
		{KeyName: constants.SettingKeySiteTagline, Value: "Curated deals, honest picks", Description: "Homepage tagline"},
		{KeyName: constants.SettingKeyContactEmail, Value: "hello@linkmart.example", Description: "Public contact email"},
	}
	for i := range settings {
		err := db.Where("key_name = ?", settings[i].KeyName).
			FirstOrCreate(&settings[i]).Error
		if err != nil {
			log("seed setting %s failed: %v", settings[i].KeyName, err)
		}
	}
}

func seedPages(db *gorm.DB, log logf) {
	pages := []models.Page{
		{
			Slug:        "about",
			Title:       "About LinkMart",
			Content:     "LinkMart hand-picks products worth buying and links you to the best price.",
			IsPublished: true,
		},
		{
			Slug:        "privacy",
			Title:       "Privacy Policy",
			Content:     "We collect only what we need to run the store.",
			IsPublished: true,
		},
	}
	for i := range pages {
		if err := firstOrCreateBySlug(db, &pages[i], pages[i].Slug); err != nil {
			log("seed page %s failed: %v", pages[i].Slug, err)
		}
	}
}

func seedBanners(db *gorm.DB, log logf) {
	banner := models.BannerAd{
		Title:     "Autumn Audio Sale",
		Subtitle:  "Up to 40% off featured headphones",
		ImageURL:  "/uploads/banners/autumn-audio.jpg",
		LinkURL:   "/products?featured=true",
		Placement: "home",
		IsActive:  true,
	}
	err := db.Where("title = ? AND placement = ?", banner.Title, banner.Placement).
		FirstOrCreate(&banner).Error
	if err != nil {
		log("seed banner failed: %v", err)
	}
}

func firstOrCreateBySlug(db *gorm.DB, record interface{}, slug string) error {
	return db.Where("slug = ?", slug).FirstOrCreate(record).Error
}
