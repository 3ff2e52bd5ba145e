package service

import (
	"errors"
	"testing"
	"time"

	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupBannerServiceTest(t *testing.T) (*BannerService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.BannerAd{}, &models.ProductBannerAd{}); err != nil {
		t.Fatalf("migrate banner tables failed: %v", err)
	}
	svc := NewBannerService(
		repository.NewBannerAdRepository(db),
		repository.NewProductBannerAdRepository(db),
		nil,
	)
	return svc, db
}

func seedBanner(t *testing.T, db *gorm.DB, title string, active bool, startsAt, endsAt *time.Time, createdAt time.Time) *models.BannerAd {
	t.Helper()
	banner := models.BannerAd{
		Title:     title,
		ImageURL:  "https://cdn.example.com/banner.jpg",
		Placement: "home-latest",
		IsActive:  active,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
	}
	if err := db.Create(&banner).Error; err != nil {
		t.Fatalf("seed banner %s failed: %v", title, err)
	}
	// created_at 由测试控制，验证“最新”排序
	if err := db.Model(&models.BannerAd{}).Where("id = ?", banner.ID).
		UpdateColumn("created_at", createdAt).Error; err != nil {
		t.Fatalf("backdate banner %s failed: %v", title, err)
	}
	return &banner
}

func TestLatestBannerSelection(t *testing.T) {
	svc, db := setupBannerServiceTest(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	longAgo := now.Add(-48 * time.Hour)

	seedBanner(t, db, "inactive", false, nil, nil, now.Add(-time.Minute))
	seedBanner(t, db, "not started", true, &future, nil, now.Add(-time.Minute))
	seedBanner(t, db, "already ended", true, nil, &past, now.Add(-time.Minute))
	seedBanner(t, db, "eligible old", true, &longAgo, &future, now.Add(-time.Hour))
	want := seedBanner(t, db, "eligible newest", true, nil, nil, now.Add(-time.Minute))

	got, err := svc.LatestBanner("home-latest", now)
	if err != nil {
		t.Fatalf("latest banner failed: %v", err)
	}
	if got == nil || got.ID != want.ID {
		t.Fatalf("latest banner want %d got %+v", want.ID, got)
	}
}

func TestLatestBannerNoneEligible(t *testing.T) {
	svc, db := setupBannerServiceTest(t)
	now := time.Now()
	past := now.Add(-time.Hour)
	seedBanner(t, db, "expired only", true, nil, &past, past)

	got, err := svc.LatestBanner("home-empty-placement", now)
	if err != nil {
		t.Fatalf("latest banner failed: %v", err)
	}
	if got != nil {
		t.Fatalf("no eligible banner should return nil, got %+v", got)
	}
}

func seedProductBanner(t *testing.T, db *gorm.DB, name string, active, paid bool, expiresAt *time.Time, createdAt time.Time) *models.ProductBannerAd {
	t.Helper()
	banner := models.ProductBannerAd{
		ProductName: name,
		ImageURL:    "https://cdn.example.com/product-banner.jpg",
		TargetURL:   "https://cdn.example.com/p/1",
		IsActive:    active,
		IsPaid:      paid,
		ExpiresAt:   expiresAt,
	}
	if err := db.Create(&banner).Error; err != nil {
		t.Fatalf("seed product banner %s failed: %v", name, err)
	}
	if err := db.Model(&models.ProductBannerAd{}).Where("id = ?", banner.ID).
		UpdateColumn("created_at", createdAt).Error; err != nil {
		t.Fatalf("backdate product banner %s failed: %v", name, err)
	}
	return &banner
}

func TestLatestProductBannerRequiresPayment(t *testing.T) {
	svc, db := setupBannerServiceTest(t)
	if err := db.Where("1 = 1").Delete(&models.ProductBannerAd{}).Error; err != nil {
		t.Fatalf("clear product banners failed: %v", err)
	}

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	seedProductBanner(t, db, "unpaid", true, false, nil, now.Add(-time.Minute))
	seedProductBanner(t, db, "paid expired", true, true, &past, now.Add(-time.Minute))
	seedProductBanner(t, db, "paid inactive", false, true, nil, now.Add(-time.Minute))
	old := seedProductBanner(t, db, "paid old", true, true, &future, now.Add(-time.Hour))
	want := seedProductBanner(t, db, "paid newest", true, true, nil, now.Add(-time.Minute))

	got, err := svc.LatestProductBanner(now)
	if err != nil {
		t.Fatalf("latest product banner failed: %v", err)
	}
	if got == nil || got.ID != want.ID {
		t.Fatalf("latest product banner want %d got %+v", want.ID, got)
	}

	// 最新的下线后回退到次新的
	if err := db.Model(&models.ProductBannerAd{}).Where("id = ?", want.ID).
		UpdateColumn("is_active", false).Error; err != nil {
		t.Fatalf("deactivate banner failed: %v", err)
	}
	got, err = svc.LatestProductBanner(now)
	if err != nil {
		t.Fatalf("latest product banner after deactivate failed: %v", err)
	}
	if got == nil || got.ID != old.ID {
		t.Fatalf("fallback want %d got %+v", old.ID, got)
	}
}

func TestMarkProductBannerPaid(t *testing.T) {
	svc, _ := setupBannerServiceTest(t)

	banner, err := svc.CreateProductBanner(ProductBannerAdInput{
		ProductName: "Promo Pad",
		ImageURL:    "https://cdn.example.com/promo.jpg",
		TargetURL:   "https://shop.example.com/p/promo",
	})
	if err != nil {
		t.Fatalf("create product banner failed: %v", err)
	}
	if banner.IsPaid {
		t.Fatalf("new product banner should start unpaid")
	}

	paidAt := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	if err := svc.MarkProductBannerPaid(banner.ID, paidAt, 30); err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}

	reloaded, err := svc.GetProductBanner(banner.ID)
	if err != nil {
		t.Fatalf("reload banner failed: %v", err)
	}
	if !reloaded.IsPaid || !reloaded.IsActive {
		t.Fatalf("paid banner should be active and paid: %+v", reloaded)
	}
	if reloaded.ExpiresAt == nil || !reloaded.ExpiresAt.Equal(paidAt.AddDate(0, 0, 30)) {
		t.Fatalf("expiry want %v got %v", paidAt.AddDate(0, 0, 30), reloaded.ExpiresAt)
	}

	if err := svc.MarkProductBannerPaid(banner.ID+10000, paidAt, 30); !errors.Is(err, ErrNotFound) {
		t.Fatalf("mark paid missing banner want ErrNotFound got %v", err)
	}
}

func TestBannerClickCount(t *testing.T) {
	svc, db := setupBannerServiceTest(t)
	banner := seedBanner(t, db, "click target", true, nil, nil, time.Now())

	if err := svc.RecordBannerClick(banner.ID); err != nil {
		t.Fatalf("record click failed: %v", err)
	}
	if err := svc.RecordBannerClick(banner.ID); err != nil {
		t.Fatalf("record second click failed: %v", err)
	}

	var reloaded models.BannerAd
	if err := db.First(&reloaded, banner.ID).Error; err != nil {
		t.Fatalf("reload banner failed: %v", err)
	}
	if reloaded.ClickCount != 2 {
		t.Fatalf("click count want 2 got %d", reloaded.ClickCount)
	}
}

func TestBannerDateWindowValidation(t *testing.T) {
	svc, _ := setupBannerServiceTest(t)
	start := time.Now()
	end := start.Add(-time.Hour)
	_, err := svc.CreateBanner(BannerAdInput{
		Title:    "Backwards window",
		ImageURL: "https://cdn.example.com/x.jpg",
		StartsAt: &start,
		EndsAt:   &end,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("ends before starts want ErrInvalidInput got %v", err)
	}
}

func TestCreateBannerInactiveStaysInactive(t *testing.T) {
	svc, db := setupBannerServiceTest(t)

	inactive := false
	banner, err := svc.CreateBanner(BannerAdInput{
		Title:     "Draft banner",
		ImageURL:  "https://cdn.example.com/draft.jpg",
		Placement: "home-draft-check",
		IsActive:  &inactive,
	})
	if err != nil {
		t.Fatalf("create banner failed: %v", err)
	}

	// 显式创建为停用的横幅不能被写成启用
	var reloaded models.BannerAd
	if err := db.First(&reloaded, banner.ID).Error; err != nil {
		t.Fatalf("reload banner failed: %v", err)
	}
	if reloaded.IsActive {
		t.Fatalf("banner created inactive must stay inactive")
	}

	got, err := svc.LatestBanner("home-draft-check", time.Now())
	if err != nil {
		t.Fatalf("latest banner failed: %v", err)
	}
	if got != nil {
		t.Fatalf("inactive banner must not be served, got %+v", got)
	}
}

func TestCreateProductBannerInactiveStaysInactive(t *testing.T) {
	svc, db := setupBannerServiceTest(t)

	inactive := false
	banner, err := svc.CreateProductBanner(ProductBannerAdInput{
		ProductName: "Draft product spot",
		ImageURL:    "https://cdn.example.com/spot.jpg",
		TargetURL:   "https://example.com/spot",
		IsActive:    &inactive,
	})
	if err != nil {
		t.Fatalf("create product banner failed: %v", err)
	}

	var reloaded models.ProductBannerAd
	if err := db.First(&reloaded, banner.ID).Error; err != nil {
		t.Fatalf("reload product banner failed: %v", err)
	}
	if reloaded.IsActive {
		t.Fatalf("product banner created inactive must stay inactive")
	}
	if reloaded.IsPaid {
		t.Fatalf("new product banner must start unpaid")
	}
}
