package service

import (
	"errors"
	"testing"

	"github.com/linkmart/internal/constants"
	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupSettingServiceTest(t *testing.T) *SettingService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		t.Fatalf("migrate setting failed: %v", err)
	}
	return NewSettingService(repository.NewSettingRepository(db))
}

func TestSettingUpsertRoundTrip(t *testing.T) {
	svc := setupSettingServiceTest(t)

	created, err := svc.Upsert("setting_roundtrip_key", "first", "test key")
	if err != nil {
		t.Fatalf("upsert create failed: %v", err)
	}
	if created.Value != "first" {
		t.Fatalf("value want first got %s", created.Value)
	}

	updated, err := svc.Upsert("setting_roundtrip_key", "second", "")
	if err != nil {
		t.Fatalf("upsert overwrite failed: %v", err)
	}
	if updated.Value != "second" {
		t.Fatalf("value want second got %s", updated.Value)
	}
	if updated.ID != created.ID {
		t.Fatalf("upsert should keep the same row, want id %d got %d", created.ID, updated.ID)
	}

	got, err := svc.Get("setting_roundtrip_key")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Value != "second" {
		t.Fatalf("reloaded value want second got %s", got.Value)
	}
}

func TestSettingUpsertEmptyKeyRejected(t *testing.T) {
	svc := setupSettingServiceTest(t)
	if _, err := svc.Upsert("   ", "value", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank key want ErrInvalidInput got %v", err)
	}
}

func TestSettingGetValueFallback(t *testing.T) {
	svc := setupSettingServiceTest(t)
	value, err := svc.GetValue("setting_missing_key", "fallback")
	if err != nil {
		t.Fatalf("get value failed: %v", err)
	}
	if value != "fallback" {
		t.Fatalf("missing key want fallback got %s", value)
	}
}

func TestSettingDeleteMissing(t *testing.T) {
	svc := setupSettingServiceTest(t)
	if err := svc.Delete("setting_never_written"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete missing want ErrNotFound got %v", err)
	}
}

func TestSettingPublicConfigWhitelist(t *testing.T) {
	svc := setupSettingServiceTest(t)

	if _, err := svc.Upsert(constants.SettingKeySiteName, "LinkMart", ""); err != nil {
		t.Fatalf("upsert site name failed: %v", err)
	}
	if _, err := svc.Upsert("smtp_internal_password", "hunter2", ""); err != nil {
		t.Fatalf("upsert private key failed: %v", err)
	}

	public, err := svc.PublicConfig()
	if err != nil {
		t.Fatalf("public config failed: %v", err)
	}
	if public[constants.SettingKeySiteName] != "LinkMart" {
		t.Fatalf("whitelisted key missing from public config: %+v", public)
	}
	if _, ok := public["smtp_internal_password"]; ok {
		t.Fatalf("non-whitelisted key leaked into public config: %+v", public)
	}
}

func TestSettingUpsertKeepsDescriptionWhenOmitted(t *testing.T) {
	svc := setupSettingServiceTest(t)

	if _, err := svc.Upsert("setting_desc_keep_key", "v1", "支付网关开关"); err != nil {
		t.Fatalf("upsert create failed: %v", err)
	}
	updated, err := svc.Upsert("setting_desc_keep_key", "v2", "")
	if err != nil {
		t.Fatalf("upsert overwrite failed: %v", err)
	}
	if updated.Value != "v2" {
		t.Fatalf("value want v2 got %s", updated.Value)
	}
	if updated.Description != "支付网关开关" {
		t.Fatalf("description want kept got %q", updated.Description)
	}
}
