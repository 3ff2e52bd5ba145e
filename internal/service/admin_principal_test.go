package service

import (
	"testing"

	"github.com/linkmart/internal/models"
)

func TestSiteAdminPrincipal(t *testing.T) {
	principal := &SiteAdminPrincipal{Username: "root"}
	if principal.Subject() != "site_admin:root" {
		t.Fatalf("subject want site_admin:root got %s", principal.Subject())
	}
	if !principal.IsSuperuser() {
		t.Fatalf("site admin should be superuser")
	}
	ok, err := principal.HasPermission("/api/v1/admin/products", "DELETE")
	if err != nil || !ok {
		t.Fatalf("site admin should pass all checks, got ok=%v err=%v", ok, err)
	}
}

func TestDBAdminPrincipalSuperuserBypass(t *testing.T) {
	principal := &DBAdminPrincipal{Admin: &models.Admin{ID: 7, Username: "ops", IsSuper: true}}
	ok, err := principal.HasPermission("/api/v1/admin/settings", "PUT")
	if err != nil || !ok {
		t.Fatalf("superuser should bypass policy, got ok=%v err=%v", ok, err)
	}
}

func TestDBAdminPrincipalDeniedWithoutPolicy(t *testing.T) {
	principal := &DBAdminPrincipal{Admin: &models.Admin{ID: 8, Username: "viewer"}}
	ok, err := principal.HasPermission("/api/v1/admin/settings", "PUT")
	if err != nil {
		t.Fatalf("permission check failed: %v", err)
	}
	if ok {
		t.Fatalf("non-super admin without an enforcer should be denied")
	}
}

func TestDBAdminPrincipalDisplayName(t *testing.T) {
	withName := &DBAdminPrincipal{Admin: &models.Admin{Username: "ops", DisplayName: "Operations"}}
	if withName.DisplayName() != "Operations" {
		t.Fatalf("display name want Operations got %s", withName.DisplayName())
	}
	withoutName := &DBAdminPrincipal{Admin: &models.Admin{Username: "ops"}}
	if withoutName.DisplayName() != "ops" {
		t.Fatalf("display name fallback want ops got %s", withoutName.DisplayName())
	}
}
