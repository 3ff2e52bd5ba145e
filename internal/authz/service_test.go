package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceAdminWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("catalog", "/admin/products/:id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.SetAdminRoles(1, []string{"catalog"}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}

	allow, err := svc.EnforceAdmin(1, "/api/v1/admin/products/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceAdmin(1, "/api/v1/admin/products/42", "DELETE")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestEnforceWildcardAction(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("editor", "/admin/pages/:id", "*"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.SetAdminRoles(3, []string{"editor"}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}

	for _, action := range []string{"GET", "PUT", "DELETE"} {
		allow, err := svc.EnforceAdmin(3, "/api/v1/admin/pages/7", action)
		if err != nil {
			t.Fatalf("enforce %s failed: %v", action, err)
		}
		if !allow {
			t.Fatalf("wildcard action should allow %s", action)
		}
	}
}

func TestSetAdminRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("catalog", "/admin/products", "GET"); err != nil {
		t.Fatalf("grant catalog policy failed: %v", err)
	}
	if err := svc.GrantRolePolicy("orders", "/admin/orders", "GET"); err != nil {
		t.Fatalf("grant orders policy failed: %v", err)
	}

	if err := svc.SetAdminRoles(2, []string{"catalog"}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	roles, err := svc.GetAdminRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:catalog" {
		t.Fatalf("roles want [role:catalog], got=%v", roles)
	}

	if err := svc.SetAdminRoles(2, []string{"orders"}); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}
	roles, err = svc.GetAdminRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:orders" {
		t.Fatalf("roles want [role:orders], got=%v", roles)
	}

	allow, err := svc.EnforceAdmin(2, "/api/v1/admin/products", "GET")
	if err != nil {
		t.Fatalf("enforce after override failed: %v", err)
	}
	if allow {
		t.Fatalf("replaced role should lose old permissions")
	}
}

func TestRevokeRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("temp", "/admin/settings", "GET"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if err := svc.SetAdminRoles(4, []string{"temp"}); err != nil {
		t.Fatalf("set roles failed: %v", err)
	}

	allow, err := svc.EnforceAdmin(4, "/api/v1/admin/settings", "GET")
	if err != nil || !allow {
		t.Fatalf("expected allow before revoke, got allow=%v err=%v", allow, err)
	}

	if err := svc.RevokeRolePolicy("temp", "/admin/settings", "GET"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	allow, err = svc.EnforceAdmin(4, "/api/v1/admin/settings", "GET")
	if err != nil {
		t.Fatalf("enforce after revoke failed: %v", err)
	}
	if allow {
		t.Fatalf("expected deny after revoke")
	}
}

func TestBootstrapRolesIdempotent(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := BootstrapRoles(svc); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if err := BootstrapRoles(svc); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	want := map[string]bool{
		RoleCatalogManager: false,
		RoleOrderManager:   false,
		RoleContentEditor:  false,
	}
	for _, role := range roles {
		if _, ok := want[role]; ok {
			want[role] = true
		}
	}
	for role, seen := range want {
		if !seen {
			t.Fatalf("builtin role %s missing from %v", role, roles)
		}
	}

	// 内置目录角色能管商品但动不了设置
	if err := svc.SetAdminRoles(9, []string{RoleCatalogManager}); err != nil {
		t.Fatalf("assign builtin role failed: %v", err)
	}
	allow, err := svc.EnforceAdmin(9, "/api/v1/admin/products/3", "PUT")
	if err != nil || !allow {
		t.Fatalf("catalog manager should manage products, allow=%v err=%v", allow, err)
	}
	allow, err = svc.EnforceAdmin(9, "/api/v1/admin/settings", "PUT")
	if err != nil {
		t.Fatalf("enforce settings failed: %v", err)
	}
	if allow {
		t.Fatalf("catalog manager should not touch settings")
	}
}

func TestNormalizeHelpers(t *testing.T) {
	if got := NormalizeObject("/api/v1/admin/orders/9"); got != "/admin/orders/9" {
		t.Fatalf("object want /admin/orders/9 got %s", got)
	}
	if got := NormalizeObject("admin/orders"); got != "/admin/orders" {
		t.Fatalf("object want /admin/orders got %s", got)
	}
	if got := NormalizeObject(""); got != "/" {
		t.Fatalf("empty object want / got %s", got)
	}
	if got := NormalizeAction(" get "); got != "GET" {
		t.Fatalf("action want GET got %s", got)
	}
	if got := SubjectForAdmin(7); got != "admin:7" {
		t.Fatalf("subject want admin:7 got %s", got)
	}
	if _, err := NormalizeRole("  "); err == nil {
		t.Fatalf("blank role should fail")
	}
	normalized, err := NormalizeRole("catalog manager")
	if err != nil {
		t.Fatalf("normalize role failed: %v", err)
	}
	if normalized != "role:catalog_manager" {
		t.Fatalf("role want role:catalog_manager got %s", normalized)
	}
}
