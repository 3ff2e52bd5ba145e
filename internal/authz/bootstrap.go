package authz

import (
	applog "github.com/linkmart/internal/logger"
)

// 内置角色
const (
	RoleCatalogManager = "role:catalog_manager"
	RoleOrderManager   = "role:order_manager"
	RoleContentEditor  = "role:content_editor"
)

// 策略对象与后台路由的 FullPath 一一对应（去掉 /api/v1 前缀）
var defaultRolePolicies = map[string][]Policy{
	RoleCatalogManager: {
		{Object: "/admin/categories", Action: "*"},
		{Object: "/admin/categories/:id", Action: "*"},
		{Object: "/admin/brands", Action: "*"},
		{Object: "/admin/brands/:id", Action: "*"},
		{Object: "/admin/products", Action: "*"},
		{Object: "/admin/products/:id", Action: "*"},
		{Object: "/admin/products/:id/reset-sales", Action: "POST"},
		{Object: "/admin/products/:id/seo", Action: "*"},
	},
	RoleOrderManager: {
		{Object: "/admin/orders", Action: "GET"},
		{Object: "/admin/orders/:id", Action: "*"},
		{Object: "/admin/orders/:id/status", Action: "PUT"},
		{Object: "/admin/orders/:id/cancel", Action: "POST"},
		{Object: "/admin/orders/:id/mark-paid", Action: "POST"},
		{Object: "/admin/customers", Action: "GET"},
		{Object: "/admin/customers/:id", Action: "GET"},
		{Object: "/admin/payments", Action: "GET"},
		{Object: "/admin/payments/:id", Action: "GET"},
	},
	RoleContentEditor: {
		{Object: "/admin/pages", Action: "*"},
		{Object: "/admin/pages/:id", Action: "*"},
		{Object: "/admin/banners", Action: "*"},
		{Object: "/admin/banners/:id", Action: "*"},
		{Object: "/admin/product-banners", Action: "*"},
		{Object: "/admin/product-banners/:id", Action: "*"},
		{Object: "/admin/product-banners/:id/mark-paid", Action: "POST"},
		{Object: "/admin/settings", Action: "GET"},
	},
}

// BootstrapRoles 初始化内置角色及其默认策略，可重复执行
func BootstrapRoles(svc *Service) error {
	if svc == nil {
		return nil
	}
	for role, policies := range defaultRolePolicies {
		if _, err := svc.EnsureRole(role); err != nil {
			return err
		}
		for _, p := range policies {
			if err := svc.GrantRolePolicy(role, p.Object, p.Action); err != nil {
				return err
			}
		}
	}
	applog.Infow("authz_roles_bootstrapped", "roles", len(defaultRolePolicies))
	return nil
}
