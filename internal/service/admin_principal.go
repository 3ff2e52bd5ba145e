package service

import (
	"github.com/linkmart/internal/authz"
	"github.com/linkmart/internal/models"
)

// AdminPrincipal 统一管理员主体
// 站点管理员（配置单账号）与数据库管理员走同一个鉴权入口
type AdminPrincipal interface {
	// Subject 主体标识，写入审计日志
	Subject() string
	// DisplayName 展示名称
	DisplayName() string
	// IsSuperuser 是否拥有全部权限
	IsSuperuser() bool
	// HasPermission 是否允许对资源执行操作
	HasPermission(object, action string) (bool, error)
}

// SiteAdminPrincipal 站点管理员主体，拥有全部权限
type SiteAdminPrincipal struct {
	Username string
}

// Subject 主体标识
func (p *SiteAdminPrincipal) Subject() string {
	return "site_admin:" + p.Username
}

// DisplayName 展示名称
func (p *SiteAdminPrincipal) DisplayName() string {
	return p.Username
}

// IsSuperuser 站点管理员视为超级管理员
func (p *SiteAdminPrincipal) IsSuperuser() bool {
	return true
}

// HasPermission 站点管理员放行全部操作
func (p *SiteAdminPrincipal) HasPermission(object, action string) (bool, error) {
	return true, nil
}

// DBAdminPrincipal 数据库管理员主体，权限由 casbin 策略决定
type DBAdminPrincipal struct {
	Admin *models.Admin
	Authz *authz.Service
}

// Subject 主体标识
func (p *DBAdminPrincipal) Subject() string {
	return authz.SubjectForAdmin(p.Admin.ID)
}

// DisplayName 展示名称
func (p *DBAdminPrincipal) DisplayName() string {
	if p.Admin.DisplayName != "" {
		return p.Admin.DisplayName
	}
	return p.Admin.Username
}

// IsSuperuser 是否超级管理员
func (p *DBAdminPrincipal) IsSuperuser() bool {
	return p.Admin.IsSuper
}

// HasPermission 超级管理员直通，其余走策略
func (p *DBAdminPrincipal) HasPermission(object, action string) (bool, error) {
	if p.Admin.IsSuper {
		return true, nil
	}
	if p.Authz == nil {
		return false, nil
	}
	return p.Authz.EnforceAdmin(p.Admin.ID, object, action)
}
