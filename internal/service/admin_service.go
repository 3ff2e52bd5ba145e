package service

import (
	"context"
	"strings"

	"github.com/linkmart/internal/authz"
	"github.com/linkmart/internal/cache"
	"github.com/linkmart/internal/config"
	"github.com/linkmart/internal/logger"
	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AdminService 管理员账号与角色管理
type AdminService struct {
	repo   repository.AdminRepository
	authz  *authz.Service
	policy config.PasswordPolicyConfig
}

// NewAdminService 创建管理员管理服务
func NewAdminService(repo repository.AdminRepository, authzService *authz.Service, policy config.PasswordPolicyConfig) *AdminService {
	return &AdminService{repo: repo, authz: authzService, policy: policy}
}

// AdminInput 创建/更新管理员输入
type AdminInput struct {
	Username    string
	Password    string
	DisplayName string
	Email       string
	IsSuper     *bool
	IsActive    *bool
	Roles       []string
}

// List 管理员列表，附带角色
func (s *AdminService) List(filter repository.AdminListFilter) ([]models.Admin, int64, map[uint][]string, error) {
	admins, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, nil, err
	}
	roles := make(map[uint][]string, len(admins))
	if s.authz != nil {
		for _, admin := range admins {
			adminRoles, err := s.authz.GetAdminRoles(admin.ID)
			if err != nil {
				return nil, 0, nil, err
			}
			roles[admin.ID] = adminRoles
		}
	}
	return admins, total, roles, nil
}

// Get 根据 ID 获取管理员
func (s *AdminService) Get(id uint) (*models.Admin, error) {
	admin, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotFound
	}
	return admin, nil
}

// Create 创建管理员账号
func (s *AdminService) Create(input AdminInput) (*models.Admin, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrInvalidInput
	}
	if err := validatePassword(s.policy, input.Password); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := models.Admin{
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		IsActive:     true,
	}
	if input.IsSuper != nil {
		admin.IsSuper = *input.IsSuper
	}
	if input.IsActive != nil {
		admin.IsActive = *input.IsActive
	}
	if err := s.repo.Create(&admin); err != nil {
		return nil, err
	}
	if s.authz != nil && len(input.Roles) > 0 {
		if err := s.authz.SetAdminRoles(admin.ID, input.Roles); err != nil {
			return nil, err
		}
	}
	logger.Infow("admin_created", "admin_id", admin.ID, "username", admin.Username)
	return &admin, nil
}

// Update 更新管理员账号
func (s *AdminService) Update(ctx context.Context, id uint, input AdminInput) (*models.Admin, error) {
	admin, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	admin.DisplayName = strings.TrimSpace(input.DisplayName)
	admin.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.IsSuper != nil {
		admin.IsSuper = *input.IsSuper
	}
	deactivated := false
	if input.IsActive != nil {
		deactivated = admin.IsActive && !*input.IsActive
		admin.IsActive = *input.IsActive
	}
	if deactivated {
		admin.TokenVersion++
	}
	if err := s.repo.Update(admin); err != nil {
		return nil, err
	}
	if input.Roles != nil && s.authz != nil {
		if err := s.authz.SetAdminRoles(admin.ID, input.Roles); err != nil {
			return nil, err
		}
	}
	if err := cache.DelAdminAuthState(ctx, admin.ID); err != nil {
		logger.Warnw("admin_auth_state_evict_failed", "admin_id", admin.ID, "error", err)
	}
	return admin, nil
}

// ResetPassword 管理端重置管理员密码，旧 JWT 全部失效
func (s *AdminService) ResetPassword(ctx context.Context, id uint, newPassword string) error {
	admin, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := validatePassword(s.policy, newPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin.PasswordHash = string(hash)
	admin.TokenVersion++
	if err := s.repo.Update(admin); err != nil {
		return err
	}
	if err := cache.DelAdminAuthState(ctx, id); err != nil {
		logger.Warnw("admin_auth_state_evict_failed", "admin_id", id, "error", err)
	}
	logger.Infow("admin_password_reset", "admin_id", id)
	return nil
}

// Delete 删除管理员账号并清除角色绑定
func (s *AdminService) Delete(ctx context.Context, id uint) error {
	admin, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(admin.ID); err != nil {
		return err
	}
	if s.authz != nil {
		if err := s.authz.SetAdminRoles(admin.ID, nil); err != nil {
			logger.Warnw("admin_roles_clear_failed", "admin_id", admin.ID, "error", err)
		}
	}
	if err := cache.DelAdminAuthState(ctx, admin.ID); err != nil {
		logger.Warnw("admin_auth_state_evict_failed", "admin_id", admin.ID, "error", err)
	}
	logger.Infow("admin_deleted", "admin_id", admin.ID)
	return nil
}

// ListRoles 角色列表
func (s *AdminService) ListRoles() ([]string, error) {
	if s.authz == nil {
		return nil, nil
	}
	return s.authz.ListRoles()
}

// GetRolePolicies 查询角色权限
func (s *AdminService) GetRolePolicies(role string) ([]authz.Policy, error) {
	if s.authz == nil {
		return nil, nil
	}
	return s.authz.GetRolePolicies(role)
}

// GrantRolePolicy 授予角色权限
func (s *AdminService) GrantRolePolicy(role, object, action string) error {
	if s.authz == nil {
		return ErrInvalidInput
	}
	return s.authz.GrantRolePolicy(role, object, action)
}

// RevokeRolePolicy 回收角色权限
func (s *AdminService) RevokeRolePolicy(role, object, action string) error {
	if s.authz == nil {
		return ErrInvalidInput
	}
	return s.authz.RevokeRolePolicy(role, object, action)
}

// DeleteRole 删除角色
func (s *AdminService) DeleteRole(role string) error {
	if s.authz == nil {
		return ErrInvalidInput
	}
	return s.authz.DeleteRole(role)
}

// GetAdminRoles 查询管理员角色
func (s *AdminService) GetAdminRoles(adminID uint) ([]string, error) {
	if s.authz == nil {
		return nil, nil
	}
	return s.authz.GetAdminRoles(adminID)
}
