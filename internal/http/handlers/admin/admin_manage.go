package admin

import (
	"strings"

	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/repository"
	"github.com/linkmart/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminRequest 管理员请求
type AdminRequest struct {
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	DisplayName string   `json:"display_name"`
	Email       string   `json:"email"`
	IsSuper     *bool    `json:"is_super"`
	IsActive    *bool    `json:"is_active"`
	Roles       []string `json:"roles"`
}

func (r AdminRequest) toInput() service.AdminInput {
	return service.AdminInput{
		Username:    r.Username,
		Password:    r.Password,
		DisplayName: r.DisplayName,
		Email:       r.Email,
		IsSuper:     r.IsSuper,
		IsActive:    r.IsActive,
		Roles:       r.Roles,
	}
}

// GetAdmins 管理员列表，附带角色
func (h *Handler) GetAdmins(c *gin.Context) {
	page, pageSize := parsePagination(c)

	admins, total, roles, err := h.AdminService.List(repository.AdminListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch admins", err)
		return
	}
	response.SuccessWithPage(c, gin.H{
		"admins": admins,
		"roles":  roles,
	}, response.BuildPagination(page, pageSize, total))
}

// CreateAdmin 创建管理员
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req AdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	admin, err := h.AdminService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, admin)
}

// UpdateAdmin 更新管理员，停用会提升令牌版本使旧 JWT 失效
func (h *Handler) UpdateAdmin(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req AdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	admin, err := h.AdminService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, admin)
}

// ResetAdminPasswordRequest 重置管理员密码请求
type ResetAdminPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

// ResetAdminPassword 重置管理员密码
func (h *Handler) ResetAdminPassword(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ResetAdminPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.AdminService.ResetPassword(c.Request.Context(), id, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"reset": true})
}

// DeleteAdmin 删除管理员
func (h *Handler) DeleteAdmin(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.AdminService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetRoles 角色列表
func (h *Handler) GetRoles(c *gin.Context) {
	roles, err := h.AdminService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch roles", err)
		return
	}
	response.Success(c, roles)
}

// GetRolePolicies 角色的权限策略
func (h *Handler) GetRolePolicies(c *gin.Context) {
	role := strings.TrimSpace(c.Param("role"))
	if role == "" {
		respondError(c, response.CodeBadRequest, "invalid role", nil)
		return
	}
	policies, err := h.AdminService.GetRolePolicies(role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, policies)
}

// RolePolicyRequest 角色策略请求
type RolePolicyRequest struct {
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// GrantRolePolicy 给角色授予策略
func (h *Handler) GrantRolePolicy(c *gin.Context) {
	role := strings.TrimSpace(c.Param("role"))
	if role == "" {
		respondError(c, response.CodeBadRequest, "invalid role", nil)
		return
	}
	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.AdminService.GrantRolePolicy(role, req.Object, req.Action); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"granted": true})
}

// RevokeRolePolicy 撤销角色策略
func (h *Handler) RevokeRolePolicy(c *gin.Context) {
	role := strings.TrimSpace(c.Param("role"))
	if role == "" {
		respondError(c, response.CodeBadRequest, "invalid role", nil)
		return
	}
	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.AdminService.RevokeRolePolicy(role, req.Object, req.Action); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"revoked": true})
}

// DeleteRole 删除角色及其策略
func (h *Handler) DeleteRole(c *gin.Context) {
	role := strings.TrimSpace(c.Param("role"))
	if role == "" {
		respondError(c, response.CodeBadRequest, "invalid role", nil)
		return
	}
	if err := h.AdminService.DeleteRole(role); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
