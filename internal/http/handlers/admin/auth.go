package admin

import (
	"github.com/linkmart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// LoginRequest 管理员登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 管理员登录
// 优先匹配配置文件站点管理员，未命中再走数据库管理员。
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if h.SiteAdminService != nil && h.SiteAdminService.Enabled() {
		if out, err := h.SiteAdminService.Login(req.Username, req.Password); err == nil {
			response.Success(c, gin.H{
				"token":      out.Token,
				"expires_at": out.ExpiresAt,
				"admin_type": "site_admin",
				"username":   out.Username,
			})
			return
		}
	}

	out, err := h.AuthService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"token":      out.Token,
		"expires_at": out.ExpiresAt,
		"admin_type": "db_admin",
		"admin":      out.Admin,
	})
}

// Me 当前管理员信息
func (h *Handler) Me(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{
		"subject":      principal.Subject(),
		"display_name": principal.DisplayName(),
		"is_superuser": principal.IsSuperuser(),
	})
}

// ChangePasswordRequest 管理员改密请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword 数据库管理员修改密码
// 站点管理员凭据在配置文件中，不支持在线修改。
func (h *Handler) ChangePassword(c *gin.Context) {
	raw, exists := c.Get("admin_id")
	if !exists {
		respondError(c, response.CodeBadRequest, "site admin password is managed in configuration", nil)
		return
	}
	adminID, ok := raw.(uint)
	if !ok || adminID == 0 {
		respondError(c, response.CodeInternal, "invalid context value", nil)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	policy := h.Config.Security.PasswordPolicy
	if err := h.AuthService.ChangePassword(c.Request.Context(), adminID, req.OldPassword, req.NewPassword, policy); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"changed": true})
}
