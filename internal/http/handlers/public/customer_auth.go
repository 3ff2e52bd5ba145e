package public

import (
	"fmt"
	"time"

	"github.com/linkmart/internal/cache"
	"github.com/linkmart/internal/http/response"
	"github.com/linkmart/internal/service"

	"github.com/gin-gonic/gin"
)

// checkLoginRateLimit 按来源 IP 限制登录尝试次数，超限返回 false 并响应 429。
// Redis 不可用时放行。
func (h *Handler) checkLoginRateLimit(c *gin.Context) bool {
	if h.Config == nil {
		return true
	}
	limit := h.Config.Security.LoginRateLimit
	if limit.MaxAttempts <= 0 || limit.WindowSeconds <= 0 {
		return true
	}
	key := fmt.Sprintf("login:attempts:%s", c.ClientIP())
	count, err := cache.IncrWindow(c.Request.Context(), key, time.Duration(limit.WindowSeconds)*time.Second)
	if err != nil {
		requestLog(c).Warnw("login_rate_limit_check_failed", "error", err)
		return true
	}
	if count > int64(limit.MaxAttempts) {
		respondError(c, response.CodeTooManyRequests, "too many login attempts, please try again later", nil)
		return false
	}
	return true
}

// RegisterRequest 顾客注册请求
type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// Register 顾客注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	session, err := h.CustomerAuthService.Register(service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}, service.SessionMeta{
		UserAgent: c.Request.UserAgent(),
		IP:        c.ClientIP(),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, session)
}

// LoginRequest 顾客登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 顾客登录，签发数据库会话令牌
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if !h.checkLoginRateLimit(c) {
		return
	}

	session, err := h.CustomerAuthService.Login(req.Email, req.Password, service.SessionMeta{
		UserAgent: c.Request.UserAgent(),
		IP:        c.ClientIP(),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, session)
}

// Logout 顾客退出登录
func (h *Handler) Logout(c *gin.Context) {
	token := extractBearerToken(c)
	if token != "" {
		if err := h.CustomerAuthService.Logout(token); err != nil {
			requestLog(c).Warnw("customer_logout_failed", "error", err)
		}
	}
	response.Success(c, gin.H{"logged_out": true})
}

// Me 获取当前登录顾客信息
func (h *Handler) Me(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	customer, err := h.CustomerService.Get(customerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, customer)
}

// ForgotPasswordRequest 找回密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword 发送密码重置邮件
// 无论邮箱是否存在都返回成功，避免账号枚举。
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.CustomerAuthService.ForgotPassword(req.Email); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "if the email exists, a reset link has been sent", gin.H{"sent": true})
}

// VerifyResetTokenRequest 重置令牌校验请求
type VerifyResetTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// VerifyResetToken 校验重置令牌，前端据此决定是否展示重置表单
func (h *Handler) VerifyResetToken(c *gin.Context) {
	var req VerifyResetTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.CustomerAuthService.VerifyResetToken(req.Token); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"valid": true})
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ResetPassword 使用重置令牌设置新密码
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.CustomerAuthService.ResetPassword(req.Token, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"reset": true})
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword 登录态下修改密码
func (h *Handler) ChangePassword(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.CustomerAuthService.ChangePassword(customerID, req.OldPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"changed": true})
}
