package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/linkmart/internal/cache"
	"github.com/linkmart/internal/config"
	"github.com/linkmart/internal/logger"
	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AdminClaims 管理员 JWT 载荷
type AdminClaims struct {
	AdminID      uint   `json:"admin_id"`
	Username     string `json:"username"`
	TokenVersion int64  `json:"token_version"`
	jwt.RegisteredClaims
}

// AuthService 数据库管理员认证服务
type AuthService struct {
	repo repository.AdminRepository
	cfg  config.JWTConfig
}

// NewAuthService 创建管理员认证服务
func NewAuthService(repo repository.AdminRepository, cfg config.JWTConfig) *AuthService {
	return &AuthService{repo: repo, cfg: cfg}
}

// AdminLoginOutput 登录返回
type AdminLoginOutput struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     *models.Admin `json:"admin"`
}

// Login 管理员登录，签发 JWT 并刷新鉴权缓存
func (s *AuthService) Login(ctx context.Context, username, password string) (*AdminLoginOutput, error) {
	admin, err := s.repo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, ErrAccountDisabled
	}

	token, expiresAt, err := s.issueToken(admin)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	admin.LastLoginAt = &now
	if err := s.repo.Update(admin); err != nil {
		logger.Warnw("admin_last_login_update_failed", "admin_id", admin.ID, "error", err)
	}
	if err := cache.SetAdminAuthState(ctx, cache.BuildAdminAuthState(admin)); err != nil {
		logger.Warnw("admin_auth_state_cache_failed", "admin_id", admin.ID, "error", err)
	}

	logger.Infow("admin_login", "admin_id", admin.ID, "username", admin.Username)
	return &AdminLoginOutput{Token: token, ExpiresAt: expiresAt, Admin: admin}, nil
}

// VerifyToken 解析并校验 JWT，令牌版本不匹配视为失效
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*models.Admin, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	// 先查缓存快照，未命中再回表
	if state, hit, err := cache.GetAdminAuthState(ctx, claims.AdminID); err == nil && hit {
		if !state.IsActive {
			return nil, ErrAccountDisabled
		}
		if state.TokenVersion != claims.TokenVersion {
			return nil, ErrTokenInvalid
		}
		return &models.Admin{
			ID:           state.AdminID,
			Username:     state.Username,
			TokenVersion: state.TokenVersion,
			IsSuper:      state.IsSuper,
			IsActive:     state.IsActive,
		}, nil
	}

	admin, err := s.repo.GetByID(claims.AdminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrTokenInvalid
	}
	if !admin.IsActive {
		return nil, ErrAccountDisabled
	}
	if admin.TokenVersion != claims.TokenVersion {
		return nil, ErrTokenInvalid
	}
	if err := cache.SetAdminAuthState(ctx, cache.BuildAdminAuthState(admin)); err != nil {
		logger.Warnw("admin_auth_state_cache_failed", "admin_id", admin.ID, "error", err)
	}
	return admin, nil
}

// ChangePassword 修改密码并递增令牌版本，旧 JWT 全部下线
func (s *AuthService) ChangePassword(ctx context.Context, adminID uint, oldPassword, newPassword string, policy config.PasswordPolicyConfig) error {
	admin, err := s.repo.GetByID(adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidPassword
	}
	if err := validatePassword(policy, newPassword); err != nil {
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
	if err := cache.DelAdminAuthState(ctx, adminID); err != nil {
		logger.Warnw("admin_auth_state_evict_failed", "admin_id", adminID, "error", err)
	}
	logger.Infow("admin_password_changed", "admin_id", adminID)
	return nil
}

func (s *AuthService) issueToken(admin *models.Admin) (string, time.Time, error) {
	expireHours := s.cfg.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(expireHours) * time.Hour)
	claims := AdminClaims{
		AdminID:      admin.ID,
		Username:     admin.Username,
		TokenVersion: admin.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
