package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/linkmart/internal/config"
	"github.com/linkmart/internal/logger"
)

// SiteAdminService 配置文件站点管理员方案
// 单账号，凭据来自配置，令牌为 HMAC 签名的时效票据，不落库
type SiteAdminService struct {
	cfg config.SiteAdminConfig
}

// NewSiteAdminService 创建站点管理员服务
func NewSiteAdminService(cfg config.SiteAdminConfig) *SiteAdminService {
	return &SiteAdminService{cfg: cfg}
}

// Enabled 配置了用户名、密码和签名密钥才启用
func (s *SiteAdminService) Enabled() bool {
	return s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.TokenSecret != ""
}

// SiteAdminLoginOutput 登录返回
type SiteAdminLoginOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
}

// Login 校验配置凭据并签发令牌
func (s *SiteAdminService) Login(username, password string) (*SiteAdminLoginOutput, error) {
	if !s.Enabled() {
		return nil, ErrInvalidCredentials
	}
	usernameOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.cfg.Username)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) == 1
	if !usernameOK || !passwordOK {
		return nil, ErrInvalidCredentials
	}

	expireHours := s.cfg.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)
	token := s.sign(s.cfg.Username, expiresAt.Unix())

	logger.Infow("site_admin_login", "username", s.cfg.Username)
	return &SiteAdminLoginOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		Username:  s.cfg.Username,
	}, nil
}

// Verify 校验令牌，返回用户名
func (s *SiteAdminService) Verify(token string) (string, error) {
	if !s.Enabled() {
		return "", ErrTokenInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return "", ErrTokenInvalid
	}
	parts := strings.Split(string(raw), "|")
	if len(parts) != 3 {
		return "", ErrTokenInvalid
	}
	username := parts[0]
	expiresUnix, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", ErrTokenInvalid
	}
	if time.Now().Unix() > expiresUnix {
		return "", ErrTokenInvalid
	}

	expected := s.sign(username, expiresUnix)
	if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
		return "", ErrTokenInvalid
	}
	if username != s.cfg.Username {
		return "", ErrTokenInvalid
	}
	return username, nil
}

func (s *SiteAdminService) sign(username string, expiresUnix int64) string {
	payload := fmt.Sprintf("%s|%d", username, expiresUnix)
	mac := hmac.New(sha256.New, []byte(s.cfg.TokenSecret))
	mac.Write([]byte(payload))
	signature := hex.EncodeToString(mac.Sum(nil))
	return base64.RawURLEncoding.EncodeToString([]byte(payload + "|" + signature))
}
