package service

import (
	"strings"
	"time"

	"github.com/linkmart/internal/config"
	"github.com/linkmart/internal/constants"
	"github.com/linkmart/internal/logger"
	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/queue"
	"github.com/linkmart/internal/repository"

	"github.com/jaevor/go-nanoid"
	"golang.org/x/crypto/bcrypt"
)

// CustomerAuthService 顾客注册登录与密码找回
type CustomerAuthService struct {
	repo        repository.CustomerRepository
	sessionRepo repository.CustomerSessionRepository
	queue       *queue.Client
	policy      config.PasswordPolicyConfig
}

// NewCustomerAuthService 创建顾客认证服务
func NewCustomerAuthService(
	repo repository.CustomerRepository,
	sessionRepo repository.CustomerSessionRepository,
	queueClient *queue.Client,
	policy config.PasswordPolicyConfig,
) *CustomerAuthService {
	return &CustomerAuthService{
		repo:        repo,
		sessionRepo: sessionRepo,
		queue:       queueClient,
		policy:      policy,
	}
}

// RegisterInput 注册输入
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// SessionMeta 会话来源信息
type SessionMeta struct {
	UserAgent string
	IP        string
}

// SessionOutput 登录返回
type SessionOutput struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Customer  *models.Customer `json:"customer"`
}

// Register 注册顾客账号，成功即签发会话令牌，无需再登录一次
func (s *CustomerAuthService) Register(input RegisterInput, meta SessionMeta) (*SessionOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if err := validatePassword(s.policy, input.Password); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	customer := models.Customer{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
		IsActive:     true,
	}
	if err := s.repo.Create(&customer); err != nil {
		return nil, err
	}

	session, err := s.createSession(&customer, meta)
	if err != nil {
		return nil, err
	}
	logger.Infow("customer_registered", "customer_id", customer.ID, "email", customer.Email)
	return &SessionOutput{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Customer:  &customer,
	}, nil
}

// Login 顾客登录，成功后签发落库会话令牌
func (s *CustomerAuthService) Login(email, password string, meta SessionMeta) (*SessionOutput, error) {
	customer, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !customer.IsActive {
		return nil, ErrAccountDisabled
	}

	session, err := s.createSession(customer, meta)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	customer.LastLoginAt = &now
	if err := s.repo.Update(customer); err != nil {
		logger.Warnw("customer_last_login_update_failed", "customer_id", customer.ID, "error", err)
	}

	return &SessionOutput{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Customer:  customer,
	}, nil
}

// Logout 删除会话令牌
func (s *CustomerAuthService) Logout(token string) error {
	return s.sessionRepo.DeleteByToken(token)
}

// Authenticate 根据会话令牌解析顾客，过期或禁用视为无效
func (s *CustomerAuthService) Authenticate(token string) (*models.Customer, error) {
	session, err := s.sessionRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Customer == nil {
		return nil, ErrTokenInvalid
	}
	if session.Expired(time.Now()) {
		_ = s.sessionRepo.DeleteByToken(token)
		return nil, ErrTokenInvalid
	}
	if !session.Customer.IsActive {
		return nil, ErrAccountDisabled
	}
	return session.Customer, nil
}

// ForgotPassword 发起密码重置。无论邮箱是否存在都静默成功，避免账号枚举
func (s *CustomerAuthService) ForgotPassword(email string) error {
	customer, err := s.repo.GetByEmail(email)
	if err != nil {
		return err
	}
	if customer == nil || !customer.IsActive {
		logger.Infow("password_reset_skipped", "email", strings.ToLower(strings.TrimSpace(email)))
		return nil
	}

	generate, err := nanoid.Standard(constants.ResetTokenLength)
	if err != nil {
		return err
	}
	token := generate()
	expires := time.Now().Add(time.Duration(constants.ResetTokenExpiry) * time.Hour)
	customer.ResetToken = token
	customer.ResetTokenExpiresAt = &expires
	if err := s.repo.Update(customer); err != nil {
		return err
	}

	if err := s.queue.EnqueuePasswordResetEmail(queue.PasswordResetEmailPayload{
		CustomerID: customer.ID,
		Email:      customer.Email,
		ResetToken: token,
	}); err != nil {
		// 投递失败仍返回成功，令牌已落库可补发，响应差异会暴露邮箱是否注册
		logger.Errorw("password_reset_enqueue_failed", "customer_id", customer.ID, "error", err)
		return nil
	}
	logger.Infow("password_reset_requested", "customer_id", customer.ID)
	return nil
}

// VerifyResetToken 校验重置令牌是否可用，不做任何变更
func (s *CustomerAuthService) VerifyResetToken(token string) error {
	customer, err := s.repo.GetByResetToken(strings.TrimSpace(token))
	if err != nil {
		return err
	}
	if customer == nil || !customer.ResetTokenValid(time.Now()) {
		return ErrResetTokenInvalid
	}
	if !customer.IsActive {
		return ErrAccountDisabled
	}
	return nil
}

// ResetPassword 凭重置令牌设置新密码，成功后强制所有会话下线
func (s *CustomerAuthService) ResetPassword(token, newPassword string) error {
	customer, err := s.repo.GetByResetToken(strings.TrimSpace(token))
	if err != nil {
		return err
	}
	if customer == nil || !customer.ResetTokenValid(time.Now()) {
		return ErrResetTokenInvalid
	}
	if !customer.IsActive {
		return ErrAccountDisabled
	}
	if err := validatePassword(s.policy, newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	customer.PasswordHash = string(hash)
	customer.ResetToken = ""
	customer.ResetTokenExpiresAt = nil
	if err := s.repo.Update(customer); err != nil {
		return err
	}
	if err := s.sessionRepo.DeleteByCustomer(customer.ID); err != nil {
		logger.Warnw("customer_sessions_purge_failed", "customer_id", customer.ID, "error", err)
	}
	logger.Infow("password_reset_done", "customer_id", customer.ID)
	return nil
}

// ChangePassword 已登录顾客修改密码
func (s *CustomerAuthService) ChangePassword(customerID uint, oldPassword, newPassword string) error {
	customer, err := s.repo.GetByID(customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidPassword
	}
	if err := validatePassword(s.policy, newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	customer.PasswordHash = string(hash)
	return s.repo.Update(customer)
}

// CleanupExpiredSessions 清理过期会话
func (s *CustomerAuthService) CleanupExpiredSessions(now time.Time) (int64, error) {
	return s.sessionRepo.DeleteExpired(now)
}

func (s *CustomerAuthService) createSession(customer *models.Customer, meta SessionMeta) (*models.CustomerSession, error) {
	generate, err := nanoid.Standard(constants.SessionTokenIDLength)
	if err != nil {
		return nil, err
	}
	session := models.CustomerSession{
		CustomerID: customer.ID,
		Token:      generate(),
		UserAgent:  meta.UserAgent,
		IP:         meta.IP,
		ExpiresAt:  time.Now().AddDate(0, 0, constants.CustomerSessionDays),
	}
	if err := s.sessionRepo.Create(&session); err != nil {
		return nil, err
	}
	return &session, nil
}
