package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/linkmart/internal/config"
	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/queue"
	"github.com/linkmart/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCustomerAuthTest(t *testing.T) (*CustomerAuthService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.CustomerSession{}); err != nil {
		t.Fatalf("migrate customer failed: %v", err)
	}
	svc := NewCustomerAuthService(
		repository.NewCustomerRepository(db),
		repository.NewCustomerSessionRepository(db),
		nil,
		config.PasswordPolicyConfig{MinLength: 8},
	)
	return svc, db
}

func registerCustomer(t *testing.T, svc *CustomerAuthService, email string) *models.Customer {
	t.Helper()
	session, err := svc.Register(RegisterInput{
		Email:     email,
		Password:  "correct-horse-1",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}, SessionMeta{})
	if err != nil {
		t.Fatalf("register %s failed: %v", email, err)
	}
	return session.Customer
}

func TestCustomerRegisterIssuesSession(t *testing.T) {
	svc, db := setupCustomerAuthTest(t)

	session, err := svc.Register(RegisterInput{
		Email:     "register-session@example.com",
		Password:  "correct-horse-1",
		FirstName: "Grace",
		LastName:  "Hopper",
	}, SessionMeta{UserAgent: "test", IP: "1.2.3.4"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if session.Token == "" {
		t.Fatalf("register should issue a session token")
	}
	if !session.ExpiresAt.After(time.Now()) {
		t.Fatalf("session expiry should be in the future: %v", session.ExpiresAt)
	}

	// 注册即登录：落库会话行已存在，无需再调一次 Login
	var rows int64
	if err := db.Model(&models.CustomerSession{}).
		Where("customer_id = ?", session.Customer.ID).Count(&rows).Error; err != nil {
		t.Fatalf("count sessions failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("session rows want 1 got %d", rows)
	}

	customer, err := svc.Authenticate(session.Token)
	if err != nil {
		t.Fatalf("authenticate with register token failed: %v", err)
	}
	if customer.Email != "register-session@example.com" || customer.FirstName != "Grace" {
		t.Fatalf("authenticated profile mismatch: %+v", customer)
	}
}

func TestCustomerRegisterLoginAuthenticateRoundTrip(t *testing.T) {
	svc, _ := setupCustomerAuthTest(t)
	registered := registerCustomer(t, svc, "roundtrip@example.com")

	session, err := svc.Login("roundtrip@example.com", "correct-horse-1", SessionMeta{UserAgent: "test", IP: "1.2.3.4"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.Token == "" {
		t.Fatalf("login should issue a token")
	}
	if !session.ExpiresAt.After(time.Now()) {
		t.Fatalf("session expiry should be in the future: %v", session.ExpiresAt)
	}

	customer, err := svc.Authenticate(session.Token)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if customer.ID != registered.ID {
		t.Fatalf("authenticated customer want %d got %d", registered.ID, customer.ID)
	}

	if err := svc.Logout(session.Token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Authenticate(session.Token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("authenticate after logout want ErrTokenInvalid got %v", err)
	}
}

func TestCustomerRegisterDuplicateEmail(t *testing.T) {
	svc, _ := setupCustomerAuthTest(t)
	registerCustomer(t, svc, "duplicate@example.com")

	_, err := svc.Register(RegisterInput{Email: " Duplicate@Example.com ", Password: "correct-horse-1"}, SessionMeta{})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate email want ErrEmailExists got %v", err)
	}
}

func TestCustomerRegisterWeakPassword(t *testing.T) {
	svc, _ := setupCustomerAuthTest(t)
	_, err := svc.Register(RegisterInput{Email: "weak@example.com", Password: "short"}, SessionMeta{})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("short password want ErrWeakPassword got %v", err)
	}
}

func TestCustomerLoginDisabledAccount(t *testing.T) {
	svc, db := setupCustomerAuthTest(t)
	customer := registerCustomer(t, svc, "disabled@example.com")

	if err := db.Model(&models.Customer{}).Where("id = ?", customer.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("disable customer failed: %v", err)
	}

	_, err := svc.Login("disabled@example.com", "correct-horse-1", SessionMeta{})
	if !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("disabled login want ErrAccountDisabled got %v", err)
	}
}

func TestCustomerLoginWrongPassword(t *testing.T) {
	svc, _ := setupCustomerAuthTest(t)
	registerCustomer(t, svc, "wrongpass@example.com")

	_, err := svc.Login("wrongpass@example.com", "not-the-password", SessionMeta{})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	_, err = svc.Login("never-registered@example.com", "whatever-123", SessionMeta{})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email want ErrInvalidCredentials got %v", err)
	}
}

func TestForgotPasswordDoesNotRevealAccounts(t *testing.T) {
	svc, db := setupCustomerAuthTest(t)
	customer := registerCustomer(t, svc, "forgot@example.com")

	// 未注册邮箱同样静默成功
	if err := svc.ForgotPassword("nobody@example.com"); err != nil {
		t.Fatalf("forgot password for unknown email should succeed, got %v", err)
	}
	if err := svc.ForgotPassword("forgot@example.com"); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}

	var reloaded models.Customer
	if err := db.First(&reloaded, customer.ID).Error; err != nil {
		t.Fatalf("reload customer failed: %v", err)
	}
	if reloaded.ResetToken == "" || reloaded.ResetTokenExpiresAt == nil {
		t.Fatalf("forgot password should set a reset token")
	}
	if !reloaded.ResetTokenExpiresAt.After(time.Now()) {
		t.Fatalf("reset token expiry should be in the future")
	}
}

func TestResetPasswordFlow(t *testing.T) {
	svc, db := setupCustomerAuthTest(t)
	customer := registerCustomer(t, svc, "reset@example.com")
	session, err := svc.Login("reset@example.com", "correct-horse-1", SessionMeta{})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.ForgotPassword("reset@example.com"); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}
	var reloaded models.Customer
	if err := db.First(&reloaded, customer.ID).Error; err != nil {
		t.Fatalf("reload customer failed: %v", err)
	}

	if err := svc.ResetPassword(reloaded.ResetToken, "brand-new-pass-9"); err != nil {
		t.Fatalf("reset password failed: %v", err)
	}

	if _, err := svc.Login("reset@example.com", "correct-horse-1", SessionMeta{}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should stop working, got %v", err)
	}
	if _, err := svc.Login("reset@example.com", "brand-new-pass-9", SessionMeta{}); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}

	// 重置成功后旧会话全部下线，令牌只能用一次
	if _, err := svc.Authenticate(session.Token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("old session should be purged, got %v", err)
	}
	if err := svc.ResetPassword(reloaded.ResetToken, "another-pass-10"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("reused reset token want ErrResetTokenInvalid got %v", err)
	}
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, db := setupCustomerAuthTest(t)
	customer := registerCustomer(t, svc, "expired-reset@example.com")

	expired := time.Now().Add(-time.Minute)
	if err := db.Model(&models.Customer{}).Where("id = ?", customer.ID).
		Updates(map[string]interface{}{
			"reset_token":            "expired-token-value-but-long-enough",
			"reset_token_expires_at": expired,
		}).Error; err != nil {
		t.Fatalf("seed expired token failed: %v", err)
	}

	err := svc.ResetPassword("expired-token-value-but-long-enough", "brand-new-pass-9")
	if !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expired token want ErrResetTokenInvalid got %v", err)
	}
}

func TestVerifyResetToken(t *testing.T) {
	svc, db := setupCustomerAuthTest(t)
	customer := registerCustomer(t, svc, "verify-reset@example.com")

	if err := svc.VerifyResetToken("no-such-token-anywhere"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("unknown token want ErrResetTokenInvalid got %v", err)
	}

	if err := svc.ForgotPassword("verify-reset@example.com"); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}
	var reloaded models.Customer
	if err := db.First(&reloaded, customer.ID).Error; err != nil {
		t.Fatalf("reload customer failed: %v", err)
	}
	if err := svc.VerifyResetToken(reloaded.ResetToken); err != nil {
		t.Fatalf("valid token should verify: %v", err)
	}
	// 校验不消耗令牌
	if err := svc.VerifyResetToken(reloaded.ResetToken); err != nil {
		t.Fatalf("verify must not consume the token: %v", err)
	}

	if err := db.Model(&models.Customer{}).Where("id = ?", customer.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("disable customer failed: %v", err)
	}
	if err := svc.VerifyResetToken(reloaded.ResetToken); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("disabled account want ErrAccountDisabled got %v", err)
	}
}

func TestChangePasswordRequiresOldPassword(t *testing.T) {
	svc, _ := setupCustomerAuthTest(t)
	customer := registerCustomer(t, svc, "change@example.com")

	if err := svc.ChangePassword(customer.ID, "not-the-password", "brand-new-pass-9"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password want ErrInvalidPassword got %v", err)
	}
	if err := svc.ChangePassword(customer.ID, "correct-horse-1", "brand-new-pass-9"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, err := svc.Login("change@example.com", "brand-new-pass-9", SessionMeta{}); err != nil {
		t.Fatalf("login with changed password failed: %v", err)
	}
}

func TestCleanupExpiredSessions(t *testing.T) {
	svc, db := setupCustomerAuthTest(t)
	customer := registerCustomer(t, svc, "cleanup@example.com")

	for i := 0; i < 3; i++ {
		session := models.CustomerSession{
			CustomerID: customer.ID,
			Token:      fmt.Sprintf("cleanup-session-token-%d", i),
			ExpiresAt:  time.Now().Add(-time.Hour),
		}
		if err := db.Create(&session).Error; err != nil {
			t.Fatalf("seed expired session failed: %v", err)
		}
	}

	removed, err := svc.CleanupExpiredSessions(time.Now())
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if removed != 3 {
		t.Fatalf("removed want 3 got %d", removed)
	}
}

func TestForgotPasswordSurvivesQueueOutage(t *testing.T) {
	_, db := setupCustomerAuthTest(t)

	// 队列指向不可达端口，投递必然失败
	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: true, Host: "127.0.0.1", Port: 1})
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	defer queueClient.Close()

	repo := repository.NewCustomerRepository(db)
	svc := NewCustomerAuthService(
		repo,
		repository.NewCustomerSessionRepository(db),
		queueClient,
		config.PasswordPolicyConfig{MinLength: 8},
	)
	registerCustomer(t, svc, "forgot-queue-down@example.com")

	if err := svc.ForgotPassword("forgot-queue-down@example.com"); err != nil {
		t.Fatalf("forgot password want nil despite queue outage got %v", err)
	}

	// 令牌仍然落库，事后可以补发邮件
	customer, err := repo.GetByEmail("forgot-queue-down@example.com")
	if err != nil {
		t.Fatalf("reload customer failed: %v", err)
	}
	if customer.ResetToken == "" || customer.ResetTokenExpiresAt == nil {
		t.Fatalf("reset token should be persisted, got %+v", customer)
	}
}
