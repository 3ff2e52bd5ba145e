package service

import (
	"errors"
	"testing"
	"time"

	"github.com/linkmart/internal/config"
)

func newSiteAdminTestService() *SiteAdminService {
	return NewSiteAdminService(config.SiteAdminConfig{
		Username:    "root",
		Password:    "site-admin-pass",
		TokenSecret: "site-admin-token-secret-for-tests",
		ExpireHours: 2,
	})
}

func TestSiteAdminLoginVerifyRoundTrip(t *testing.T) {
	svc := newSiteAdminTestService()

	output, err := svc.Login("root", "site-admin-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if output.Token == "" {
		t.Fatalf("login should issue a token")
	}
	if !output.ExpiresAt.After(time.Now().Add(time.Hour)) {
		t.Fatalf("token expiry too short: %v", output.ExpiresAt)
	}

	username, err := svc.Verify(output.Token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if username != "root" {
		t.Fatalf("username want root got %s", username)
	}
}

func TestSiteAdminLoginWrongCredentials(t *testing.T) {
	svc := newSiteAdminTestService()

	if _, err := svc.Login("root", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, err := svc.Login("admin", "site-admin-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong username want ErrInvalidCredentials got %v", err)
	}
}

func TestSiteAdminVerifyTamperedToken(t *testing.T) {
	svc := newSiteAdminTestService()
	output, err := svc.Login("root", "site-admin-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	tampered := output.Token[:len(output.Token)-2] + "xx"
	if _, err := svc.Verify(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("tampered token want ErrTokenInvalid got %v", err)
	}
	if _, err := svc.Verify("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("garbage token want ErrTokenInvalid got %v", err)
	}
	if _, err := svc.Verify(""); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("empty token want ErrTokenInvalid got %v", err)
	}
}

func TestSiteAdminVerifyExpiredToken(t *testing.T) {
	svc := newSiteAdminTestService()
	expired := svc.sign("root", time.Now().Add(-time.Minute).Unix())
	if _, err := svc.Verify(expired); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expired token want ErrTokenInvalid got %v", err)
	}
}

func TestSiteAdminVerifyRejectsForeignSecret(t *testing.T) {
	svc := newSiteAdminTestService()
	other := NewSiteAdminService(config.SiteAdminConfig{
		Username:    "root",
		Password:    "site-admin-pass",
		TokenSecret: "a-different-secret",
	})
	foreign := other.sign("root", time.Now().Add(time.Hour).Unix())
	if _, err := svc.Verify(foreign); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("token signed with another secret want ErrTokenInvalid got %v", err)
	}
}

func TestSiteAdminDisabledWithoutConfig(t *testing.T) {
	svc := NewSiteAdminService(config.SiteAdminConfig{})
	if svc.Enabled() {
		t.Fatalf("empty config should disable site admin")
	}
	if _, err := svc.Login("root", "anything"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("disabled login want ErrInvalidCredentials got %v", err)
	}
	if _, err := svc.Verify("anything"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("disabled verify want ErrTokenInvalid got %v", err)
	}
}
