package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/MattU27/301st-personnel-management-sub002/config"
)

func testManager(accessTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:               "unit-test-secret",
		AccessTokenTTL:          accessTTL,
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 30 * 24 * time.Hour,
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := testManager(15 * time.Minute)

	token, err := m.GenerateAccessToken("u1", "staff", "alpha-id")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != "staff" || claims.CompanyID != "alpha-id" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.TokenType != "access" {
		t.Errorf("expected access token type, got %q", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("jti must be set")
	}
}

func TestGenerateRefreshToken_TTLSelection(t *testing.T) {
	m := testManager(15 * time.Minute)

	short, err := m.GenerateRefreshToken("u1", "reservist", "", false)
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}
	long, err := m.GenerateRefreshToken("u1", "reservist", "", true)
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	cs, _ := m.ParseToken(short)
	cl, _ := m.ParseToken(long)
	if cs == nil || cl == nil {
		t.Fatal("refresh tokens must parse")
	}
	if cs.TokenType != "refresh" || cl.TokenType != "refresh" {
		t.Error("expected refresh token type")
	}
	if cl.RememberMe == cs.RememberMe {
		t.Error("remember_me flag should differ")
	}
	if !cl.ExpiresAt.Time.After(cs.ExpiresAt.Time) {
		t.Error("remember-me token should expire later")
	}
}

func TestParseToken_Expired(t *testing.T) {
	m := testManager(-1 * time.Minute)

	token, err := m.GenerateAccessToken("u1", "staff", "")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	_, err = m.ParseToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m := testManager(15 * time.Minute)
	other := NewManager(&config.AuthConfig{JWTSecret: "different-secret", AccessTokenTTL: 15 * time.Minute})

	token, err := m.GenerateAccessToken("u1", "staff", "")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := other.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	m := testManager(15 * time.Minute)
	if _, err := m.ParseToken("garbage"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
