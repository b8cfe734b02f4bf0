package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/MattU27/301st-personnel-management-sub002/config"
	"github.com/MattU27/301st-personnel-management-sub002/internal/dto"
	"github.com/MattU27/301st-personnel-management-sub002/pkg/jwt"
)

func setupAuth(t *testing.T) (AuthService, *mockRepos, *jwt.Manager) {
	t.Helper()
	repo, mocks := newMockRepos()

	cfg := &config.Config{}
	cfg.Auth = config.AuthConfig{
		JWTSecret:               "test-secret",
		AccessTokenTTL:          15 * time.Minute,
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 30 * 24 * time.Hour,
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)

	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, mocks, jwtMgr
}

func addCredentialed(t *testing.T, mocks *mockRepos, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	p := testPersonnel()
	p.PasswordHash = string(hash)
	p.Role = "reservist"
	mocks.personnel.add(p)
}

func TestLogin_ByEmail(t *testing.T) {
	svc, mocks, jwtMgr := setupAuth(t)
	addCredentialed(t, mocks, "Afp123456")

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Identifier: "juan.delacruz@afp.mil.ph",
		Password:   "Afp123456",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}
	if res.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("unexpected expires_in %d", res.ExpiresIn)
	}
	if res.User.ID != "u1" {
		t.Errorf("unexpected user payload: %+v", res.User)
	}

	claims, err := jwtMgr.ParseToken(res.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != "u1" || claims.TokenType != "access" || claims.Role != "reservist" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestLogin_ByServiceNumber(t *testing.T) {
	svc, mocks, _ := setupAuth(t)
	addCredentialed(t, mocks, "Afp123456")

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Identifier: "SVC-001",
		Password:   "Afp123456",
	}); err != nil {
		t.Fatalf("service number login failed: %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, mocks, _ := setupAuth(t)
	addCredentialed(t, mocks, "Afp123456")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Identifier: "juan.delacruz@afp.mil.ph",
		Password:   "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownIdentifier(t *testing.T) {
	svc, _, _ := setupAuth(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Identifier: "nobody@afp.mil.ph",
		Password:   "whatever1",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_RememberMeExtendsRefreshTTL(t *testing.T) {
	svc, mocks, jwtMgr := setupAuth(t)
	addCredentialed(t, mocks, "Afp123456")

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Identifier: "SVC-001",
		Password:   "Afp123456",
		RememberMe: true,
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	claims, err := jwtMgr.ParseToken(res.RefreshToken)
	if err != nil {
		t.Fatalf("refresh token does not parse: %v", err)
	}
	if !claims.RememberMe {
		t.Error("remember_me should carry over into the refresh token")
	}
	if time.Until(claims.ExpiresAt.Time) < 25*24*time.Hour {
		t.Errorf("expected extended TTL, token expires %v", claims.ExpiresAt.Time)
	}
}

func TestRefreshToken_RotatesPair(t *testing.T) {
	svc, mocks, jwtMgr := setupAuth(t)
	addCredentialed(t, mocks, "Afp123456")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Identifier: "SVC-001",
		Password:   "Afp123456",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	res, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	claims, err := jwtMgr.ParseToken(res.RefreshToken)
	if err != nil {
		t.Fatalf("rotated refresh token does not parse: %v", err)
	}
	if claims.UserID != "u1" || claims.TokenType != "refresh" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	svc, mocks, _ := setupAuth(t)
	addCredentialed(t, mocks, "Afp123456")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Identifier: "SVC-001",
		Password:   "Afp123456",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	_, err = svc.RefreshToken(context.Background(), login.AccessToken)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("access token must not refresh, got %v", err)
	}
}

func TestRefreshToken_Garbage(t *testing.T) {
	svc, _, _ := setupAuth(t)

	_, err := svc.RefreshToken(context.Background(), "not-a-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefreshToken_DeletedUser(t *testing.T) {
	svc, mocks, _ := setupAuth(t)
	addCredentialed(t, mocks, "Afp123456")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Identifier: "SVC-001",
		Password:   "Afp123456",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	mocks.personnel.Delete(context.Background(), "u1", "admin")

	_, err = svc.RefreshToken(context.Background(), login.RefreshToken)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for deleted user, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, mocks, _ := setupAuth(t)
	addCredentialed(t, mocks, "Afp123456")

	err := svc.ChangePassword(context.Background(), "u1", &dto.ChangePasswordRequest{
		OldPassword: "Afp123456",
		NewPassword: "NewPass789",
	})
	if err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Identifier: "SVC-001",
		Password:   "NewPass789",
	}); err != nil {
		t.Errorf("new password should log in: %v", err)
	}
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Identifier: "SVC-001",
		Password:   "Afp123456",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password must be rejected, got %v", err)
	}
}

func TestChangePassword_WrongOld(t *testing.T) {
	svc, mocks, _ := setupAuth(t)
	addCredentialed(t, mocks, "Afp123456")

	err := svc.ChangePassword(context.Background(), "u1", &dto.ChangePasswordRequest{
		OldPassword: "wrong-password",
		NewPassword: "NewPass789",
	})
	if !errors.Is(err, ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}
}

func TestGetCurrentUser(t *testing.T) {
	svc, mocks, _ := setupAuth(t)
	addCredentialed(t, mocks, "Afp123456")

	res, err := svc.GetCurrentUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if res.ID != "u1" || res.Email != "juan.delacruz@afp.mil.ph" {
		t.Errorf("unexpected payload: %+v", res)
	}

	if _, err := svc.GetCurrentUser(context.Background(), "ghost"); !errors.Is(err, ErrPersonnelNotFound) {
		t.Errorf("expected ErrPersonnelNotFound, got %v", err)
	}
}
