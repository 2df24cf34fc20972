package services

import (
	"context"
	"errors"
	"testing"

	"github.com/apprifas/raffle-backend/internal/models"
	adminjwt "github.com/apprifas/raffle-backend/pkg/jwt"
)

func newAuthServiceForTest() (AuthService, *adminjwt.TokenService) {
	tokenService := adminjwt.NewTokenService("test-secret", 3600)
	return NewAuthService(newFakeAdminRepo(), tokenService), tokenService
}

func TestLoginIssuesValidToken(t *testing.T) {
	service, tokenService := newAuthServiceForTest()

	admin, err := service.CreateAdmin(context.Background(), "op@example.com", "s3cret", "")
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if admin.Role != "operator" {
		t.Fatalf("expected default role operator, got %q", admin.Role)
	}
	if admin.PasswordHash == "s3cret" {
		t.Fatal("password stored in plain text")
	}

	resp, err := service.Login(context.Background(), &models.LoginRequest{
		Email:    "op@example.com",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}

	claims, err := tokenService.Validate(resp.Token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims["email"] != "op@example.com" {
		t.Fatalf("expected email claim, got %v", claims["email"])
	}
	if claims["role"] != "operator" {
		t.Fatalf("expected role claim, got %v", claims["role"])
	}
	if claims["sub"] != admin.ID.Hex() {
		t.Fatalf("expected sub claim %s, got %v", admin.ID.Hex(), claims["sub"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	service, _ := newAuthServiceForTest()

	if _, err := service.CreateAdmin(context.Background(), "op@example.com", "s3cret", "admin"); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	_, err := service.Login(context.Background(), &models.LoginRequest{
		Email:    "op@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	service, _ := newAuthServiceForTest()

	_, err := service.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCreateAdminDuplicateEmail(t *testing.T) {
	service, _ := newAuthServiceForTest()

	if _, err := service.CreateAdmin(context.Background(), "op@example.com", "s3cret", ""); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	_, err := service.CreateAdmin(context.Background(), "op@example.com", "other", "")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCreateAdminRequiresCredentials(t *testing.T) {
	service, _ := newAuthServiceForTest()

	if _, err := service.CreateAdmin(context.Background(), "", "s3cret", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing email: expected ErrValidation, got %v", err)
	}
	if _, err := service.CreateAdmin(context.Background(), "op@example.com", "", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing password: expected ErrValidation, got %v", err)
	}
}
