package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/apprifas/raffle-backend/internal/models"
	"github.com/apprifas/raffle-backend/internal/repositories"
	adminjwt "github.com/apprifas/raffle-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a wrong email or password. One error
// for both cases so login responses don't reveal which field was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates operators. The reservation engine itself never
// sees credentials; it only runs behind the JWT middleware this service's
// tokens satisfy.
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	CreateAdmin(ctx context.Context, email, password, role string) (*models.AdminUser, error)
}

type authService struct {
	adminRepo    repositories.AdminUserRepository
	tokenService *adminjwt.TokenService
}

// NewAuthService creates a new AuthService
func NewAuthService(adminRepo repositories.AdminUserRepository, tokenService *adminjwt.TokenService) AuthService {
	return &authService{
		adminRepo:    adminRepo,
		tokenService: tokenService,
	}
}

// Login verifies the operator's password and returns a signed token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokenService.Generate(admin.ID.Hex(), admin.Email, admin.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &models.LoginResponse{Token: token, Admin: admin}, nil
}

// CreateAdmin registers a new operator account with a bcrypt password hash
func (s *authService) CreateAdmin(ctx context.Context, email, password, role string) (*models.AdminUser, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	if _, err := s.adminRepo.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: admin %s already exists", ErrConflict, email)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if role == "" {
		role = "operator"
	}

	admin := &models.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}
