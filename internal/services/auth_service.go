package services

import (
	"context"
	"errors"

	"github.com/timaocord/wallet-backend/internal/config"
	"github.com/timaocord/wallet-backend/internal/models"
	"github.com/timaocord/wallet-backend/internal/repositories"
	"github.com/timaocord/wallet-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// Compile-time check to ensure authService implements AuthService
var _ AuthService = (*authService)(nil)

// authService handles back-office authentication
type authService struct {
	adminRepo repositories.AdminUserRepository
	cfg       *config.Config
}

// NewAuthService creates a new AuthService
func NewAuthService(adminRepo repositories.AdminUserRepository, cfg *config.Config) AuthService {
	return &authService{
		adminRepo: adminRepo,
		cfg:       cfg,
	}
}

// Login verifies the credentials and issues a JWT carrying the admin role
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateJWT(admin.Email, admin.Role, s.cfg)
}

// CreateAdmin creates a back-office account with a bcrypt-hashed password
func (s *authService) CreateAdmin(ctx context.Context, name, email, password, role string) (*models.AdminUser, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &models.AdminUser{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, &OperationError{Code: "DUPLICATE_ADMIN", Message: "Já existe um administrador com esse email."}
		}
		return nil, err
	}
	admin.Password = ""
	return admin, nil
}
