package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/diagnosis/hotel-backoffice/internal/utils"
	"github.com/diagnosis/hotel-backoffice/pkg/auth"
	"github.com/diagnosis/hotel-backoffice/pkg/logger"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

var validate = validator.New()

type LoginRequest struct {
	Email    string `validate:"required,contains=@,max=254"`
	Password string `validate:"required,max=1024"`
}

type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*Token, error)
}

// AdminAccount is the single back-office operator.
type AdminAccount struct {
	Email        string
	PasswordHash string
}

type authService struct {
	admin  AdminAccount
	tokens auth.TokenConfig
}

// NewAuthService hashes password when no hash is configured.
func NewAuthService(email, password, passwordHash string, tokens auth.TokenConfig) (AuthService, error) {
	if passwordHash == "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
		passwordHash = hash
	}
	return &authService{
		admin:  AdminAccount{Email: utils.NormalizeEmail(email), PasswordHash: passwordHash},
		tokens: tokens,
	}, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*Token, error) {
	req.Email = utils.NormalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		logger.WarnContext(ctx, "Login rejected", "reason", "malformed", "error", err)
		return nil, ErrInvalidCredentials
	}

	if req.Email != s.admin.Email {
		logger.WarnContext(ctx, "Login rejected", "reason", "unknown_email")
		return nil, ErrInvalidCredentials
	}
	ok, err := auth.VerifyPassword(req.Password, s.admin.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		logger.WarnContext(ctx, "Login rejected", "reason", "bad_password")
		return nil, ErrInvalidCredentials
	}

	signed, expires, err := auth.NewAccessToken(req.Email, auth.RoleAdmin, s.tokens)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Admin logged in", "email", req.Email)
	return &Token{AccessToken: signed, ExpiresAt: expires}, nil
}
