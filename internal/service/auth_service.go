package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/study-match/internal/auth"
	"github.com/spec-kit/study-match/internal/config"
	"github.com/spec-kit/study-match/internal/domain"
	"github.com/spec-kit/study-match/internal/repository"
	apperrors "github.com/spec-kit/study-match/pkg/util/errorutil"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users       repository.UserRepository
	tokenMgr    *auth.TokenManager
	bcryptCost  int
	emailDomain string
	minPassword int
}

// RegisterInput describes the registration payload.
type RegisterInput struct {
	Name            string
	Username        string
	Major           string
	Password        string
	ConfirmPassword string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:       users,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost:  cfg.Auth.BcryptCost,
		emailDomain: cfg.Auth.AllowedEmailDomain,
		minPassword: cfg.Auth.MinPasswordLength,
	}
}

// Register validates and creates a new student account. Nothing is stored
// when any validation fails.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	name := strings.TrimSpace(input.Name)
	username := strings.TrimSpace(input.Username)

	if name == "" {
		return nil, "", time.Time{}, apperrors.NewMissingRequiredField("name")
	}
	if username == "" {
		return nil, "", time.Time{}, apperrors.NewMissingRequiredField("username")
	}
	if input.Password == "" {
		return nil, "", time.Time{}, apperrors.NewMissingRequiredField("password")
	}
	if !strings.HasSuffix(username, s.emailDomain) {
		return nil, "", time.Time{}, apperrors.NewInvalidEmailDomain(s.emailDomain)
	}
	if len(input.Password) < s.minPassword {
		return nil, "", time.Time{}, apperrors.NewPasswordTooShort(s.minPassword)
	}
	if input.Password != input.ConfirmPassword {
		return nil, "", time.Time{}, apperrors.NewPasswordMismatch()
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, "", time.Time{}, apperrors.NewDuplicateUser(username)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Major:        strings.TrimSpace(input.Major),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", time.Time{}, apperrors.NewDuplicateUser(username)
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// Login authenticates a student. The failure is generic on purpose: it does
// not reveal whether the username exists.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
