package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/study-match/internal/config"
	"github.com/spec-kit/study-match/internal/repository"
	apperrors "github.com/spec-kit/study-match/pkg/util/errorutil"
)

func newAuthFixture(t *testing.T) (*AuthService, repository.UserRepository) {
	t.Helper()
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 5,
			BcryptCost:            4, // bcrypt.MinCost, keeps tests fast
			AllowedEmailDomain:    "@clemson.edu",
			MinPasswordLength:     8,
		},
	}
	users := repository.NewMemoryUserRepository()
	return NewAuthService(cfg, users), users
}

func validInput() RegisterInput {
	return RegisterInput{
		Name:            "Alice",
		Username:        "alice@clemson.edu",
		Major:           "CS",
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
	}
}

func TestRegisterSuccess(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, token, exp, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice@clemson.edu", user.Username)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "supersecret", user.PasswordHash)
	assert.NotEmpty(t, token)
	assert.False(t, exp.IsZero())
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*RegisterInput)
		wantCode string
	}{
		{"missing name", func(in *RegisterInput) { in.Name = " " }, apperrors.CodeMissingRequiredField},
		{"missing username", func(in *RegisterInput) { in.Username = "" }, apperrors.CodeMissingRequiredField},
		{"missing password", func(in *RegisterInput) { in.Password = "" }, apperrors.CodeMissingRequiredField},
		{"wrong domain", func(in *RegisterInput) { in.Username = "alice@gmail.com" }, apperrors.CodeInvalidEmailDomain},
		{"short password", func(in *RegisterInput) { in.Password = "short"; in.ConfirmPassword = "short" }, apperrors.CodePasswordTooShort},
		{"mismatched confirmation", func(in *RegisterInput) { in.ConfirmPassword = "different-pass" }, apperrors.CodePasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users := newAuthFixture(t)
			input := validInput()
			tt.mutate(&input)

			_, _, _, err := svc.Register(context.Background(), input)
			assert.Equal(t, tt.wantCode, domainCode(t, err))

			// nothing may be stored on a failed registration
			all, listErr := users.List(context.Background())
			require.NoError(t, listErr)
			assert.Empty(t, all)
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, _, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	_, _, _, err = svc.Register(context.Background(), validInput())
	assert.Equal(t, apperrors.CodeDuplicateUser, domainCode(t, err))
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newAuthFixture(t)
	_, _, _, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	user, token, _, err := svc.Login(context.Background(), "alice@clemson.edu", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, "alice@clemson.edu", user.Username)
	assert.NotEmpty(t, token)
}

func TestLoginFailuresAreGeneric(t *testing.T) {
	svc, _ := newAuthFixture(t)
	_, _, _, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	_, _, _, err = svc.Login(context.Background(), "alice@clemson.edu", "wrong-password")
	assert.Equal(t, apperrors.CodeUnauthorized, domainCode(t, err))

	_, _, _, err = svc.Login(context.Background(), "nobody@clemson.edu", "supersecret")
	assert.Equal(t, apperrors.CodeUnauthorized, domainCode(t, err))
}
