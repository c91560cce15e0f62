package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/study-match/internal/api/dto"
	"github.com/spec-kit/study-match/internal/service"
	apperrors "github.com/spec-kit/study-match/pkg/util/errorutil"
)

// UsersHandler exposes auth endpoints for students.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidPayload("invalid payload")
	}

	user, token, exp, err := h.auth.Register(c.Context(), service.RegisterInput{
		Name:            req.Name,
		Username:        req.Username,
		Major:           req.Major,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserView(*user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidPayload("invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewMissingRequiredField("username and password")
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserView(*user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}
