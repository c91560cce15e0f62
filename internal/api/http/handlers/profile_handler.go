package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/study-match/internal/api/dto"
	"github.com/spec-kit/study-match/internal/auth"
	"github.com/spec-kit/study-match/internal/service"
	apperrors "github.com/spec-kit/study-match/pkg/util/errorutil"
)

// ProfileHandler exposes the authenticated student's profile.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Me handles GET /api/me.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileView(*user)})
}

// UpdateMe handles PUT /api/me.
func (h *ProfileHandler) UpdateMe(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidPayload("invalid payload")
	}

	updated, err := h.profiles.UpdateProfile(c.Context(), user.ID, req.Name, req.Major)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileView(*updated)})
}

// SetCourses handles PUT /api/me/courses.
func (h *ProfileHandler) SetCourses(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CoursesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidPayload("invalid payload")
	}

	updated, err := h.profiles.SetCourses(c.Context(), user.ID, req.Courses)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileView(*updated)})
}

// SetAvailability handles PUT /api/me/availability.
func (h *ProfileHandler) SetAvailability(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.AvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidPayload("invalid payload")
	}

	updated, err := h.profiles.SetAvailability(c.Context(), user.ID, req.Availability)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileView(*updated)})
}
