package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/study-match/internal/api/dto"
	"github.com/spec-kit/study-match/internal/auth"
	"github.com/spec-kit/study-match/internal/domain"
	"github.com/spec-kit/study-match/internal/service"
	apperrors "github.com/spec-kit/study-match/pkg/util/errorutil"
)

// RequestsHandler exposes the session-request lifecycle.
type RequestsHandler struct {
	requests *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requests *service.RequestService) *RequestsHandler {
	return &RequestsHandler{requests: requests}
}

// Send handles POST /api/requests.
func (h *RequestsHandler) Send(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.SendRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidPayload("invalid payload")
	}

	created, err := h.requests.Send(c.Context(), user.ID, req.ToUserID, req.Course, req.TimeSlot)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSessionRequestView(*created)})
}

// List handles GET /api/requests.
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	view, err := h.requests.ForUser(c.Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestsView(*view)})
}

// Accept handles POST /api/requests/:id/accept.
func (h *RequestsHandler) Accept(c *fiber.Ctx) error {
	return h.transition(c, h.requests.Accept)
}

// Decline handles POST /api/requests/:id/decline.
func (h *RequestsHandler) Decline(c *fiber.Ctx) error {
	return h.transition(c, h.requests.Decline)
}

// Cancel handles POST /api/requests/:id/cancel.
func (h *RequestsHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.requests.Cancel)
}

func (h *RequestsHandler) transition(c *fiber.Ctx, apply func(ctx context.Context, requestID, actorID int64) (*domain.SessionRequest, error)) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	requestID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewInvalidPayload("invalid request id")
	}

	updated, err := apply(c.Context(), requestID, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSessionRequestView(*updated)})
}
