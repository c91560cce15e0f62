package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/study-match/internal/api/dto"
	"github.com/spec-kit/study-match/internal/auth"
	"github.com/spec-kit/study-match/internal/matching"
	"github.com/spec-kit/study-match/internal/service"
	apperrors "github.com/spec-kit/study-match/pkg/util/errorutil"
)

// MatchesHandler exposes suggestions and classmate search.
type MatchesHandler struct {
	matches *service.MatchService
}

// NewMatchesHandler constructs handler.
func NewMatchesHandler(matches *service.MatchService) *MatchesHandler {
	return &MatchesHandler{matches: matches}
}

// Suggestions handles GET /api/matches.
func (h *MatchesHandler) Suggestions(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	matches, err := h.matches.SuggestedMatches(c.Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMatchViews(matches)})
}

// Search handles GET /api/classmates. The availability key may repeat for
// multi-select filters.
func (h *MatchesHandler) Search(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	filter := matching.SearchFilter{
		Course:       c.Query("course"),
		Major:        c.Query("major"),
		Availability: queryValues(c, "availability"),
	}

	matches, err := h.matches.SearchClassmates(c.Context(), user.ID, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMatchViews(matches)})
}

func queryValues(c *fiber.Ctx, key string) []string {
	raw := c.Context().QueryArgs().PeekMulti(key)
	values := make([]string, 0, len(raw))
	for _, value := range raw {
		if len(value) == 0 {
			continue
		}
		values = append(values, string(value))
	}
	return values
}
