package service

import (
	"context"
	"errors"

	"github.com/spec-kit/study-match/internal/domain"
	"github.com/spec-kit/study-match/internal/matching"
	"github.com/spec-kit/study-match/internal/repository"
	apperrors "github.com/spec-kit/study-match/pkg/util/errorutil"
)

// MatchService runs the matching engine over identity store snapshots.
type MatchService struct {
	users repository.UserRepository
}

// NewMatchService builds the service.
func NewMatchService(users repository.UserRepository) *MatchService {
	return &MatchService{users: users}
}

// SuggestedMatches returns ranked study-partner suggestions for the user.
func (s *MatchService) SuggestedMatches(ctx context.Context, userID int64) ([]matching.Match, error) {
	self, candidates, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return matching.SuggestedMatches(*self, candidates), nil
}

// SearchClassmates filters the student body against the user.
func (s *MatchService) SearchClassmates(ctx context.Context, userID int64, filter matching.SearchFilter) ([]matching.Match, error) {
	self, candidates, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return matching.SearchClassmates(*self, candidates, filter), nil
}

func (s *MatchService) snapshot(ctx context.Context, userID int64) (*domain.User, []domain.User, error) {
	self, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperrors.NewUnauthorized("user not found")
		}
		return nil, nil, apperrors.MapError(err)
	}
	candidates, err := s.users.List(ctx)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return self, candidates, nil
}
