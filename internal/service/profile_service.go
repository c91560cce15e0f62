package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/study-match/internal/domain"
	"github.com/spec-kit/study-match/internal/repository"
	apperrors "github.com/spec-kit/study-match/pkg/util/errorutil"
)

// ProfileService mutates the profile fields of the authenticated student.
type ProfileService struct {
	users repository.UserRepository
}

// NewProfileService builds the service.
func NewProfileService(users repository.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// UpdateProfile changes name and major.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, name, major string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewMissingRequiredField("name")
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = name
	user.Major = strings.TrimSpace(major)
	return s.save(ctx, user)
}

// SetCourses replaces the course set. Input is normalized: trimmed, empties
// dropped, duplicates suppressed, insertion order kept.
func (s *ProfileService) SetCourses(ctx context.Context, userID int64, courses []string) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Courses = normalizeSet(courses)
	return s.save(ctx, user)
}

// SetAvailability replaces the availability set, normalized the same way.
func (s *ProfileService) SetAvailability(ctx context.Context, userID int64, slots []string) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Availability = normalizeSet(slots)
	return s.save(ctx, user)
}

func (s *ProfileService) getUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized("user not found")
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func (s *ProfileService) save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// normalizeSet flattens raw form input into a duplicate-free string set.
func normalizeSet(values []string) []string {
	out := []string{}
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
