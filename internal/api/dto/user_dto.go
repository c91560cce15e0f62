package dto

import (
	"time"

	"github.com/spec-kit/study-match/internal/domain"
)

// RegisterRequest payload for new students.
type RegisterRequest struct {
	Name            string `json:"name"`
	Username        string `json:"username"`
	Major           string `json:"major"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UpdateProfileRequest payload for name/major changes.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Major string `json:"major"`
}

// CoursesRequest payload for replacing the course set.
type CoursesRequest struct {
	Courses StringList `json:"courses"`
}

// AvailabilityRequest payload for replacing the availability set.
type AvailabilityRequest struct {
	Availability StringList `json:"availability"`
}

// UserView is the minimal listing shape for a student.
type UserView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Major    string `json:"major"`
}

// ProfileView extends UserView with the owner-visible sets.
type ProfileView struct {
	UserView
	Courses      []string `json:"courses"`
	Availability []string `json:"availability"`
}

// NewUserView maps a domain user to its listing shape. The password hash
// never leaves the service.
func NewUserView(user domain.User) UserView {
	return UserView{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Major:    user.Major,
	}
}

// NewProfileView maps a domain user to the owner's profile shape.
func NewProfileView(user domain.User) ProfileView {
	return ProfileView{
		UserView:     NewUserView(user),
		Courses:      append([]string{}, user.Courses...),
		Availability: append([]string{}, user.Availability...),
	}
}
