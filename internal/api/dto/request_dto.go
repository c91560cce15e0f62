package dto

import (
	"time"

	"github.com/spec-kit/study-match/internal/domain"
	"github.com/spec-kit/study-match/internal/matching"
	"github.com/spec-kit/study-match/internal/service"
)

// SendRequestRequest payload for creating a session request.
type SendRequestRequest struct {
	ToUserID int64  `json:"to_user_id"`
	Course   string `json:"course"`
	TimeSlot string `json:"time_slot"`
}

// SessionRequestView is the full session-request record.
type SessionRequestView struct {
	ID         int64     `json:"id"`
	FromUserID int64     `json:"from_user_id"`
	ToUserID   int64     `json:"to_user_id"`
	Course     string    `json:"course"`
	TimeSlot   string    `json:"time_slot"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RequestsView splits a user's requests by direction.
type RequestsView struct {
	Incoming []SessionRequestView `json:"incoming"`
	Outgoing []SessionRequestView `json:"outgoing"`
}

// MatchView couples a classmate with the evidence for the match.
type MatchView struct {
	User                    UserView `json:"user"`
	SharedCourses           []string `json:"shared_courses"`
	OverlappingAvailability []string `json:"overlapping_availability"`
	Score                   int      `json:"score"`
}

// NewSessionRequestView maps a domain request.
func NewSessionRequestView(request domain.SessionRequest) SessionRequestView {
	return SessionRequestView{
		ID:         request.ID,
		FromUserID: request.FromUserID,
		ToUserID:   request.ToUserID,
		Course:     request.Course,
		TimeSlot:   request.TimeSlot,
		Status:     string(request.Status),
		CreatedAt:  request.CreatedAt,
		UpdatedAt:  request.UpdatedAt,
	}
}

// NewRequestsView maps the service view.
func NewRequestsView(view service.RequestsView) RequestsView {
	out := RequestsView{
		Incoming: make([]SessionRequestView, 0, len(view.Incoming)),
		Outgoing: make([]SessionRequestView, 0, len(view.Outgoing)),
	}
	for _, request := range view.Incoming {
		out.Incoming = append(out.Incoming, NewSessionRequestView(request))
	}
	for _, request := range view.Outgoing {
		out.Outgoing = append(out.Outgoing, NewSessionRequestView(request))
	}
	return out
}

// NewMatchViews maps engine output.
func NewMatchViews(matches []matching.Match) []MatchView {
	views := make([]MatchView, 0, len(matches))
	for _, match := range matches {
		views = append(views, MatchView{
			User:                    NewUserView(match.User),
			SharedCourses:           match.SharedCourses,
			OverlappingAvailability: match.OverlappingAvailability,
			Score:                   match.Score,
		})
	}
	return views
}
