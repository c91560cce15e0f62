package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/study-match/internal/domain"
	"github.com/spec-kit/study-match/internal/events"
	"github.com/spec-kit/study-match/internal/repository"
	apperrors "github.com/spec-kit/study-match/pkg/util/errorutil"
)

// RequestService enforces the session-request lifecycle: creation
// preconditions, authorization, and the status state machine.
type RequestService struct {
	users      repository.UserRepository
	requests   repository.RequestRepository
	dispatcher events.Dispatcher
}

// RequestDependencies bundles requirements for the request service.
type RequestDependencies struct {
	UserRepo    repository.UserRepository
	RequestRepo repository.RequestRepository
	Dispatcher  events.Dispatcher
}

// RequestsView splits a user's requests by direction.
type RequestsView struct {
	Incoming []domain.SessionRequest
	Outgoing []domain.SessionRequest
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	return &RequestService{
		users:      deps.UserRepo,
		requests:   deps.RequestRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Send validates and creates a pending session request. Existing pending
// requests between the same pair are not de-duplicated.
func (s *RequestService) Send(ctx context.Context, fromID, toID int64, course, timeSlot string) (*domain.SessionRequest, error) {
	course = strings.TrimSpace(course)
	timeSlot = strings.TrimSpace(timeSlot)
	if course == "" {
		return nil, apperrors.NewMissingRequiredField("course")
	}
	if timeSlot == "" {
		return nil, apperrors.NewMissingRequiredField("time_slot")
	}

	from, err := s.users.GetByID(ctx, fromID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized("acting user not found")
		}
		return nil, apperrors.MapError(err)
	}

	to, err := s.users.GetByID(ctx, toID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewRecipientNotFound(toID)
		}
		return nil, apperrors.MapError(err)
	}
	if to.ID == from.ID {
		return nil, apperrors.NewSelfRequest()
	}

	if !containsString(from.Courses, course) || !containsString(to.Courses, course) {
		return nil, apperrors.NewCourseNotShared(course)
	}
	if !containsString(from.Availability, timeSlot) || !containsString(to.Availability, timeSlot) {
		return nil, apperrors.NewSlotNotMutuallyAvailable(timeSlot)
	}

	request := &domain.SessionRequest{
		FromUserID: from.ID,
		ToUserID:   to.ID,
		Course:     course,
		TimeSlot:   timeSlot,
		Status:     domain.RequestStatusPending,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestCreated,
		RequestID: request.ID,
		ActorID:   from.ID,
		Payload: events.RequestCreatedPayload{
			FromUserID: request.FromUserID,
			ToUserID:   request.ToUserID,
			Course:     request.Course,
			TimeSlot:   request.TimeSlot,
		},
	})
	return request, nil
}

// Accept moves a pending request to accepted. Only the recipient may accept.
func (s *RequestService) Accept(ctx context.Context, requestID, actorID int64) (*domain.SessionRequest, error) {
	return s.transition(ctx, requestID, actorID, domain.RequestStatusAccepted)
}

// Decline moves a pending request to declined. Only the recipient may decline.
func (s *RequestService) Decline(ctx context.Context, requestID, actorID int64) (*domain.SessionRequest, error) {
	return s.transition(ctx, requestID, actorID, domain.RequestStatusDeclined)
}

// Cancel moves an accepted request to cancelled. Either participant may cancel.
func (s *RequestService) Cancel(ctx context.Context, requestID, actorID int64) (*domain.SessionRequest, error) {
	return s.transition(ctx, requestID, actorID, domain.RequestStatusCancelled)
}

// ForUser returns the user's requests split into incoming and outgoing,
// each in creation order.
func (s *RequestService) ForUser(ctx context.Context, userID int64) (*RequestsView, error) {
	requests, err := s.requests.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	view := &RequestsView{
		Incoming: []domain.SessionRequest{},
		Outgoing: []domain.SessionRequest{},
	}
	for _, request := range requests {
		if request.ToUserID == userID {
			view.Incoming = append(view.Incoming, request)
		} else {
			view.Outgoing = append(view.Outgoing, request)
		}
	}
	return view, nil
}

// transition applies the state machine inside the ledger's Update so the
// check-then-set is atomic. Authorization is checked before state, so an
// unauthorized actor learns nothing beyond the request's existence.
func (s *RequestService) transition(ctx context.Context, requestID, actorID int64, target domain.RequestStatus) (*domain.SessionRequest, error) {
	var oldStatus domain.RequestStatus

	updated, err := s.requests.Update(ctx, requestID, func(request *domain.SessionRequest) error {
		switch target {
		case domain.RequestStatusAccepted, domain.RequestStatusDeclined:
			if actorID != request.ToUserID {
				return apperrors.NewNotAuthorized("only the recipient may respond to a request")
			}
		case domain.RequestStatusCancelled:
			if actorID != request.FromUserID && actorID != request.ToUserID {
				return apperrors.NewNotAuthorized("only a participant may cancel a request")
			}
		default:
			return apperrors.NewInvalidState(string(request.Status))
		}

		if !isValidTransition(request.Status, target) {
			return apperrors.NewInvalidState(string(request.Status))
		}

		oldStatus = request.Status
		request.Status = target
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewRequestNotFound(requestID)
		}
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestStatusChanged,
		RequestID: updated.ID,
		ActorID:   actorID,
		Payload: events.RequestStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

func (s *RequestService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// pending can be answered either way; an accepted session may still be
// called off. Declined and cancelled are terminal.
var allowedTransitions = map[domain.RequestStatus][]domain.RequestStatus{
	domain.RequestStatusPending:   {domain.RequestStatusAccepted, domain.RequestStatusDeclined},
	domain.RequestStatusAccepted:  {domain.RequestStatusCancelled},
	domain.RequestStatusDeclined:  {},
	domain.RequestStatusCancelled: {},
}

func isValidTransition(current, next domain.RequestStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
