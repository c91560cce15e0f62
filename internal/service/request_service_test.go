package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/study-match/internal/domain"
	"github.com/spec-kit/study-match/internal/repository"
	apperrors "github.com/spec-kit/study-match/pkg/util/errorutil"
)

type lifecycleFixture struct {
	users    repository.UserRepository
	requests repository.RequestRepository
	svc      *RequestService
}

func newLifecycleFixture(t *testing.T) *lifecycleFixture {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	requests := repository.NewMemoryRequestRepository()
	svc := NewRequestService(RequestDependencies{
		UserRepo:    users,
		RequestRepo: requests,
	})
	return &lifecycleFixture{users: users, requests: requests, svc: svc}
}

func (f *lifecycleFixture) addUser(t *testing.T, username string, courses, availability []string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:     username,
		Name:         username,
		Courses:      courses,
		Availability: availability,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	return de.Code
}

func TestSendRequestRecipientNotFound(t *testing.T) {
	f := newLifecycleFixture(t)
	from := f.addUser(t, "a@clemson.edu", []string{"CS101"}, []string{"Mon10"})

	_, err := f.svc.Send(context.Background(), from.ID, 99, "CS101", "Mon10")
	assert.Equal(t, apperrors.CodeRecipientNotFound, domainCode(t, err))
}

func TestSendRequestToSelf(t *testing.T) {
	f := newLifecycleFixture(t)
	from := f.addUser(t, "a@clemson.edu", []string{"CS101"}, []string{"Mon10"})

	_, err := f.svc.Send(context.Background(), from.ID, from.ID, "CS101", "Mon10")
	assert.Equal(t, apperrors.CodeSelfRequest, domainCode(t, err))
}

func TestSendRequestCourseNotShared(t *testing.T) {
	f := newLifecycleFixture(t)
	from := f.addUser(t, "a@clemson.edu", []string{"CS101"}, []string{"Mon10"})
	to := f.addUser(t, "b@clemson.edu", []string{"MATH1"}, []string{"Mon10"})

	// recipient lacks the course
	_, err := f.svc.Send(context.Background(), from.ID, to.ID, "CS101", "Mon10")
	assert.Equal(t, apperrors.CodeCourseNotShared, domainCode(t, err))

	// sender lacks the course
	_, err = f.svc.Send(context.Background(), from.ID, to.ID, "MATH1", "Mon10")
	assert.Equal(t, apperrors.CodeCourseNotShared, domainCode(t, err))
}

func TestSendRequestSlotNotMutuallyAvailable(t *testing.T) {
	f := newLifecycleFixture(t)
	from := f.addUser(t, "a@clemson.edu", []string{"CS101"}, []string{"Mon10"})
	to := f.addUser(t, "b@clemson.edu", []string{"CS101"}, []string{"Tue11"})

	_, err := f.svc.Send(context.Background(), from.ID, to.ID, "CS101", "Mon10")
	assert.Equal(t, apperrors.CodeSlotNotMutuallyAvailable, domainCode(t, err))
}

func TestSendRequestMissingFields(t *testing.T) {
	f := newLifecycleFixture(t)
	from := f.addUser(t, "a@clemson.edu", []string{"CS101"}, []string{"Mon10"})
	to := f.addUser(t, "b@clemson.edu", []string{"CS101"}, []string{"Mon10"})

	_, err := f.svc.Send(context.Background(), from.ID, to.ID, "", "Mon10")
	assert.Equal(t, apperrors.CodeMissingRequiredField, domainCode(t, err))

	_, err = f.svc.Send(context.Background(), from.ID, to.ID, "CS101", "")
	assert.Equal(t, apperrors.CodeMissingRequiredField, domainCode(t, err))
}

func TestSendRequestCreatesPending(t *testing.T) {
	f := newLifecycleFixture(t)
	from := f.addUser(t, "a@clemson.edu", []string{"CS101"}, []string{"Mon10"})
	to := f.addUser(t, "b@clemson.edu", []string{"CS101"}, []string{"Mon10"})

	request, err := f.svc.Send(context.Background(), from.ID, to.ID, "CS101", "Mon10")
	require.NoError(t, err)

	assert.Equal(t, domain.RequestStatusPending, request.Status)
	assert.Equal(t, from.ID, request.FromUserID)
	assert.Equal(t, to.ID, request.ToUserID)
	assert.NotZero(t, request.ID)
	assert.False(t, request.CreatedAt.IsZero())
}

func TestSendRequestAllowsDuplicatePending(t *testing.T) {
	f := newLifecycleFixture(t)
	from := f.addUser(t, "a@clemson.edu", []string{"CS101"}, []string{"Mon10"})
	to := f.addUser(t, "b@clemson.edu", []string{"CS101"}, []string{"Mon10"})

	first, err := f.svc.Send(context.Background(), from.ID, to.ID, "CS101", "Mon10")
	require.NoError(t, err)
	second, err := f.svc.Send(context.Background(), from.ID, to.ID, "CS101", "Mon10")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, domain.RequestStatusPending, second.Status)
}

func TestAcceptUnknownRequest(t *testing.T) {
	f := newLifecycleFixture(t)
	actor := f.addUser(t, "a@clemson.edu", nil, nil)

	_, err := f.svc.Accept(context.Background(), 42, actor.ID)
	assert.Equal(t, apperrors.CodeRequestNotFound, domainCode(t, err))
}

func TestAcceptRequiresRecipient(t *testing.T) {
	f := newLifecycleFixture(t)
	from := f.addUser(t, "a@clemson.edu", []string{"CS101"}, []string{"Mon10"})
	to := f.addUser(t, "b@clemson.edu", []string{"CS101"}, []string{"Mon10"})
	request, err := f.svc.Send(context.Background(), from.ID, to.ID, "CS101", "Mon10")
	require.NoError(t, err)

	_, err = f.svc.Accept(context.Background(), request.ID, from.ID)
	assert.Equal(t, apperrors.CodeNotAuthorized, domainCode(t, err))

	// failed authorization must not touch the record
	stored, err := f.requests.GetByID(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, stored.Status)
}

func TestAcceptTwiceFailsSecondCall(t *testing.T) {
	f := newLifecycleFixture(t)
	from := f.addUser(t, "a@clemson.edu", []string{"CS101"}, []string{"Mon10"})
	to := f.addUser(t, "b@clemson.edu", []string{"CS101"}, []string{"Mon10"})
	request, err := f.svc.Send(context.Background(), from.ID, to.ID, "CS101", "Mon10")
	require.NoError(t, err)

	accepted, err := f.svc.Accept(context.Background(), request.ID, to.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusAccepted, accepted.Status)

	_, err = f.svc.Accept(context.Background(), request.ID, to.ID)
	assert.Equal(t, apperrors.CodeInvalidState, domainCode(t, err))
}

func TestDeclineTwiceFailsSecondCall(t *testing.T) {
	f := newLifecycleFixture(t)
	from := f.addUser(t, "a@clemson.edu", []string{"CS101"}, []string{"Mon10"})
	to := f.addUser(t, "b@clemson.edu", []string{"CS101"}, []string{"Mon10"})
	request, err := f.svc.Send(context.Background(), from.ID, to.ID, "CS101", "Mon10")
	require.NoError(t, err)

	declined, err := f.svc.Decline(context.Background(), request.ID, to.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusDeclined, declined.Status)

	_, err = f.svc.Decline(context.Background(), request.ID, to.ID)
	assert.Equal(t, apperrors.CodeInvalidState, domainCode(t, err))
}

func TestCancelPendingFails(t *testing.T) {
	f := newLifecycleFixture(t)
	from := f.addUser(t, "a@clemson.edu", []string{"CS101"}, []string{"Mon10"})
	to := f.addUser(t, "b@clemson.edu", []string{"CS101"}, []string{"Mon10"})
	request, err := f.svc.Send(context.Background(), from.ID, to.ID, "CS101", "Mon10")
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), request.ID, from.ID)
	assert.Equal(t, apperrors.CodeInvalidState, domainCode(t, err))
}

func TestCancelByNonParticipantFailsRegardlessOfStatus(t *testing.T) {
	f := newLifecycleFixture(t)
	from := f.addUser(t, "a@clemson.edu", []string{"CS101"}, []string{"Mon10"})
	to := f.addUser(t, "b@clemson.edu", []string{"CS101"}, []string{"Mon10"})
	outsider := f.addUser(t, "c@clemson.edu", nil, nil)
	request, err := f.svc.Send(context.Background(), from.ID, to.ID, "CS101", "Mon10")
	require.NoError(t, err)

	// pending: authorization failure wins over the state failure
	_, err = f.svc.Cancel(context.Background(), request.ID, outsider.ID)
	assert.Equal(t, apperrors.CodeNotAuthorized, domainCode(t, err))

	_, err = f.svc.Accept(context.Background(), request.ID, to.ID)
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), request.ID, outsider.ID)
	assert.Equal(t, apperrors.CodeNotAuthorized, domainCode(t, err))
}

func TestCancelAcceptedByEitherParticipant(t *testing.T) {
	f := newLifecycleFixture(t)
	from := f.addUser(t, "a@clemson.edu", []string{"CS101"}, []string{"Mon10"})
	to := f.addUser(t, "b@clemson.edu", []string{"CS101"}, []string{"Mon10"})

	for _, actor := range []int64{from.ID, to.ID} {
		request, err := f.svc.Send(context.Background(), from.ID, to.ID, "CS101", "Mon10")
		require.NoError(t, err)
		_, err = f.svc.Accept(context.Background(), request.ID, to.ID)
		require.NoError(t, err)

		cancelled, err := f.svc.Cancel(context.Background(), request.ID, actor)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusCancelled, cancelled.Status)
	}
}

func TestLifecycleEndToEnd(t *testing.T) {
	f := newLifecycleFixture(t)
	a := f.addUser(t, "a@clemson.edu", []string{"CS101"}, []string{"Mon10"})
	b := f.addUser(t, "b@clemson.edu", []string{"CS101"}, []string{"Mon10"})

	request, err := f.svc.Send(context.Background(), b.ID, a.ID, "CS101", "Mon10")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, request.Status)

	accepted, err := f.svc.Accept(context.Background(), request.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusAccepted, accepted.Status)

	cancelled, err := f.svc.Cancel(context.Background(), request.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusCancelled, cancelled.Status)

	_, err = f.svc.Cancel(context.Background(), request.ID, a.ID)
	assert.Equal(t, apperrors.CodeInvalidState, domainCode(t, err))
}

func TestForUserSplitsDirections(t *testing.T) {
	f := newLifecycleFixture(t)
	a := f.addUser(t, "a@clemson.edu", []string{"CS101"}, []string{"Mon10"})
	b := f.addUser(t, "b@clemson.edu", []string{"CS101"}, []string{"Mon10"})
	c := f.addUser(t, "c@clemson.edu", []string{"CS101"}, []string{"Mon10"})

	sent, err := f.svc.Send(context.Background(), a.ID, b.ID, "CS101", "Mon10")
	require.NoError(t, err)
	received, err := f.svc.Send(context.Background(), c.ID, a.ID, "CS101", "Mon10")
	require.NoError(t, err)

	view, err := f.svc.ForUser(context.Background(), a.ID)
	require.NoError(t, err)

	require.Len(t, view.Outgoing, 1)
	assert.Equal(t, sent.ID, view.Outgoing[0].ID)
	require.Len(t, view.Incoming, 1)
	assert.Equal(t, received.ID, view.Incoming[0].ID)

	// uninvolved users see nothing
	other, err := f.svc.ForUser(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Len(t, other.Incoming, 1)
	assert.Len(t, other.Outgoing, 0)
}
