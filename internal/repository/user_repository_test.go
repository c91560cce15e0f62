package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/study-match/internal/domain"
)

func TestUserRepositoryAssignsMonotonicIDs(t *testing.T) {
	repo := NewMemoryUserRepository()

	first := &domain.User{Username: "a@clemson.edu"}
	second := &domain.User{Username: "b@clemson.edu"}
	require.NoError(t, repo.Create(context.Background(), first))
	require.NoError(t, repo.Create(context.Background(), second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestUserRepositoryRejectsDuplicateUsername(t *testing.T) {
	repo := NewMemoryUserRepository()
	require.NoError(t, repo.Create(context.Background(), &domain.User{Username: "a@clemson.edu"}))

	err := repo.Create(context.Background(), &domain.User{Username: "a@clemson.edu"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserRepositoryUsernameIsCaseSensitive(t *testing.T) {
	repo := NewMemoryUserRepository()
	require.NoError(t, repo.Create(context.Background(), &domain.User{Username: "Alice@clemson.edu"}))

	_, err := repo.GetByUsername(context.Background(), "alice@clemson.edu")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepositoryLookups(t *testing.T) {
	repo := NewMemoryUserRepository()
	user := &domain.User{Username: "a@clemson.edu", Name: "Alice"}
	require.NoError(t, repo.Create(context.Background(), user))

	byID, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", byID.Name)

	byUsername, err := repo.GetByUsername(context.Background(), "a@clemson.edu")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUsername.ID)

	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepositoryUpdateUnknownUser(t *testing.T) {
	repo := NewMemoryUserRepository()

	err := repo.Update(context.Background(), &domain.User{ID: 7, Username: "x@clemson.edu"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepositoryListKeepsInsertionOrder(t *testing.T) {
	repo := NewMemoryUserRepository()
	for _, username := range []string{"a@clemson.edu", "b@clemson.edu", "c@clemson.edu"} {
		require.NoError(t, repo.Create(context.Background(), &domain.User{Username: username}))
	}

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "a@clemson.edu", users[0].Username)
	assert.Equal(t, "c@clemson.edu", users[2].Username)
}

func TestUserRepositoryReturnsSnapshots(t *testing.T) {
	repo := NewMemoryUserRepository()
	user := &domain.User{Username: "a@clemson.edu", Courses: []string{"CS101"}}
	require.NoError(t, repo.Create(context.Background(), user))

	fetched, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	fetched.Courses[0] = "HACKED"

	fresh, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101"}, fresh.Courses)
}
