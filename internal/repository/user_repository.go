package repository

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/study-match/internal/domain"
)

// UserRepository defines access to registered users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type memoryUserRepository struct {
	mu         sync.Mutex
	nextID     int64
	byID       map[int64]*domain.User
	byUsername map[string]int64
	order      []int64
}

// NewMemoryUserRepository returns an in-memory implementation. State is lost
// on restart; ids are assigned monotonically under the repository lock.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:       make(map[int64]*domain.User),
		byUsername: make(map[string]int64),
	}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[user.Username]; exists {
		return ErrDuplicate
	}

	r.nextID++
	now := time.Now()
	user.ID = r.nextID
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := cloneUser(user)
	r.byID[stored.ID] = stored
	r.byUsername[stored.Username] = stored.ID
	r.order = append(r.order, stored.ID)
	return nil
}

func (r *memoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[user.ID]
	if !ok {
		return ErrNotFound
	}

	user.CreatedAt = current.CreatedAt
	user.UpdatedAt = time.Now()

	stored := cloneUser(user)
	r.byID[stored.ID] = stored
	r.byUsername[stored.Username] = stored.ID
	return nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *memoryUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *memoryUserRepository) List(ctx context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, *cloneUser(r.byID[id]))
	}
	return users, nil
}

// cloneUser copies the record so callers work on snapshots, never on the
// stored instance.
func cloneUser(user *domain.User) *domain.User {
	copied := *user
	copied.Courses = append([]string(nil), user.Courses...)
	copied.Availability = append([]string(nil), user.Availability...)
	return &copied
}
