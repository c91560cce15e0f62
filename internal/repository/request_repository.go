package repository

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/study-match/internal/domain"
)

// RequestRepository is the ledger of session requests. Requests are never
// deleted; Update applies a validating mutator under the ledger lock so that
// a status check-then-set cannot interleave with another on the same id.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.SessionRequest) error
	GetByID(ctx context.Context, id int64) (*domain.SessionRequest, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.SessionRequest, error)
	Update(ctx context.Context, id int64, mutate func(*domain.SessionRequest) error) (*domain.SessionRequest, error)
}

type memoryRequestRepository struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*domain.SessionRequest
	order  []int64
}

// NewMemoryRequestRepository returns an in-memory ledger.
func NewMemoryRequestRepository() RequestRepository {
	return &memoryRequestRepository{
		byID: make(map[int64]*domain.SessionRequest),
	}
}

func (r *memoryRequestRepository) Create(ctx context.Context, request *domain.SessionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now()
	request.ID = r.nextID
	request.CreatedAt = now
	request.UpdatedAt = now

	stored := *request
	r.byID[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	return nil
}

func (r *memoryRequestRepository) GetByID(ctx context.Context, id int64) (*domain.SessionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *request
	return &copied, nil
}

func (r *memoryRequestRepository) ListByUser(ctx context.Context, userID int64) ([]domain.SessionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	requests := []domain.SessionRequest{}
	for _, id := range r.order {
		request := r.byID[id]
		if request.FromUserID == userID || request.ToUserID == userID {
			requests = append(requests, *request)
		}
	}
	return requests, nil
}

// Update runs the mutator against a working copy and commits only on success,
// so a failed validation leaves the stored record untouched.
func (r *memoryRequestRepository) Update(ctx context.Context, id int64, mutate func(*domain.SessionRequest) error) (*domain.SessionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	working := *current
	if err := mutate(&working); err != nil {
		return nil, err
	}
	working.UpdatedAt = time.Now()
	r.byID[id] = &working

	copied := working
	return &copied, nil
}
