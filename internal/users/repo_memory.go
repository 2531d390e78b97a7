package users

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]User // userID -> user

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]User),
		Now:  time.Now,
	}
}

func (r *MemoryRepo) GetByClerkID(ctx context.Context, clerkID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.data {
		if user.ClerkID == clerkID {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) Create(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[user.ID] = user
	return nil
}

func (r *MemoryRepo) EnsurePeriod(ctx context.Context, userID string, period time.Duration) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.data[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	now := r.Now().UTC()
	if now.Sub(user.LastReset) >= period {
		user.DocumentsUsed = 0
		user.LastReset = now
		r.data[userID] = user
	}
	return user, nil
}

func (r *MemoryRepo) IncrementUsed(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.data[userID]
	if !ok {
		return ErrNotFound
	}
	user.DocumentsUsed++
	r.data[userID] = user
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
