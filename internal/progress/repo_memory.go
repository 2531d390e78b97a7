package progress

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]FlashcardProgress // (userID|documentID|cardIndex) -> progress
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]FlashcardProgress),
	}
}

func progressKey(userID, documentID string, cardIndex int) string {
	return fmt.Sprintf("%s|%s|%d", userID, documentID, cardIndex)
}

func (r *MemoryRepo) Upsert(ctx context.Context, p FlashcardProgress) (FlashcardProgress, error) {
	if err := ctx.Err(); err != nil {
		return FlashcardProgress{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := progressKey(p.UserID, p.DocumentID, p.CardIndex)
	if existing, ok := r.data[key]; ok {
		p.ID = existing.ID
	} else {
		p.ID = uuid.NewString()
	}
	r.data[key] = p
	return p, nil
}

func (r *MemoryRepo) ListByDocument(ctx context.Context, userID, documentID string) ([]FlashcardProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var out []FlashcardProgress
	for _, p := range r.data {
		if p.UserID == userID && p.DocumentID == documentID {
			out = append(out, p)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CardIndex < out[j].CardIndex })
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
