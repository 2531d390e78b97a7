package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains the quota-ledger business logic.
type Service struct {
	Repo         Repo
	DefaultLimit int
}

// NewService constructs a Service with the configured default monthly limit.
func NewService(repo Repo, defaultLimit int) *Service {
	return &Service{Repo: repo, DefaultLimit: defaultLimit}
}

// GetOrCreate returns the user for an external id, creating it lazily with
// defaults, and applies the rolling usage reset.
func (s *Service) GetOrCreate(ctx context.Context, clerkID, email, name string) (User, error) {
	if strings.TrimSpace(clerkID) == "" {
		return User{}, errors.New("clerk id is required")
	}

	user, err := s.Repo.GetByClerkID(ctx, clerkID)
	if errors.Is(err, ErrNotFound) {
		user = User{
			ID:           uuid.NewString(),
			ClerkID:      clerkID,
			Email:        defaultEmail(clerkID, email),
			Name:         defaultName(name),
			MonthlyLimit: s.DefaultLimit,
			LastReset:    time.Now().UTC(),
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.Repo.Create(ctx, user); err != nil {
			return User{}, err
		}
		return user, nil
	}
	if err != nil {
		return User{}, err
	}

	return s.Repo.EnsurePeriod(ctx, user.ID, ResetPeriod)
}

// GetByClerkID returns the user for an external id without creating one.
func (s *Service) GetByClerkID(ctx context.Context, clerkID string) (User, error) {
	if strings.TrimSpace(clerkID) == "" {
		return User{}, errors.New("clerk id is required")
	}
	return s.Repo.GetByClerkID(ctx, clerkID)
}

// CheckQuota reports whether the user may process another document.
func (s *Service) CheckQuota(user User) error {
	if user.DocumentsUsed >= user.MonthlyLimit {
		return ErrLimitReached
	}
	return nil
}

// IncrementUsed adds one to the user's usage counter.
func (s *Service) IncrementUsed(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errors.New("user id is required")
	}
	return s.Repo.IncrementUsed(ctx, userID)
}

func defaultEmail(clerkID, email string) string {
	if trimmed := strings.TrimSpace(email); trimmed != "" {
		return trimmed
	}
	return fmt.Sprintf("user-%s@example.com", clerkID)
}

func defaultName(name string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	return "User"
}
