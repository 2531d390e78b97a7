package users

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "user not found" }

// ErrLimitReached indicates the user exhausted their monthly document quota.
var ErrLimitReached = errors.New("monthly upload limit reached")

// ResetPeriod is the rolling window after which the usage counter resets.
const ResetPeriod = 30 * 24 * time.Hour

type Repo interface {
	GetByClerkID(ctx context.Context, clerkID string) (User, error)
	Create(ctx context.Context, user User) error
	// EnsurePeriod resets the usage counter when the reset period elapsed and
	// returns the up-to-date user.
	EnsurePeriod(ctx context.Context, userID string, period time.Duration) (User, error)
	IncrementUsed(ctx context.Context, userID string) error
}
