package users

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGetOrCreateLazyCreate(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, 10)

	user, err := svc.GetOrCreate(context.Background(), "clerk-1", "", "")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if user.ClerkID != "clerk-1" {
		t.Fatalf("clerk id = %q", user.ClerkID)
	}
	if user.Email != "user-clerk-1@example.com" {
		t.Fatalf("default email = %q", user.Email)
	}
	if user.Name != "User" {
		t.Fatalf("default name = %q", user.Name)
	}
	if user.MonthlyLimit != 10 {
		t.Fatalf("monthly limit = %d", user.MonthlyLimit)
	}

	again, err := svc.GetOrCreate(context.Background(), "clerk-1", "other@example.com", "Other")
	if err != nil {
		t.Fatalf("GetOrCreate second call: %v", err)
	}
	if again.ID != user.ID {
		t.Fatalf("second call created a new user")
	}
	if again.Email != user.Email {
		t.Fatalf("existing profile overwritten: %q", again.Email)
	}
}

func TestGetOrCreateUsesProvidedProfile(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, 10)

	user, err := svc.GetOrCreate(context.Background(), "clerk-2", "jo@example.com", "Jo")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if user.Email != "jo@example.com" || user.Name != "Jo" {
		t.Fatalf("profile = %q / %q", user.Email, user.Name)
	}
}

func TestGetOrCreateResetsAfterPeriod(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, 10)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.Now = func() time.Time { return now }

	created, err := svc.GetOrCreate(context.Background(), "clerk-3", "", "")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	// Backdate the reset marker and give the user some usage.
	stored := repo.data[created.ID]
	stored.DocumentsUsed = 7
	stored.LastReset = now.Add(-ResetPeriod)
	repo.data[created.ID] = stored

	user, err := svc.GetOrCreate(context.Background(), "clerk-3", "", "")
	if err != nil {
		t.Fatalf("GetOrCreate after period: %v", err)
	}
	if user.DocumentsUsed != 0 {
		t.Fatalf("documents used = %d, want reset to 0", user.DocumentsUsed)
	}
	if !user.LastReset.Equal(now) {
		t.Fatalf("last reset = %v, want %v", user.LastReset, now)
	}
}

func TestGetOrCreateKeepsUsageInsidePeriod(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, 10)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.Now = func() time.Time { return now }

	created, err := svc.GetOrCreate(context.Background(), "clerk-4", "", "")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	stored := repo.data[created.ID]
	stored.DocumentsUsed = 7
	stored.LastReset = now.Add(-ResetPeriod + time.Second)
	repo.data[created.ID] = stored

	user, err := svc.GetOrCreate(context.Background(), "clerk-4", "", "")
	if err != nil {
		t.Fatalf("GetOrCreate inside period: %v", err)
	}
	if user.DocumentsUsed != 7 {
		t.Fatalf("documents used = %d, want 7", user.DocumentsUsed)
	}
}

func TestCheckQuota(t *testing.T) {
	svc := NewService(NewMemoryRepo(), 10)

	if err := svc.CheckQuota(User{DocumentsUsed: 9, MonthlyLimit: 10}); err != nil {
		t.Fatalf("CheckQuota below limit: %v", err)
	}
	if err := svc.CheckQuota(User{DocumentsUsed: 10, MonthlyLimit: 10}); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("CheckQuota at limit = %v, want ErrLimitReached", err)
	}
	if err := svc.CheckQuota(User{DocumentsUsed: 11, MonthlyLimit: 10}); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("CheckQuota over limit = %v, want ErrLimitReached", err)
	}
}

func TestRemaining(t *testing.T) {
	if got := (User{DocumentsUsed: 3, MonthlyLimit: 10}).Remaining(); got != 7 {
		t.Fatalf("Remaining = %d, want 7", got)
	}
	if got := (User{DocumentsUsed: 12, MonthlyLimit: 10}).Remaining(); got != 0 {
		t.Fatalf("Remaining over limit = %d, want 0", got)
	}
}
