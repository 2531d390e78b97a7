package users

import "time"

// User is the quota-bearing owner of documents, keyed by an external auth id.
type User struct {
	ID            string    `json:"id"`
	ClerkID       string    `json:"clerkId"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	DocumentsUsed int       `json:"documentsUsed"`
	MonthlyLimit  int       `json:"monthlyLimit"`
	LastReset     time.Time `json:"lastReset"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Remaining returns the number of documents the user may still process this period.
func (u User) Remaining() int {
	if remaining := u.MonthlyLimit - u.DocumentsUsed; remaining > 0 {
		return remaining
	}
	return 0
}
