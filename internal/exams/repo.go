package exams

import "context"

// Repo defines persistence for exam attempts. Attempts are append-only.
type Repo interface {
	Create(ctx context.Context, attempt ExamAttempt) error
	// ListByDocument returns a user's attempts for one document, newest first.
	ListByDocument(ctx context.Context, userID, documentID string) ([]ExamAttempt, error)
}
