package progress

import "context"

type errNotFound struct{}

func (errNotFound) Error() string { return "flashcard progress not found" }

// ErrNotFound is returned when no progress row exists for a lookup.
var ErrNotFound = errNotFound{}

// Repo defines persistence for flashcard progress.
type Repo interface {
	// Upsert records the mastered state for (userID, documentID, cardIndex),
	// creating the row if it does not exist, and returns the stored record.
	Upsert(ctx context.Context, p FlashcardProgress) (FlashcardProgress, error)
	// ListByDocument returns all progress rows for a user's document.
	ListByDocument(ctx context.Context, userID, documentID string) ([]FlashcardProgress, error)
}
