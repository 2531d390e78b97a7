package progress

import "time"

// FlashcardProgress tracks a user's mastery of a single card in a document.
type FlashcardProgress struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	DocumentID   string    `json:"documentId"`
	CardIndex    int       `json:"cardIndex"`
	Mastered     bool      `json:"mastered"`
	LastReviewed time.Time `json:"lastReviewed"`
}
