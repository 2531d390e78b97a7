package exams

import (
	"encoding/json"
	"time"
)

// ExamAttempt is one completed exam run over a document's questions.
// Answers holds the raw per-question answer payload supplied by the client.
type ExamAttempt struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	DocumentID     string          `json:"documentId"`
	Score          int             `json:"score"`
	TotalQuestions int             `json:"totalQuestions"`
	Answers        json.RawMessage `json:"answers"`
	CreatedAt      time.Time       `json:"createdAt"`
}
