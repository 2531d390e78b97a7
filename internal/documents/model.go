package documents

import (
	"time"

	"study-backend/internal/materials"
)

// Document is an uploaded document and its generated study materials,
// owned by exactly one user. Immutable after creation except deletion.
type Document struct {
	ID               string                   `json:"id"`
	UserID           string                   `json:"userId"`
	FileName         string                   `json:"filename"`
	OriginalFilename string                   `json:"originalName"`
	MimeType         string                   `json:"fileType"`
	SizeBytes        int64                    `json:"fileSize"`
	Language         string                   `json:"language"`
	Summary          string                   `json:"summary"`
	Flashcards       []materials.Flashcard    `json:"flashcards"`
	ExamQuestions    []materials.ExamQuestion `json:"examQuestions"`
	CreatedAt        time.Time                `json:"uploadDate"`
}
