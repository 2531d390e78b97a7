package uploads

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"study-backend/internal/documents"
	"study-backend/internal/extract"
	"study-backend/internal/llm"
	"study-backend/internal/shared/storage/upload"
	"study-backend/internal/shared/telemetry"
	"study-backend/internal/users"
)

// minTextLen is the minimum number of extracted characters a document must
// yield before it is worth sending to the generation provider.
const minTextLen = 50

// ErrInsufficientContent is returned when extraction yields too little text.
var ErrInsufficientContent = errors.New("could not extract enough text from file")

// Service runs the upload pipeline: store the file, extract its text,
// generate study materials, persist the document, and charge the quota.
// The transient file is removed on every exit path.
type Service struct {
	Users     *users.Service
	Documents documents.Repo
	Store     *upload.Store
	LLM       llm.Client
}

// NewService constructs a Service.
func NewService(usersSvc *users.Service, docs documents.Repo, store *upload.Store, client llm.Client) *Service {
	return &Service{Users: usersSvc, Documents: docs, Store: store, LLM: client}
}

// Input describes one uploaded file and its owner.
type Input struct {
	ClerkID      string
	OriginalName string
	MimeType     string
	Language     string
	Body         io.Reader
}

// Process runs the full pipeline and returns the persisted document.
func (s *Service) Process(ctx context.Context, in Input) (documents.Document, error) {
	saved, err := s.Store.Save(ctx, in.OriginalName, in.Body)
	if err != nil {
		return documents.Document{}, err
	}
	defer func() {
		if err := s.Store.Remove(saved.Path); err != nil {
			telemetry.Error("upload cleanup failed", map[string]any{
				"path":  saved.Path,
				"error": err.Error(),
			})
		}
	}()

	user, err := s.Users.GetByClerkID(ctx, in.ClerkID)
	if err != nil {
		return documents.Document{}, err
	}
	if err := s.Users.CheckQuota(user); err != nil {
		return documents.Document{}, err
	}

	text, err := extract.TextFromFile(ctx, saved.Path, in.MimeType)
	if err != nil {
		return documents.Document{}, err
	}
	if len(strings.TrimSpace(text)) < minTextLen {
		return documents.Document{}, ErrInsufficientContent
	}

	generated, err := s.LLM.GenerateStudyMaterials(ctx, llm.GenerateInput{
		Text:     text,
		Language: normalizeLanguage(in.Language),
	})
	if err != nil {
		return documents.Document{}, err
	}

	doc := documents.Document{
		ID:               uuid.NewString(),
		UserID:           user.ID,
		FileName:         saved.StoredName,
		OriginalFilename: in.OriginalName,
		MimeType:         in.MimeType,
		SizeBytes:        saved.SizeBytes,
		Language:         normalizeLanguage(in.Language),
		Summary:          generated.Summary,
		Flashcards:       generated.Flashcards,
		ExamQuestions:    generated.ExamQuestions,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.Documents.Create(ctx, doc); err != nil {
		return documents.Document{}, err
	}

	// Usage is charged only after the document is durably stored. A crash
	// between these two writes favors the user, never double-charges them.
	if err := s.Users.IncrementUsed(ctx, user.ID); err != nil {
		telemetry.Error("usage increment failed after persist", map[string]any{
			"userId":     user.ID,
			"documentId": doc.ID,
			"error":      err.Error(),
		})
	}

	return doc, nil
}

func normalizeLanguage(language string) string {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case "arabic":
		return "arabic"
	default:
		return "english"
	}
}
