package uploads

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"study-backend/internal/documents"
	"study-backend/internal/extract"
	"study-backend/internal/llm"
	"study-backend/internal/materials"
	"study-backend/internal/shared/storage/upload"
	"study-backend/internal/users"
)

type fakeLLM struct {
	calls  int
	result materials.StudyMaterials
	err    error
}

func (f *fakeLLM) GenerateStudyMaterials(ctx context.Context, input llm.GenerateInput) (materials.StudyMaterials, error) {
	_ = ctx
	_ = input
	f.calls++
	if f.err != nil {
		return materials.StudyMaterials{}, f.err
	}
	return f.result, nil
}

func validMaterials() materials.StudyMaterials {
	return materials.StudyMaterials{
		Summary:    "A summary.",
		Flashcards: []materials.Flashcard{{Question: "q", Answer: "a"}},
		ExamQuestions: []materials.ExamQuestion{{
			Type:          materials.QuestionTypeShortAnswer,
			Question:      "why",
			CorrectAnswer: "because",
		}},
	}
}

// mediumBandMaterials returns a card count inside the 10-15 medium band.
func mediumBandMaterials() materials.StudyMaterials {
	m := validMaterials()
	m.Flashcards = nil
	for i := 0; i < 12; i++ {
		m.Flashcards = append(m.Flashcards, materials.Flashcard{
			Question: fmt.Sprintf("q%d", i),
			Answer:   fmt.Sprintf("a%d", i),
		})
	}
	return m
}

func docxFixture(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	fmt.Fprintf(w, `<w:document xmlns:w="x"><w:body><w:p><w:r><w:t>%s</w:t></w:r></w:p></w:body></w:document>`, text)
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func assertNoTransientFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("upload dir not empty after pipeline: %d files", len(entries))
	}
}

type pipelineFixture struct {
	svc      *Service
	llm      *fakeLLM
	usersSvc *users.Service
	docs     *documents.MemoryRepo
	dir      string
	user     users.User
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()
	dir := t.TempDir()
	usersSvc := users.NewService(users.NewMemoryRepo(), 10)
	docs := documents.NewMemoryRepo()
	client := &fakeLLM{result: validMaterials()}
	svc := NewService(usersSvc, docs, upload.New(dir), client)

	user, err := usersSvc.GetOrCreate(context.Background(), "clerk-1", "", "")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &pipelineFixture{svc: svc, llm: client, usersSvc: usersSvc, docs: docs, dir: dir, user: user}
}

const longEnough = "This body of text easily clears the fifty character extraction threshold for processing."

func TestProcessHappyPath(t *testing.T) {
	fx := newPipelineFixture(t)
	fx.llm.result = mediumBandMaterials()

	doc, err := fx.svc.Process(context.Background(), Input{
		ClerkID:      "clerk-1",
		OriginalName: "notes.docx",
		MimeType:     extract.MimeDOCX,
		Language:     "english",
		Body:         bytes.NewReader(docxFixture(t, longEnough)),
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if doc.ID == "" || doc.UserID != fx.user.ID {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.OriginalFilename != "notes.docx" {
		t.Fatalf("original filename = %q", doc.OriginalFilename)
	}
	if doc.Summary != "A summary." {
		t.Fatalf("summary = %q", doc.Summary)
	}

	stored, err := fx.docs.GetByID(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("document not persisted: %v", err)
	}
	if got := len(stored.Flashcards); got < 10 || got > 15 {
		t.Fatalf("persisted flashcards = %d, want within the 10-15 band", got)
	}
	if len(stored.ExamQuestions) != 1 {
		t.Fatalf("exam questions not persisted: %+v", stored)
	}

	refreshed, err := fx.usersSvc.GetByClerkID(context.Background(), "clerk-1")
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if refreshed.DocumentsUsed != 1 {
		t.Fatalf("documents used = %d, want 1", refreshed.DocumentsUsed)
	}
	if fx.llm.calls != 1 {
		t.Fatalf("llm calls = %d, want 1", fx.llm.calls)
	}
	assertNoTransientFiles(t, fx.dir)
}

func TestProcessQuotaExceeded(t *testing.T) {
	fx := newPipelineFixture(t)
	for i := 0; i < 10; i++ {
		if err := fx.usersSvc.IncrementUsed(context.Background(), fx.user.ID); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}

	_, err := fx.svc.Process(context.Background(), Input{
		ClerkID:      "clerk-1",
		OriginalName: "notes.docx",
		MimeType:     extract.MimeDOCX,
		Body:         bytes.NewReader(docxFixture(t, longEnough)),
	})
	if !errors.Is(err, users.ErrLimitReached) {
		t.Fatalf("err = %v, want ErrLimitReached", err)
	}
	if fx.llm.calls != 0 {
		t.Fatalf("llm called despite exhausted quota")
	}
	assertNoTransientFiles(t, fx.dir)
}

func TestProcessUnknownUser(t *testing.T) {
	fx := newPipelineFixture(t)

	_, err := fx.svc.Process(context.Background(), Input{
		ClerkID:      "clerk-unknown",
		OriginalName: "notes.docx",
		MimeType:     extract.MimeDOCX,
		Body:         bytes.NewReader(docxFixture(t, longEnough)),
	})
	if !errors.Is(err, users.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if fx.llm.calls != 0 {
		t.Fatalf("llm called for unknown user")
	}
	assertNoTransientFiles(t, fx.dir)
}

func TestProcessInsufficientContent(t *testing.T) {
	fx := newPipelineFixture(t)

	_, err := fx.svc.Process(context.Background(), Input{
		ClerkID:      "clerk-1",
		OriginalName: "notes.docx",
		MimeType:     extract.MimeDOCX,
		Body:         bytes.NewReader(docxFixture(t, "too short")),
	})
	if !errors.Is(err, ErrInsufficientContent) {
		t.Fatalf("err = %v, want ErrInsufficientContent", err)
	}
	if fx.llm.calls != 0 {
		t.Fatalf("llm called for insufficient content")
	}

	refreshed, err := fx.usersSvc.GetByClerkID(context.Background(), "clerk-1")
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if refreshed.DocumentsUsed != 0 {
		t.Fatalf("quota charged for failed upload")
	}
	assertNoTransientFiles(t, fx.dir)
}

func TestProcessGenerationFailureDoesNotCharge(t *testing.T) {
	fx := newPipelineFixture(t)
	fx.llm.err = llm.ErrGeneration

	_, err := fx.svc.Process(context.Background(), Input{
		ClerkID:      "clerk-1",
		OriginalName: "notes.docx",
		MimeType:     extract.MimeDOCX,
		Body:         bytes.NewReader(docxFixture(t, longEnough)),
	})
	if !errors.Is(err, llm.ErrGeneration) {
		t.Fatalf("err = %v, want ErrGeneration", err)
	}

	refreshed, err := fx.usersSvc.GetByClerkID(context.Background(), "clerk-1")
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if refreshed.DocumentsUsed != 0 {
		t.Fatalf("quota charged for failed generation")
	}
	if docs, _ := fx.docs.ListByUser(context.Background(), fx.user.ID, 10, 0); len(docs) != 0 {
		t.Fatalf("document persisted despite generation failure")
	}
	assertNoTransientFiles(t, fx.dir)
}

func TestNormalizeLanguage(t *testing.T) {
	cases := map[string]string{
		"arabic":  "arabic",
		"Arabic":  "arabic",
		"english": "english",
		"":        "english",
		"french":  "english",
	}
	for in, want := range cases {
		if got := normalizeLanguage(in); got != want {
			t.Fatalf("normalizeLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}
