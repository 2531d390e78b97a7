package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"study-backend/internal/materials"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document with its generated artifacts.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    user_id,
    file_name,
    original_filename,
    mime_type,
    size_bytes,
    language,
    summary,
    flashcards,
    exam_questions,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	flashcards, err := json.Marshal(doc.Flashcards)
	if err != nil {
		return fmt.Errorf("marshal flashcards: %w", err)
	}
	examQuestions, err := json.Marshal(doc.ExamQuestions)
	if err != nil {
		return fmt.Errorf("marshal exam questions: %w", err)
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.UserID,
		doc.FileName,
		doc.OriginalFilename,
		doc.MimeType,
		doc.SizeBytes,
		doc.Language,
		doc.Summary,
		flashcards,
		examQuestions,
		doc.CreatedAt,
	)
	return err
}

// GetByID fetches a document by ID.
func (r *PGRepo) GetByID(ctx context.Context, documentID string) (Document, error) {
	const query = `
SELECT id, user_id, file_name, original_filename, mime_type, size_bytes, language, summary, flashcards, exam_questions, created_at
FROM documents
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, documentID)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// Delete removes a document by ID.
func (r *PGRepo) Delete(ctx context.Context, documentID string) error {
	const query = `DELETE FROM documents WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, documentID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser lists documents ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, file_name, original_filename, mime_type, size_bytes, language, summary, flashcards, exam_questions, created_at
FROM documents
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var flashcards []byte
	var examQuestions []byte
	if err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.OriginalFilename,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.Language,
		&doc.Summary,
		&flashcards,
		&examQuestions,
		&doc.CreatedAt,
	); err != nil {
		return Document{}, err
	}
	if len(flashcards) > 0 {
		if err := json.Unmarshal(flashcards, &doc.Flashcards); err != nil {
			return Document{}, fmt.Errorf("unmarshal flashcards: %w", err)
		}
	}
	if len(examQuestions) > 0 {
		if err := json.Unmarshal(examQuestions, &doc.ExamQuestions); err != nil {
			return Document{}, fmt.Errorf("unmarshal exam questions: %w", err)
		}
	}
	if doc.Flashcards == nil {
		doc.Flashcards = []materials.Flashcard{}
	}
	if doc.ExamQuestions == nil {
		doc.ExamQuestions = []materials.ExamQuestion{}
	}
	return doc, nil
}

var _ Repo = (*PGRepo)(nil)
