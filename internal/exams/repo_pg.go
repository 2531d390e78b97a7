package exams

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new exam attempt.
func (r *PGRepo) Create(ctx context.Context, attempt ExamAttempt) error {
	const query = `
INSERT INTO exam_attempts (id, user_id, document_id, score, total_questions, answers, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	answers := []byte(attempt.Answers)
	if len(answers) == 0 {
		answers = []byte("[]")
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		attempt.ID,
		attempt.UserID,
		attempt.DocumentID,
		attempt.Score,
		attempt.TotalQuestions,
		answers,
		attempt.CreatedAt,
	)
	return err
}

// ListByDocument returns a user's attempts for one document, newest first.
func (r *PGRepo) ListByDocument(ctx context.Context, userID, documentID string) ([]ExamAttempt, error) {
	const query = `
SELECT id, user_id, document_id, score, total_questions, answers, created_at
FROM exam_attempts
WHERE user_id = $1 AND document_id = $2
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExamAttempt
	for rows.Next() {
		var a ExamAttempt
		var answers []byte
		if err := rows.Scan(&a.ID, &a.UserID, &a.DocumentID, &a.Score, &a.TotalQuestions, &answers, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Answers = answers
		out = append(out, a)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
