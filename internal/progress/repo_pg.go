package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Upsert finds the row for (userID, documentID, cardIndex) and updates it,
// inserting a new row when none exists. The lookup and write run inside a
// transaction so concurrent reviews of the same card do not create duplicates.
func (r *PGRepo) Upsert(ctx context.Context, p FlashcardProgress) (FlashcardProgress, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return FlashcardProgress{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const selectQuery = `
SELECT id
FROM flashcard_progress
WHERE user_id = $1 AND document_id = $2 AND card_index = $3
FOR UPDATE`

	var existingID string
	err = tx.QueryRowContext(ctx, selectQuery, p.UserID, p.DocumentID, p.CardIndex).Scan(&existingID)
	switch {
	case err == nil:
		const updateQuery = `
UPDATE flashcard_progress
SET mastered = $2, last_reviewed = $3
WHERE id = $1`
		if _, err := tx.ExecContext(ctx, updateQuery, existingID, p.Mastered, p.LastReviewed); err != nil {
			return FlashcardProgress{}, fmt.Errorf("update progress: %w", err)
		}
		p.ID = existingID
	case errors.Is(err, sql.ErrNoRows):
		const insertQuery = `
INSERT INTO flashcard_progress (id, user_id, document_id, card_index, mastered, last_reviewed)
VALUES ($1, $2, $3, $4, $5, $6)`
		p.ID = uuid.NewString()
		if _, err := tx.ExecContext(ctx, insertQuery, p.ID, p.UserID, p.DocumentID, p.CardIndex, p.Mastered, p.LastReviewed); err != nil {
			return FlashcardProgress{}, fmt.Errorf("insert progress: %w", err)
		}
	default:
		return FlashcardProgress{}, fmt.Errorf("select progress: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return FlashcardProgress{}, fmt.Errorf("commit tx: %w", err)
	}
	return p, nil
}

// ListByDocument returns a user's progress for one document, ordered by card index.
func (r *PGRepo) ListByDocument(ctx context.Context, userID, documentID string) ([]FlashcardProgress, error) {
	const query = `
SELECT id, user_id, document_id, card_index, mastered, last_reviewed
FROM flashcard_progress
WHERE user_id = $1 AND document_id = $2
ORDER BY card_index ASC`

	rows, err := r.DB.QueryContext(ctx, query, userID, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FlashcardProgress
	for rows.Next() {
		var p FlashcardProgress
		if err := rows.Scan(&p.ID, &p.UserID, &p.DocumentID, &p.CardIndex, &p.Mastered, &p.LastReviewed); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
