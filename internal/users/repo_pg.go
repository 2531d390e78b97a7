package users

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) GetByClerkID(ctx context.Context, clerkID string) (User, error) {
	const query = `
SELECT id, clerk_id, email, name, documents_used, monthly_limit, last_reset, created_at
FROM users
WHERE clerk_id = $1
LIMIT 1`
	var user User
	err := r.DB.QueryRowContext(ctx, query, clerkID).Scan(
		&user.ID,
		&user.ClerkID,
		&user.Email,
		&user.Name,
		&user.DocumentsUsed,
		&user.MonthlyLimit,
		&user.LastReset,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, clerk_id, email, name, documents_used, monthly_limit, last_reset, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.ClerkID,
		user.Email,
		user.Name,
		user.DocumentsUsed,
		user.MonthlyLimit,
		user.LastReset,
		user.CreatedAt,
	)
	return err
}

// EnsurePeriod resets the usage counter under a row lock when the period elapsed.
func (r *PGRepo) EnsurePeriod(ctx context.Context, userID string, period time.Duration) (User, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return User{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var user User
	row := tx.QueryRowContext(ctx, `
SELECT id, clerk_id, email, name, documents_used, monthly_limit, last_reset, created_at
FROM users
WHERE id = $1
FOR UPDATE`, userID)
	err = row.Scan(
		&user.ID,
		&user.ClerkID,
		&user.Email,
		&user.Name,
		&user.DocumentsUsed,
		&user.MonthlyLimit,
		&user.LastReset,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
		}
		return User{}, err
	}

	now := time.Now().UTC()
	if now.Sub(user.LastReset) >= period {
		user.DocumentsUsed = 0
		user.LastReset = now
		if _, err = tx.ExecContext(ctx, `
UPDATE users SET documents_used = 0, last_reset = $1 WHERE id = $2`, now, userID); err != nil {
			return User{}, err
		}
	}
	if err = tx.Commit(); err != nil {
		return User{}, err
	}
	return user, nil
}

func (r *PGRepo) IncrementUsed(ctx context.Context, userID string) error {
	const query = `
UPDATE users SET documents_used = documents_used + 1 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
