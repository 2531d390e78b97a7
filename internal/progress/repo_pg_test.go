package progress

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoUpsertUpdatesExistingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	reviewed := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("user-1", "doc-1", 3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("progress-1"))
	mock.ExpectExec("UPDATE flashcard_progress").
		WithArgs("progress-1", true, reviewed).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := &PGRepo{DB: db}
	saved, err := repo.Upsert(context.Background(), FlashcardProgress{
		UserID:       "user-1",
		DocumentID:   "doc-1",
		CardIndex:    3,
		Mastered:     true,
		LastReviewed: reviewed,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if saved.ID != "progress-1" {
		t.Fatalf("id = %q, want existing row id", saved.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpsertInsertsNewRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	reviewed := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("user-1", "doc-1", 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO flashcard_progress").
		WithArgs(sqlmock.AnyArg(), "user-1", "doc-1", 0, false, reviewed).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := &PGRepo{DB: db}
	saved, err := repo.Upsert(context.Background(), FlashcardProgress{
		UserID:       "user-1",
		DocumentID:   "doc-1",
		CardIndex:    0,
		Mastered:     false,
		LastReviewed: reviewed,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("id not assigned on insert")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestMemoryRepoUpsertKeepsIDStable(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	first, err := repo.Upsert(ctx, FlashcardProgress{UserID: "u", DocumentID: "d", CardIndex: 1, Mastered: false})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	second, err := repo.Upsert(ctx, FlashcardProgress{UserID: "u", DocumentID: "d", CardIndex: 1, Mastered: true})
	if err != nil {
		t.Fatalf("Upsert second: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("id changed on upsert: %q -> %q", first.ID, second.ID)
	}
	if !second.Mastered {
		t.Fatalf("mastered not updated")
	}

	records, err := repo.ListByDocument(ctx, "u", "d")
	if err != nil {
		t.Fatalf("ListByDocument: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
}
