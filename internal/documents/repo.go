package documents

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "document not found" }

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, documentID string) (Document, error)
	Delete(ctx context.Context, documentID string) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error)
}
