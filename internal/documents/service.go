package documents

import (
	"context"
	"errors"
)

// Service contains business logic for document reads and deletion.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Get returns a document by ID.
func (s *Service) Get(ctx context.Context, documentID string) (Document, error) {
	if documentID == "" {
		return Document{}, errors.New("document id is required")
	}
	return s.Repo.GetByID(ctx, documentID)
}

// Delete removes a document by ID.
func (s *Service) Delete(ctx context.Context, documentID string) error {
	if documentID == "" {
		return errors.New("document id is required")
	}
	return s.Repo.Delete(ctx, documentID)
}

// ListByUser returns a user's documents, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}
