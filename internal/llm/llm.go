package llm

import (
	"context"
	"errors"

	"study-backend/internal/materials"
)

// Client abstracts generative-model providers for study-material generation.
type Client interface {
	GenerateStudyMaterials(ctx context.Context, input GenerateInput) (materials.StudyMaterials, error)
}

// GenerateInput captures the inputs for one generation call.
type GenerateInput struct {
	Text     string
	Language string
}

// ErrGeneration indicates the external generation call itself failed.
var ErrGeneration = errors.New("generation failed")

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation used when no provider is configured.
type PlaceholderClient struct{}

// GenerateStudyMaterials returns ErrNotImplemented.
func (PlaceholderClient) GenerateStudyMaterials(ctx context.Context, input GenerateInput) (materials.StudyMaterials, error) {
	_ = ctx
	_ = input
	return materials.StudyMaterials{}, ErrNotImplemented
}
