package mocks

import (
	"context"

	"github.com/phrazzld/studywise-api/internal/domain"
	"github.com/phrazzld/studywise-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateFlashcardsFn allows test cases to mock the generation behavior
	GenerateFlashcardsFn func(ctx context.Context, sourceText string, count int) ([]domain.Card, error)

	// Default response values
	Cards []domain.Card
	Err   error
}

// GenerateFlashcards implements the generation.Generator interface
func (m *MockGenerator) GenerateFlashcards(
	ctx context.Context,
	sourceText string,
	count int,
) ([]domain.Card, error) {
	if m.GenerateFlashcardsFn != nil {
		return m.GenerateFlashcardsFn(ctx, sourceText, count)
	}
	return m.Cards, m.Err
}

// Ensure MockGenerator implements the generation.Generator interface
var _ generation.Generator = (*MockGenerator)(nil)
