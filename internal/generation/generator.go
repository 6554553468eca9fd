package generation

import (
	"context"

	"github.com/phrazzld/studywise-api/internal/domain"
)

// Generator defines the interface for generating flashcards from text.
// This interface serves as a boundary between the application core and
// external LLM services.
type Generator interface {
	// GenerateFlashcards creates flashcards based on the provided source
	// text. The count is embedded in the model instruction as the requested
	// number of cards, but the model declining to honor it exactly is not an
	// error: the returned sequence may have fewer or more entries than
	// requested.
	//
	// Individual card entries are returned exactly as the model produced
	// them, without per-card shape validation. A response whose body is not
	// decodable as the expected JSON envelope fails with ErrInvalidResponse;
	// transport and API failures fail with ErrGenerationFailed.
	GenerateFlashcards(ctx context.Context, sourceText string, count int) ([]domain.Card, error)
}
