package mocks

import (
	"context"

	"github.com/phrazzld/studywise-api/internal/domain"
	"github.com/phrazzld/studywise-api/internal/service"
)

// MockFlashcardService implements service.FlashcardService for testing
type MockFlashcardService struct {
	// Custom behavior functions
	EnsureUserDocumentFn func(ctx context.Context, userID string) (bool, error)
	SaveSetFn            func(ctx context.Context, ownerID, setName string, cards []domain.Card) error
	ListSetNamesFn       func(ctx context.Context, userID string) ([]string, error)
	GetCardsFn           func(ctx context.Context, setName string) ([]domain.Card, error)

	// Default response values
	Created  bool
	SetNames []string
	Cards    []domain.Card
	Err      error
}

// EnsureUserDocument implements the service.FlashcardService interface
func (m *MockFlashcardService) EnsureUserDocument(
	ctx context.Context,
	userID string,
) (bool, error) {
	if m.EnsureUserDocumentFn != nil {
		return m.EnsureUserDocumentFn(ctx, userID)
	}
	return m.Created, m.Err
}

// SaveSet implements the service.FlashcardService interface
func (m *MockFlashcardService) SaveSet(
	ctx context.Context,
	ownerID, setName string,
	cards []domain.Card,
) error {
	if m.SaveSetFn != nil {
		return m.SaveSetFn(ctx, ownerID, setName, cards)
	}
	return m.Err
}

// ListSetNames implements the service.FlashcardService interface
func (m *MockFlashcardService) ListSetNames(
	ctx context.Context,
	userID string,
) ([]string, error) {
	if m.ListSetNamesFn != nil {
		return m.ListSetNamesFn(ctx, userID)
	}
	return m.SetNames, m.Err
}

// GetCards implements the service.FlashcardService interface
func (m *MockFlashcardService) GetCards(
	ctx context.Context,
	setName string,
) ([]domain.Card, error) {
	if m.GetCardsFn != nil {
		return m.GetCardsFn(ctx, setName)
	}
	return m.Cards, m.Err
}

// Ensure MockFlashcardService implements the service.FlashcardService interface
var _ service.FlashcardService = (*MockFlashcardService)(nil)
