package domain

import "errors"

// Common validation errors for FlashcardSet
var (
	ErrEmptySetName = errors.New("set name cannot be empty")
	ErrEmptyOwnerID = errors.New("owner ID cannot be empty")
)

// FlashcardSet is a named, owned collection of cards. The set name acts as
// the document key in the flashcardSets collection and is therefore not part
// of the stored document itself. The name namespace is global, not scoped per
// owner: saving a set under an existing name silently replaces the prior
// document, including its owner attribution.
//
// Card order is display-significant and preserved as stored. A set is created
// once by a single overwrite write and is read-only thereafter.
type FlashcardSet struct {
	Flashcards []Card `json:"flashcards"`
	UserID     string `json:"userId"`
}

// NewFlashcardSet creates a FlashcardSet owned by ownerID with the given card
// sequence. A nil card slice is normalized to an empty one so the stored
// document always carries a JSON array.
// Returns an error if ownerID is empty.
func NewFlashcardSet(ownerID string, cards []Card) (*FlashcardSet, error) {
	if ownerID == "" {
		return nil, ErrEmptyOwnerID
	}

	if cards == nil {
		cards = []Card{}
	}

	return &FlashcardSet{
		Flashcards: cards,
		UserID:     ownerID,
	}, nil
}
