package api

// GenerateRequest represents the request body for generating flashcards
// from source text.
type GenerateRequest struct {
	Text          string `json:"text"          validate:"required,min=1"`
	NumFlashcards int    `json:"numFlashcards" validate:"required,gte=1,lte=100"`
}

// CardResponse represents a single generated or stored flashcard.
type CardResponse struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// EnsureUserRequest represents the request body for ensuring a user
// document exists.
type EnsureUserRequest struct {
	UserID string `json:"userId"`
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// SaveSetRequest represents the request body for saving a named
// flashcard set.
type SaveSetRequest struct {
	Name       string         `json:"name"       validate:"required,min=1"`
	Flashcards []CardResponse `json:"flashcards"`
}

// SetRefResponse identifies a saved set by name.
type SetRefResponse struct {
	Name string `json:"name"`
}

// SetListResponse represents the list of sets referenced from a user's
// index document.
type SetListResponse struct {
	FlashcardSets []SetRefResponse `json:"flashcardSets"`
}

// SetCardsResponse represents the cards of a single saved set.
type SetCardsResponse struct {
	Flashcards []CardResponse `json:"flashcards"`
}
