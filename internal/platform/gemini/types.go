package gemini

// promptData represents the data passed to the system instruction template.
type promptData struct {
	// Count is the number of cards the model is instructed to produce.
	Count int
}

// responseSchema represents the expected JSON envelope of a generation
// response from the Gemini API.
type responseSchema struct {
	// Flashcards is the array of cards generated from the source text.
	Flashcards []cardSchema `json:"flashcards"`
}

// cardSchema represents a single flashcard in the API response. Entries are
// passed through without shape validation, so either side may be empty when
// the model misbehaves.
type cardSchema struct {
	// Front is the question or prompt side of the flashcard
	Front string `json:"front"`

	// Back is the answer side of the flashcard
	Back string `json:"back"`
}
