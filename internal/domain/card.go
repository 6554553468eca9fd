package domain

// Card represents a single flashcard with a one-sentence prompt side and a
// one-sentence answer side. A card has no identity of its own; it is
// addressed by its position in the owning set's sequence, and duplicates
// within a set are permitted.
//
// Card shape is intentionally not validated: entries produced by the
// language model are passed through to the caller (and to storage) exactly
// as returned, including entries with empty sides.
type Card struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}
