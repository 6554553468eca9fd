package domain

import "errors"

// ErrEmptyUserID is returned when a user ID is required but missing.
var ErrEmptyUserID = errors.New("user ID cannot be empty")

// SetRef is one entry in a user's set index. It references a FlashcardSet by
// name only; the store enforces no referential integrity between the index
// and the set documents.
type SetRef struct {
	Name string `json:"name"`
}

// UserIndex is the per-user document tracking owned set names. It is created
// empty on the user's first visit, appended to on every successful set save,
// and never pruned. Entries are intended to correspond 1:1 to sets owned by
// the user, but duplicates are possible under concurrent saves.
type UserIndex struct {
	FlashcardSets []SetRef `json:"flashcardSets"`
}

// NewUserIndex returns an empty index, the constant initial value written on
// a user's first visit.
func NewUserIndex() *UserIndex {
	return &UserIndex{FlashcardSets: []SetRef{}}
}

// Append records a set name at the end of the index. It does not deduplicate.
func (u *UserIndex) Append(name string) {
	u.FlashcardSets = append(u.FlashcardSets, SetRef{Name: name})
}

// SetNames returns the referenced set names in stored order. The result may
// contain duplicates.
func (u *UserIndex) SetNames() []string {
	names := make([]string, 0, len(u.FlashcardSets))
	for _, ref := range u.FlashcardSets {
		names = append(names, ref.Name)
	}
	return names
}
