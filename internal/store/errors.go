package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrTransactionFailed is returned when a batch commit fails, either
	// because an individual write failed or the transaction could not commit.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrInvalidDocument is returned when a document body cannot be
	// marshaled to or unmarshaled from JSON.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrDocumentNotFound indicates that no document exists at the requested
	// (collection, id) key.
	ErrDocumentNotFound = fmt.Errorf("%w: document", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
