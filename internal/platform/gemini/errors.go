package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptySourceText is returned when the source text is empty.
	ErrEmptySourceText = errors.New("source text cannot be empty")

	// ErrInvalidCount is returned when the requested card count is not positive.
	ErrInvalidCount = errors.New("card count must be a positive integer")
)
