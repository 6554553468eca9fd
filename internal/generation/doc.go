// Package generation provides interfaces and error types for interacting
// with external LLM services for flashcard generation. It abstracts the
// details of the LLM API integration (Gemini), allowing the application to
// generate flashcards from source text without coupling to a specific
// external service.
package generation
