// Package shared holds helpers used across the API layer: context keys,
// trace IDs, and request/response plumbing.
package shared

import (
	"context"
	"log/slog"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ContextKey is the key type for context values set by the API layer.
type ContextKey string

// Context keys for various values
const (
	// UserIDContextKey is the context key for the authenticated user's ID.
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the character length of generated trace IDs.
	TraceIDLength = 21
)

// SetTraceID adds a trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID creates a random trace ID for request tracking.
// Nanoid generation only fails when the system entropy source does; in that
// case a static marker is returned so the failure is visible in logs rather
// than silently dropping correlation.
func generateTraceID() string {
	id, err := gonanoid.New(TraceIDLength)
	if err != nil {
		slog.Error("failed to generate trace ID", "error", err)
		return "trace-unavailable"
	}
	return id
}
