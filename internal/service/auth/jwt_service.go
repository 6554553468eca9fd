// Package auth validates session tokens issued by the hosted authentication
// provider. Token issuing, sign-in UI, and account management all live with
// the provider; this service only verifies the shared-secret signature and
// extracts the user identity.
package auth

import "context"

// JWTService defines operations for validating authentication tokens.
type JWTService interface {
	// ValidateToken validates the provided token string and extracts the
	// claims. Returns ErrExpiredToken if the token has expired, or
	// ErrInvalidToken for any other validation failure (bad signature,
	// malformed token, missing subject).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims carries the application-relevant claims of a validated token.
type Claims struct {
	// UserID is the identifier of the user the token was issued for,
	// taken from the subject claim. It is an opaque provider-issued string,
	// not a UUID.
	UserID string
}
