package auth

import "contentcoach/internal/domain/models"

// JWTVerifier defines the interface for ID token verification.
// The middleware depends on this abstraction, not on Firebase.
type JWTVerifier interface {
	// VerifyToken validates an ID token and returns the parsed claims.
	// Returns domain.ErrUnauthorized if the token is invalid, expired, issued
	// for another project or has an invalid signature.
	VerifyToken(tokenString string) (*models.FirebaseClaims, error)

	// Close releases any resources held by the verifier.
	Close() error
}
