package services

import (
	"context"
	"time"

	"contentcoach/internal/domain/models"
)

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID    string
	Email     string
	IsAdmin   bool      // admin custom claim
	Token     string    // raw ID token; empty for API-key callers
	ExpiresAt time.Time // token expiry
	Method    string    // "firebase" or "api_key"
}

const (
	AuthMethodFirebase = "firebase"
	AuthMethodAPIKey   = "api_key"
)

// ResourceAuthorizer checks if a user can access resources.
// The current implementation is ownership-based.
type ResourceAuthorizer interface {
	CanAccessForm(ctx context.Context, userID, formID string) error
	CanAccessFolder(ctx context.Context, userID, folderID string) error
}

// SessionService wraps the external identity provider.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
	// Logout revokes the caller's ID token until it expires.
	Logout(ctx context.Context, identity Identity) error
	UpdatePassword(ctx context.Context, identity Identity, newPassword string) error
	SendPasswordReset(ctx context.Context, email string) error
}

// IdentityProvider is the external email/password account service.
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error)
	UpdatePassword(ctx context.Context, idToken, newPassword string) error
	SendPasswordReset(ctx context.Context, email string) error
}

// TokenRevoker rejects ID tokens before their natural expiry.
type TokenRevoker interface {
	Revoke(token string, until time.Time)
	IsRevoked(token string) bool
}
