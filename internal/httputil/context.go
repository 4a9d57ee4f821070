package httputil

import (
	"context"
	"net/http"

	"contentcoach/internal/domain/services"
)

// Context key type to avoid collisions
type contextKey string

const (
	identityKey  contextKey = "identity"
	requestIDKey contextKey = "requestID"
)

// WithIdentity attaches the authenticated caller to the request context
func WithIdentity(r *http.Request, identity services.Identity) *http.Request {
	ctx := context.WithValue(r.Context(), identityKey, identity)
	return r.WithContext(ctx)
}

// GetIdentity returns the authenticated caller, if any
func GetIdentity(r *http.Request) (services.Identity, bool) {
	identity, ok := r.Context().Value(identityKey).(services.Identity)
	return identity, ok
}

// GetUserID retrieves the caller's user ID, returns empty string if not found
func GetUserID(r *http.Request) string {
	identity, _ := GetIdentity(r)
	return identity.UserID
}

// WithRequestID tags the request with a correlation ID
func WithRequestID(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), requestIDKey, id))
}

// GetRequestID returns the correlation ID, or empty string
func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}
