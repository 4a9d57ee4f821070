package services

import (
	"context"

	"contentcoach/internal/domain/models"
)

// APIKeyService issues and checks API keys
type APIKeyService interface {
	Create(ctx context.Context, userID, name string) (*models.IssuedAPIKey, error)
	List(ctx context.Context, userID string) ([]models.APIKey, error)
	Revoke(ctx context.Context, userID, keyID string) error

	// Authenticate resolves a raw key to its record. Unknown, malformed or
	// revoked keys return domain.ErrUnauthorized.
	Authenticate(ctx context.Context, rawKey string) (*models.APIKey, error)
}
