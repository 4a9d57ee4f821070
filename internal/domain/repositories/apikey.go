package repositories

import (
	"context"
	"time"

	"contentcoach/internal/domain/models"
)

// APIKeyRepository defines data access for API keys
type APIKeyRepository interface {
	Create(ctx context.Context, key *models.APIKey) error
	// GetByPrefix returns the key with the given lookup prefix, revoked or not.
	GetByPrefix(ctx context.Context, prefix string) (*models.APIKey, error)
	ListByUser(ctx context.Context, userID string) ([]models.APIKey, error)
	Revoke(ctx context.Context, id, userID string, at time.Time) error
	TouchLastUsed(ctx context.Context, id string, at time.Time) error
}
