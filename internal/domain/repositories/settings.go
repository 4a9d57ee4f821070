package repositories

import (
	"context"

	"contentcoach/internal/domain/models"
)

// SettingsRepository defines data access for per-user settings
type SettingsRepository interface {
	// GetByUserID returns nil, nil when the user has not saved settings yet.
	GetByUserID(ctx context.Context, userID string) (*models.Settings, error)

	// Upsert creates or replaces the user's settings row
	Upsert(ctx context.Context, settings *models.Settings) error
}
