package services

import (
	"context"

	"contentcoach/internal/domain/models"
)

// ProfileService manages the caller's profile row
type ProfileService interface {
	// GetProfile returns the profile, creating it from the identity on first use.
	GetProfile(ctx context.Context, identity Identity) (*models.User, error)
	UpdateProfile(ctx context.Context, identity Identity, req *UpdateProfileRequest) (*models.User, error)
}

// UpdateProfileRequest represents a profile update
type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// SettingsService manages per-user settings
type SettingsService interface {
	GetSettings(ctx context.Context, userID string) (*models.Settings, error)
	UpdateSettings(ctx context.Context, userID string, req *models.UpdateSettingsRequest) (*models.Settings, error)
	// PresentationDefault returns the user's default presentation URL, or
	// the service-wide default.
	PresentationDefault(ctx context.Context, userID string) (string, error)
}
