package repositories

import (
	"context"
	"time"

	"contentcoach/internal/domain/models"
)

// UserRepository defines data access for user profile rows
type UserRepository interface {
	// EnsureExists inserts the user or refreshes its email, and returns the stored row.
	EnsureExists(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
	UpdateName(ctx context.Context, id, firstName, lastName string, at time.Time) (*models.User, error)
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
}
