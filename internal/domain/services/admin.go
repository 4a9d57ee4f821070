package services

import (
	"context"

	"contentcoach/internal/domain/models"
)

// AdminService backs the admin panel. Callers check IsAdmin first.
type AdminService interface {
	// IsAdmin reports whether the caller may use the admin panel: the token
	// carries the admin claim or the user row is flagged.
	IsAdmin(ctx context.Context, identity Identity) (bool, error)

	// Overview loads every form annotated with its creator email, plus stats.
	Overview(ctx context.Context) (*models.AdminOverview, error)

	// DeleteForm removes any user's form and returns it as it was. Folders
	// are left untouched.
	DeleteForm(ctx context.Context, formID string) (*models.Form, error)
}
