package repositories

import (
	"context"
	"time"

	"contentcoach/internal/domain/models"
)

// FormRepository defines data access for forms.
// Owner-scoped methods return domain.ErrNotFound for forms the user does not own.
type FormRepository interface {
	Create(ctx context.Context, form *models.Form) error
	GetByID(ctx context.Context, id, userID string) (*models.Form, error)
	// GetByIDOnly fetches a form without owner scoping (admin use).
	GetByIDOnly(ctx context.Context, id string) (*models.Form, error)
	ListByUser(ctx context.Context, userID string) ([]models.Form, error)
	ListAll(ctx context.Context) ([]models.Form, error)

	// Update writes companyName, logoUrl, presentationUrl and updatedAt.
	Update(ctx context.Context, form *models.Form) error

	// SetFolder writes only folderId and updatedAt.
	SetFolder(ctx context.Context, id, userID string, folderID *string, at time.Time) (*models.Form, error)

	// ToggleArchived flips isArchived in a single statement.
	ToggleArchived(ctx context.Context, id, userID string, at time.Time) (*models.Form, error)

	// ClearFolder moves every form filed under folderID to "no folder" and
	// returns how many rows changed.
	ClearFolder(ctx context.Context, folderID, userID string, at time.Time) (int64, error)

	Delete(ctx context.Context, id, userID string) error
	// DeleteByID removes a form regardless of owner (admin use).
	DeleteByID(ctx context.Context, id string) error
}
