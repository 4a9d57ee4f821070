package repositories

import (
	"context"
	"time"

	"contentcoach/internal/domain/models"
)

// FolderRepository defines data access for folders
type FolderRepository interface {
	// Create stores the folder and assigns its order as one past the user's
	// current maximum. Must run inside a transaction.
	Create(ctx context.Context, folder *models.Folder) error
	GetByID(ctx context.Context, id, userID string) (*models.Folder, error)

	// ListByUser returns the user's folders ordered by order, then createdAt.
	ListByUser(ctx context.Context, userID string) ([]models.Folder, error)

	Rename(ctx context.Context, id, userID, name string, at time.Time) (*models.Folder, error)
	ToggleArchived(ctx context.Context, id, userID string, at time.Time) (*models.Folder, error)

	// Delete removes the folder row only. Callers release contained forms
	// first, in the same transaction.
	Delete(ctx context.Context, id, userID string) (*models.Folder, error)
}
