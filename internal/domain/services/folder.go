package services

import (
	"context"

	"contentcoach/internal/domain/models"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder appends a folder at the end of the user's list.
	CreateFolder(ctx context.Context, userID, name string) (*models.Folder, error)
	ListFolders(ctx context.Context, userID string) ([]models.Folder, error)
	RenameFolder(ctx context.Context, userID, folderID, name string) (*models.Folder, error)
	ToggleArchive(ctx context.Context, userID, folderID string) (*models.Folder, error)

	// DeleteFolder releases every contained form to "no folder" and removes
	// the folder in one transaction.
	DeleteFolder(ctx context.Context, userID, folderID string) (*models.FolderDeleteResult, error)
}
