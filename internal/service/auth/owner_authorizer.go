package auth

import (
	"context"
	"fmt"

	"contentcoach/internal/domain/repositories"
)

// OwnerBasedAuthorizer implements ResourceAuthorizer using ownership checks.
// A user can access a form or folder only if they created it.
//
// Foreign resources are reported as not found rather than forbidden so
// callers cannot discover IDs that belong to someone else.
type OwnerBasedAuthorizer struct {
	formRepo   repositories.FormRepository
	folderRepo repositories.FolderRepository
}

// NewOwnerBasedAuthorizer creates a new ownership-based authorizer
func NewOwnerBasedAuthorizer(
	formRepo repositories.FormRepository,
	folderRepo repositories.FolderRepository,
) *OwnerBasedAuthorizer {
	return &OwnerBasedAuthorizer{
		formRepo:   formRepo,
		folderRepo: folderRepo,
	}
}

// CanAccessForm checks if user owns the form
func (a *OwnerBasedAuthorizer) CanAccessForm(ctx context.Context, userID, formID string) error {
	// GetByID filters by userID, so a foreign form is not found
	if _, err := a.formRepo.GetByID(ctx, formID, userID); err != nil {
		return fmt.Errorf("check form access: %w", err)
	}
	return nil
}

// CanAccessFolder checks if user owns the folder
func (a *OwnerBasedAuthorizer) CanAccessFolder(ctx context.Context, userID, folderID string) error {
	if _, err := a.folderRepo.GetByID(ctx, folderID, userID); err != nil {
		return fmt.Errorf("check folder access: %w", err)
	}
	return nil
}
