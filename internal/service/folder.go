package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"contentcoach/internal/config"
	"contentcoach/internal/domain/models"
	"contentcoach/internal/domain/repositories"
	"contentcoach/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type folderService struct {
	folderRepo repositories.FolderRepository
	formRepo   repositories.FormRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	formRepo repositories.FormRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		formRepo:   formRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

func validateFolderName(name string) error {
	err := validation.Validate(name,
		validation.Required.Error("folder name is required"),
		validation.RuneLength(1, config.MaxFolderNameLength),
	)
	if err != nil {
		return validationError(err)
	}
	return nil
}

// CreateFolder creates a folder positioned after the user's existing folders
func (s *folderService) CreateFolder(ctx context.Context, userID, name string) (*models.Folder, error) {
	if userID == "" {
		return nil, requiredError("user id")
	}
	name = strings.TrimSpace(name)
	if err := validateFolderName(name); err != nil {
		return nil, err
	}

	now := time.Now()
	folder := &models.Folder{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       name,
		IsArchived: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.folderRepo.Create(txCtx, folder)
	})
	if err != nil {
		s.logger.Error("folder create failed", "user_id", userID, "error", err)
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"user_id", userID,
		"order", folder.Order,
	)

	return folder, nil
}

// ListFolders lists the caller's folders in display order
func (s *folderService) ListFolders(ctx context.Context, userID string) ([]models.Folder, error) {
	if userID == "" {
		return nil, requiredError("user id")
	}
	return s.folderRepo.ListByUser(ctx, userID)
}

// RenameFolder renames one of the caller's folders
func (s *folderService) RenameFolder(ctx context.Context, userID, folderID, name string) (*models.Folder, error) {
	if folderID == "" {
		return nil, requiredError("folder id")
	}
	name = strings.TrimSpace(name)
	if err := validateFolderName(name); err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.Rename(ctx, folderID, userID, name, time.Now())
	if err != nil {
		s.logger.Error("folder rename failed", "id", folderID, "error", err)
		return nil, err
	}

	s.logger.Info("folder renamed", "id", folder.ID, "name", folder.Name)
	return folder, nil
}

// ToggleArchive flips a folder's archived flag. Contained forms keep their own flag.
func (s *folderService) ToggleArchive(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	if folderID == "" {
		return nil, requiredError("folder id")
	}

	folder, err := s.folderRepo.ToggleArchived(ctx, folderID, userID, time.Now())
	if err != nil {
		s.logger.Error("folder archive toggle failed", "id", folderID, "error", err)
		return nil, err
	}

	s.logger.Info("folder archive toggled", "id", folder.ID, "is_archived", folder.IsArchived)
	return folder, nil
}

// DeleteFolder releases the folder's forms to "no folder" and deletes it,
// atomically. No form is left pointing at a deleted folder.
func (s *folderService) DeleteFolder(ctx context.Context, userID, folderID string) (*models.FolderDeleteResult, error) {
	if folderID == "" {
		return nil, requiredError("folder id")
	}

	result := &models.FolderDeleteResult{}
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		// Ownership check before touching any form
		if _, err := s.folderRepo.GetByID(txCtx, folderID, userID); err != nil {
			return err
		}

		released, err := s.formRepo.ClearFolder(txCtx, folderID, userID, time.Now())
		if err != nil {
			return err
		}
		result.ReleasedForms = released

		deleted, err := s.folderRepo.Delete(txCtx, folderID, userID)
		if err != nil {
			return err
		}
		result.Folder = deleted
		return nil
	})
	if err != nil {
		s.logger.Error("folder delete failed", "id", folderID, "error", err)
		return nil, err
	}

	s.logger.Info("folder deleted",
		"id", folderID,
		"user_id", userID,
		"released_forms", result.ReleasedForms,
	)

	return result, nil
}
