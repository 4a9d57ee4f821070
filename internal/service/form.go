package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"contentcoach/internal/config"
	"contentcoach/internal/domain/models"
	"contentcoach/internal/domain/repositories"
	"contentcoach/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

type formService struct {
	formRepo   repositories.FormRepository
	authorizer services.ResourceAuthorizer
	logger     *slog.Logger
}

// NewFormService creates a new form service
func NewFormService(
	formRepo repositories.FormRepository,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) services.FormService {
	return &formService{
		formRepo:   formRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

var urlRules = []validation.Rule{validation.Length(1, config.MaxURLLength), is.URL}

// CreateForm creates a new form for the caller
func (s *formService) CreateForm(ctx context.Context, req *services.CreateFormRequest) (*models.Form, error) {
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.LogoURL = normalizeOptional(req.LogoURL)
	req.PresentationURL = normalizeOptional(req.PresentationURL)
	req.FolderID = normalizeID(req.FolderID)

	err := validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.CompanyName, validation.Required, validation.Length(1, config.MaxCompanyNameLength)),
		validation.Field(&req.LogoURL, urlRules...),
		validation.Field(&req.PresentationURL, urlRules...),
	)
	if err != nil {
		return nil, validationError(err)
	}

	if req.FolderID != nil {
		if err := s.authorizer.CanAccessFolder(ctx, req.UserID, *req.FolderID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	form := &models.Form{
		ID:              uuid.NewString(),
		UserID:          req.UserID,
		CompanyName:     req.CompanyName,
		LogoURL:         req.LogoURL,
		PresentationURL: req.PresentationURL,
		FolderID:        req.FolderID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.formRepo.Create(ctx, form); err != nil {
		s.logger.Error("form create failed", "user_id", req.UserID, "error", err)
		return nil, err
	}

	s.logger.Info("form created",
		"id", form.ID,
		"user_id", form.UserID,
		"folder_id", form.FolderID,
	)

	return form, nil
}

// GetForm retrieves one of the caller's forms
func (s *formService) GetForm(ctx context.Context, userID, formID string) (*models.Form, error) {
	if formID == "" {
		return nil, requiredError("form id")
	}
	return s.formRepo.GetByID(ctx, formID, userID)
}

// ListForms lists the caller's forms
func (s *formService) ListForms(ctx context.Context, userID string) ([]models.Form, error) {
	if userID == "" {
		return nil, requiredError("user id")
	}
	return s.formRepo.ListByUser(ctx, userID)
}

// UpdateForm applies a partial update
func (s *formService) UpdateForm(ctx context.Context, userID, formID string, req *services.UpdateFormRequest) (*models.Form, error) {
	if formID == "" {
		return nil, requiredError("form id")
	}

	form, err := s.formRepo.GetByID(ctx, formID, userID)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		form.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	if req.LogoURL.Present {
		form.LogoURL = normalizeOptional(req.LogoURL.Value)
	}
	if req.PresentationURL.Present {
		form.PresentationURL = normalizeOptional(req.PresentationURL.Value)
	}

	err = validation.ValidateStruct(form,
		validation.Field(&form.CompanyName, validation.Required, validation.Length(1, config.MaxCompanyNameLength)),
		validation.Field(&form.LogoURL, urlRules...),
		validation.Field(&form.PresentationURL, urlRules...),
	)
	if err != nil {
		return nil, validationError(err)
	}

	form.UpdatedAt = time.Now()
	if err := s.formRepo.Update(ctx, form); err != nil {
		s.logger.Error("form update failed", "id", formID, "error", err)
		return nil, err
	}

	s.logger.Info("form updated", "id", form.ID, "user_id", userID)
	return form, nil
}

// MoveForm reassigns a form to a folder, or to "no folder" when folderID is nil
func (s *formService) MoveForm(ctx context.Context, userID, formID string, folderID *string) (*models.Form, error) {
	if formID == "" {
		return nil, requiredError("form id")
	}
	folderID = normalizeID(folderID)

	if folderID != nil {
		if err := s.authorizer.CanAccessFolder(ctx, userID, *folderID); err != nil {
			return nil, err
		}
	}

	form, err := s.formRepo.SetFolder(ctx, formID, userID, folderID, time.Now())
	if err != nil {
		s.logger.Error("form move failed", "id", formID, "folder_id", folderID, "error", err)
		return nil, err
	}

	s.logger.Info("form moved",
		"id", form.ID,
		"user_id", userID,
		"folder_id", form.FolderID,
	)

	return form, nil
}

// DropForm moves a dragged form onto target unless it is already there
func (s *formService) DropForm(ctx context.Context, userID string, target *string, payload models.DragPayload) (*models.Form, error) {
	if payload.FormID == "" {
		return nil, requiredError("form id")
	}
	target = normalizeID(target)

	form, err := s.formRepo.GetByID(ctx, payload.FormID, userID)
	if err != nil {
		return nil, err
	}

	if sameFolder(form.FolderID, target) {
		s.logger.Debug("drop onto current folder ignored", "id", form.ID, "folder_id", target)
		return form, nil
	}

	return s.MoveForm(ctx, userID, payload.FormID, target)
}

// ToggleArchive flips a form's archived flag
func (s *formService) ToggleArchive(ctx context.Context, userID, formID string) (*models.Form, error) {
	if formID == "" {
		return nil, requiredError("form id")
	}

	form, err := s.formRepo.ToggleArchived(ctx, formID, userID, time.Now())
	if err != nil {
		s.logger.Error("form archive toggle failed", "id", formID, "error", err)
		return nil, err
	}

	s.logger.Info("form archive toggled", "id", form.ID, "is_archived", form.IsArchived)
	return form, nil
}

// DeleteForm removes one of the caller's forms
func (s *formService) DeleteForm(ctx context.Context, userID, formID string) error {
	if formID == "" {
		return requiredError("form id")
	}

	if err := s.formRepo.Delete(ctx, formID, userID); err != nil {
		s.logger.Error("form delete failed", "id", formID, "error", err)
		return fmt.Errorf("delete form: %w", err)
	}

	s.logger.Info("form deleted", "id", formID, "user_id", userID)
	return nil
}
