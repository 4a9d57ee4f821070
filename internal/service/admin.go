package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"contentcoach/internal/domain"
	"contentcoach/internal/domain/models"
	"contentcoach/internal/domain/repositories"
	"contentcoach/internal/domain/services"

	"golang.org/x/sync/errgroup"
)

type adminService struct {
	formRepo repositories.FormRepository
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	formRepo repositories.FormRepository,
	userRepo repositories.UserRepository,
	logger *slog.Logger,
) services.AdminService {
	return &adminService{
		formRepo: formRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// IsAdmin checks the token claim first, then the user row
func (s *adminService) IsAdmin(ctx context.Context, identity services.Identity) (bool, error) {
	if identity.IsAdmin {
		return true, nil
	}
	if identity.UserID == "" {
		return false, nil
	}

	user, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check admin: %w", err)
	}

	return user.IsAdmin, nil
}

// Overview loads all forms and users concurrently and joins them
func (s *adminService) Overview(ctx context.Context) (*models.AdminOverview, error) {
	var (
		forms []models.Form
		users []models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		forms, err = s.formRepo.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.userRepo.ListAll(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("admin overview load failed", "error", err)
		return nil, fmt.Errorf("load admin overview: %w", err)
	}

	return &models.AdminOverview{
		Forms: AnnotateCreators(forms, users),
		Stats: models.AdminStats{
			TotalForms: len(forms),
			TotalUsers: len(users),
		},
	}, nil
}

// DeleteForm deletes any form by ID
func (s *adminService) DeleteForm(ctx context.Context, formID string) (*models.Form, error) {
	if formID == "" {
		return nil, requiredError("form id")
	}

	form, err := s.formRepo.GetByIDOnly(ctx, formID)
	if err != nil {
		return nil, err
	}

	if err := s.formRepo.DeleteByID(ctx, formID); err != nil {
		s.logger.Error("admin form delete failed", "id", formID, "error", err)
		return nil, err
	}

	s.logger.Info("form deleted by admin",
		"id", formID,
		"owner_id", form.UserID,
		"company", form.CompanyName,
	)
	return form, nil
}

// AnnotateCreators attaches each form's creator email, or UnknownCreator
// when the owner has no user row.
func AnnotateCreators(forms []models.Form, users []models.User) []models.AdminForm {
	emails := make(map[string]string, len(users))
	for _, u := range users {
		emails[u.ID] = u.Email
	}

	annotated := make([]models.AdminForm, 0, len(forms))
	for _, form := range forms {
		email, ok := emails[form.UserID]
		if !ok || email == "" {
			email = models.UnknownCreator
		}
		annotated = append(annotated, models.AdminForm{Form: form, CreatorEmail: email})
	}
	return annotated
}
