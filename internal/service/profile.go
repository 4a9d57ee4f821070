package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"contentcoach/internal/domain"
	"contentcoach/internal/domain/models"
	"contentcoach/internal/domain/repositories"
	"contentcoach/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type profileService struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo repositories.UserRepository, logger *slog.Logger) services.ProfileService {
	return &profileService{userRepo: userRepo, logger: logger}
}

// GetProfile returns the caller's profile, creating the row on first use
func (s *profileService) GetProfile(ctx context.Context, identity services.Identity) (*models.User, error) {
	if identity.UserID == "" {
		return nil, requiredError("user id")
	}

	user, err := s.userRepo.GetByID(ctx, identity.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		user, err = s.ensure(ctx, identity)
	}
	if err != nil {
		return nil, err
	}

	// The admin claim counts even when the row is not flagged
	user.IsAdmin = user.IsAdmin || identity.IsAdmin
	return user, nil
}

// UpdateProfile sets first and last name; both are required
func (s *profileService) UpdateProfile(ctx context.Context, identity services.Identity, req *services.UpdateProfileRequest) (*models.User, error) {
	if identity.UserID == "" {
		return nil, requiredError("user id")
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	err := validation.ValidateStruct(req,
		validation.Field(&req.FirstName, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&req.LastName, validation.Required, validation.RuneLength(1, 100)),
	)
	if err != nil {
		return nil, validationError(err)
	}

	if _, err := s.ensure(ctx, identity); err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateName(ctx, identity.UserID, req.FirstName, req.LastName, time.Now())
	if err != nil {
		s.logger.Error("profile update failed", "user_id", identity.UserID, "error", err)
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", identity.UserID)
	user.IsAdmin = user.IsAdmin || identity.IsAdmin
	return user, nil
}

func (s *profileService) ensure(ctx context.Context, identity services.Identity) (*models.User, error) {
	now := time.Now()
	user := &models.User{
		ID:        identity.UserID,
		Email:     identity.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.EnsureExists(ctx, user); err != nil {
		s.logger.Error("profile create failed", "user_id", identity.UserID, "error", err)
		return nil, err
	}
	return user, nil
}
