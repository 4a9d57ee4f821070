package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"contentcoach/internal/config"
	"contentcoach/internal/domain"
	"contentcoach/internal/domain/models"
	"contentcoach/internal/domain/repositories"
	"contentcoach/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type sessionService struct {
	provider services.IdentityProvider
	revoker  services.TokenRevoker
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

// NewSessionService creates a new session service
func NewSessionService(
	provider services.IdentityProvider,
	revoker services.TokenRevoker,
	userRepo repositories.UserRepository,
	logger *slog.Logger,
) services.SessionService {
	return &sessionService{
		provider: provider,
		revoker:  revoker,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Login signs in with email and password and records the user row
func (s *sessionService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	email = strings.TrimSpace(email)
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return nil, validationError(fmt.Errorf("email: %w", err))
	}
	if password == "" {
		return nil, requiredError("password")
	}

	session, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		s.logger.Info("login failed", "email", email, "error", err)
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        session.UserID,
		Email:     session.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// The sign-in succeeded; a missing row is recreated on the next profile read
	if err := s.userRepo.EnsureExists(ctx, user); err != nil {
		s.logger.Warn("user row upsert after login failed", "user_id", session.UserID, "error", err)
	}

	s.logger.Info("user logged in", "user_id", session.UserID)
	return session, nil
}

// Logout revokes the caller's ID token until it would have expired
func (s *sessionService) Logout(ctx context.Context, identity services.Identity) error {
	if identity.Method != services.AuthMethodFirebase || identity.Token == "" {
		return fmt.Errorf("%w: logout requires a signed-in session", domain.ErrValidation)
	}

	until := identity.ExpiresAt
	if until.IsZero() {
		until = time.Now().Add(time.Hour)
	}
	s.revoker.Revoke(identity.Token, until)

	s.logger.Info("user logged out", "user_id", identity.UserID)
	return nil
}

// UpdatePassword changes the caller's password with the identity provider
func (s *sessionService) UpdatePassword(ctx context.Context, identity services.Identity, newPassword string) error {
	if identity.Token == "" {
		return fmt.Errorf("%w: password change requires a signed-in session", domain.ErrValidation)
	}
	if err := validation.Validate(newPassword, validation.Required, validation.Length(config.MinPasswordLength, 0)); err != nil {
		return validationError(fmt.Errorf("password: %w", err))
	}

	if err := s.provider.UpdatePassword(ctx, identity.Token, newPassword); err != nil {
		s.logger.Error("password update failed", "user_id", identity.UserID, "error", err)
		return err
	}

	s.logger.Info("password updated", "user_id", identity.UserID)
	return nil
}

// SendPasswordReset asks the identity provider to email a reset link
func (s *sessionService) SendPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if err := validation.Validate(email, is.Email); err != nil {
		return validationError(fmt.Errorf("email: %w", err))
	}

	if err := s.provider.SendPasswordReset(ctx, email); err != nil {
		s.logger.Error("password reset request failed", "email", email, "error", err)
		return err
	}

	s.logger.Info("password reset sent", "email", email)
	return nil
}
