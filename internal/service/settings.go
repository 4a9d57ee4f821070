package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"contentcoach/internal/domain/models"
	"contentcoach/internal/domain/repositories"
	"contentcoach/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SupportedLanguages are the UI languages the dashboard ships
var SupportedLanguages = []interface{}{"fr", "en"}

// SettingsService implements the SettingsService interface
type SettingsService struct {
	settingsRepo           repositories.SettingsRepository
	defaultPresentationURL string
	logger                 *slog.Logger
}

// NewSettingsService creates a new settings service. defaultPresentationURL
// is used for forms without their own link when the user set no default.
func NewSettingsService(
	settingsRepo repositories.SettingsRepository,
	defaultPresentationURL string,
	logger *slog.Logger,
) services.SettingsService {
	return &SettingsService{
		settingsRepo:           settingsRepo,
		defaultPresentationURL: defaultPresentationURL,
		logger:                 logger,
	}
}

// getDefaultSettings returns default settings with namespaced structure
func (s *SettingsService) getDefaultSettings(userID string) *models.Settings {
	now := time.Now()
	return &models.Settings{
		UserID: userID,
		Values: models.JSONMap{
			"presentation": map[string]interface{}{
				"defaultUrl": nil,
			},
			"ui": map[string]interface{}{
				"language": models.DefaultLanguage,
				"debug":    false,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetSettings retrieves settings for a user
func (s *SettingsService) GetSettings(ctx context.Context, userID string) (*models.Settings, error) {
	if userID == "" {
		return nil, requiredError("user id")
	}

	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	if settings == nil {
		s.logger.Debug("no settings found, returning defaults", "user_id", userID)
		settings = s.getDefaultSettings(userID)
	}

	return settings, nil
}

// UpdateSettings applies a partial update and persists it
func (s *SettingsService) UpdateSettings(ctx context.Context, userID string, req *models.UpdateSettingsRequest) (*models.Settings, error) {
	if userID == "" {
		return nil, requiredError("user id")
	}
	if err := validateSettingsRequest(req); err != nil {
		return nil, err
	}

	settings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Tri-state: only touch the default link if it was in the request
	if req.DefaultPresentationURL.Present {
		presentation, err := settings.GetPresentation()
		if err != nil {
			return nil, fmt.Errorf("read presentation settings: %w", err)
		}
		presentation.DefaultURL = normalizeOptional(req.DefaultPresentationURL.Value)
		if err := settings.SetPresentation(presentation); err != nil {
			return nil, fmt.Errorf("update presentation settings: %w", err)
		}
	}

	if req.Language != nil || req.Debug != nil {
		ui, err := settings.GetUI()
		if err != nil {
			return nil, fmt.Errorf("read ui settings: %w", err)
		}
		if req.Language != nil {
			ui.Language = strings.TrimSpace(*req.Language)
		}
		if req.Debug != nil {
			ui.Debug = *req.Debug
		}
		if err := settings.SetUI(ui); err != nil {
			return nil, fmt.Errorf("update ui settings: %w", err)
		}
	}

	settings.UpdatedAt = time.Now()

	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		s.logger.Error("settings update failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("upsert settings: %w", err)
	}

	s.logger.Info("user settings updated",
		"user_id", userID,
		"has_presentation", req.DefaultPresentationURL.Present,
		"has_language", req.Language != nil,
		"has_debug", req.Debug != nil,
	)

	return settings, nil
}

// PresentationDefault resolves the fallback presentation link for a user
func (s *SettingsService) PresentationDefault(ctx context.Context, userID string) (string, error) {
	settings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return "", err
	}

	presentation, err := settings.GetPresentation()
	if err != nil {
		return "", fmt.Errorf("read presentation settings: %w", err)
	}

	if presentation.DefaultURL != nil && *presentation.DefaultURL != "" {
		return *presentation.DefaultURL, nil
	}
	return s.defaultPresentationURL, nil
}

func validateSettingsRequest(req *models.UpdateSettingsRequest) error {
	if req.DefaultPresentationURL.Present {
		if err := validation.Validate(normalizeOptional(req.DefaultPresentationURL.Value), urlRules...); err != nil {
			return validationError(fmt.Errorf("defaultUrl: %w", err))
		}
	}
	if req.Language != nil {
		lang := strings.TrimSpace(*req.Language)
		if err := validation.Validate(lang, validation.Required, validation.In(SupportedLanguages...)); err != nil {
			return validationError(fmt.Errorf("language: %w", err))
		}
	}
	return nil
}
