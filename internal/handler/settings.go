package handler

import (
	"log/slog"
	"net/http"

	"contentcoach/internal/domain/models"
	"contentcoach/internal/domain/services"
	"contentcoach/internal/httputil"
)

// SettingsHandler handles per-user settings
type SettingsHandler struct {
	settingsService services.SettingsService
	logger          *slog.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService services.SettingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// updateSettingsBody is the PATCH body. defaultUrl: null clears the override.
type updateSettingsBody struct {
	DefaultURL httputil.OptionalString `json:"defaultUrl"`
	Language   *string                 `json:"language"`
	Debug      *bool                   `json:"debug"`
}

// GetSettings retrieves the caller's settings, or the defaults
// GET /api/users/me/settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	settings, err := h.settingsService.GetSettings(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, settings)
}

// UpdateSettings applies a partial settings update
// PATCH /api/users/me/settings
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var body updateSettingsBody
	if !parseBody(w, r, &body) {
		return
	}

	settings, err := h.settingsService.UpdateSettings(r.Context(), userID, &models.UpdateSettingsRequest{
		DefaultPresentationURL: models.OptionalURL{Present: body.DefaultURL.Present, Value: body.DefaultURL.Value},
		Language:               body.Language,
		Debug:                  body.Debug,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, settings)
}
