package handler

import (
	"log/slog"
	"net/http"

	"contentcoach/internal/domain/services"
	"contentcoach/internal/httputil"
)

// LogoHandler hands out presigned logo upload slots
type LogoHandler struct {
	logoService services.LogoService
	logger      *slog.Logger
}

// NewLogoHandler creates a new logo handler
func NewLogoHandler(logoService services.LogoService, logger *slog.Logger) *LogoHandler {
	return &LogoHandler{
		logoService: logoService,
		logger:      logger,
	}
}

type logoUploadBody struct {
	ContentType string `json:"contentType"`
}

// PresignUpload returns a presigned PUT URL for a form's logo
// POST /api/forms/{id}/logo-upload
func (h *LogoHandler) PresignUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	formID, ok := httputil.PathParam(w, r, "id", "Form ID")
	if !ok {
		return
	}

	var body logoUploadBody
	if !parseBody(w, r, &body) {
		return
	}

	upload, err := h.logoService.PresignUpload(r.Context(), userID, formID, body.ContentType)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, upload)
}
