package handler

import (
	"log/slog"
	"net/http"

	"contentcoach/internal/domain/services"
	"contentcoach/internal/httputil"
)

// APIKeyHandler manages machine credentials
type APIKeyHandler struct {
	keyService services.APIKeyService
	logger     *slog.Logger
}

// NewAPIKeyHandler creates a new API key handler
func NewAPIKeyHandler(keyService services.APIKeyService, logger *slog.Logger) *APIKeyHandler {
	return &APIKeyHandler{
		keyService: keyService,
		logger:     logger,
	}
}

type createAPIKeyBody struct {
	Name string `json:"name"`
}

// ListKeys lists the caller's keys
// GET /api/admin/api-keys
func (h *APIKeyHandler) ListKeys(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	keys, err := h.keyService.List(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, keys)
}

// CreateKey issues a key; the raw value is only in this response
// POST /api/admin/api-keys
func (h *APIKeyHandler) CreateKey(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var body createAPIKeyBody
	if !parseBody(w, r, &body) {
		return
	}

	issued, err := h.keyService.Create(r.Context(), userID, body.Name)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, issued)
}

// RevokeKey revokes one of the caller's keys
// DELETE /api/admin/api-keys/{id}
func (h *APIKeyHandler) RevokeKey(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := httputil.PathParam(w, r, "id", "API key ID")
	if !ok {
		return
	}

	if err := h.keyService.Revoke(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondNoContent(w)
}
