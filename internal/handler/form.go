package handler

import (
	"log/slog"
	"net/http"

	"contentcoach/internal/domain/services"
	"contentcoach/internal/httputil"
)

// FormHandler handles form HTTP requests
type FormHandler struct {
	formService services.FormService
	logger      *slog.Logger
}

// NewFormHandler creates a new form handler
func NewFormHandler(formService services.FormService, logger *slog.Logger) *FormHandler {
	return &FormHandler{
		formService: formService,
		logger:      logger,
	}
}

// updateFormBody is the PATCH body; URL fields are tri-state
type updateFormBody struct {
	CompanyName     *string                 `json:"companyName"`
	LogoURL         httputil.OptionalString `json:"logoUrl"`
	PresentationURL httputil.OptionalString `json:"presentationUrl"`
}

// moveFormBody is the body of a folder reassignment; null means "no folder".
// The key itself is required.
type moveFormBody struct {
	FolderID httputil.OptionalString `json:"folderId"`
}

// ListForms lists the caller's forms
// GET /api/forms
func (h *FormHandler) ListForms(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	forms, err := h.formService.ListForms(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, forms)
}

// CreateForm creates a new form
// POST /api/forms
func (h *FormHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req services.CreateFormRequest
	if !parseBody(w, r, &req) {
		return
	}
	req.UserID = userID

	form, err := h.formService.CreateForm(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, form)
}

// GetForm retrieves a form by ID
// GET /api/forms/{id}
func (h *FormHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := httputil.PathParam(w, r, "id", "Form ID")
	if !ok {
		return
	}

	form, err := h.formService.GetForm(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, form)
}

// UpdateForm applies a partial update
// PATCH /api/forms/{id}
func (h *FormHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := httputil.PathParam(w, r, "id", "Form ID")
	if !ok {
		return
	}

	var body updateFormBody
	if !parseBody(w, r, &body) {
		return
	}

	form, err := h.formService.UpdateForm(r.Context(), userID, id, &services.UpdateFormRequest{
		CompanyName:     body.CompanyName,
		LogoURL:         body.LogoURL.Domain(),
		PresentationURL: body.PresentationURL.Domain(),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, form)
}

// MoveForm files a form under a folder, or under "no folder"
// PUT /api/forms/{id}/folder
func (h *FormHandler) MoveForm(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := httputil.PathParam(w, r, "id", "Form ID")
	if !ok {
		return
	}

	var body moveFormBody
	if !parseBody(w, r, &body) {
		return
	}
	if !body.FolderID.Present {
		httputil.RespondError(w, http.StatusBadRequest, "folderId is required; send null to remove the form from its folder")
		return
	}

	form, err := h.formService.MoveForm(r.Context(), userID, id, body.FolderID.Value)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, form)
}

// ToggleArchive flips a form's archived flag
// POST /api/forms/{id}/archive
func (h *FormHandler) ToggleArchive(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := httputil.PathParam(w, r, "id", "Form ID")
	if !ok {
		return
	}

	form, err := h.formService.ToggleArchive(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, form)
}

// DeleteForm deletes a form
// DELETE /api/forms/{id}
func (h *FormHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := httputil.PathParam(w, r, "id", "Form ID")
	if !ok {
		return
	}

	if err := h.formService.DeleteForm(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondNoContent(w)
}
