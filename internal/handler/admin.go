package handler

import (
	"log/slog"
	"net/http"

	"contentcoach/internal/domain/services"
	"contentcoach/internal/httputil"
)

// AdminHandler serves the cross-user admin views. Routes are wrapped by
// middleware.RequireAdmin.
type AdminHandler struct {
	adminService services.AdminService
	logger       *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService services.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// ListForms returns every form with its creator's email, plus global stats
// GET /api/admin/forms
func (h *AdminHandler) ListForms(w http.ResponseWriter, r *http.Request) {
	overview, err := h.adminService.Overview(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, overview)
}

// DeleteForm deletes any user's form
// DELETE /api/admin/forms/{id}
func (h *AdminHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathParam(w, r, "id", "Form ID")
	if !ok {
		return
	}

	form, err := h.adminService.DeleteForm(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("admin deleted form",
		"form_id", id,
		"owner_id", form.UserID,
		"admin_id", httputil.GetUserID(r),
	)
	httputil.RespondNoContent(w)
}
